// Package security provides authentication services: password hashing,
// bearer-token issue/validate, and server-side session lifecycle.
package security

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/forkfeed/forkfeed/internal/infrastructure/config"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

// Token validation failure kinds. The HTTP layer collapses all of them into
// a single unauthenticated response; the distinction exists for logging and
// tests only.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformedToken   = errors.New("token malformed")
	ErrNoCredential     = errors.New("no credential presented")
)

const tokenIssuer = "forkfeed"

// AuthService provides credential issuance and validation
type AuthService struct {
	jwtSecret     []byte
	tokenTTL      time.Duration
	sessionTTL    time.Duration
	cookieName    string
	secureCookies bool
	bcryptCost    int
	sessions      outbound.SessionStore
	logger        *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, sessions outbound.SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(cfg.Auth.JWTSecret),
		tokenTTL:      cfg.Auth.TokenTTL,
		sessionTTL:    cfg.Auth.SessionTTL,
		cookieName:    cfg.Auth.SessionCookie,
		secureCookies: cfg.IsProduction(),
		bcryptCost:    cfg.Auth.BCryptCost,
		sessions:      sessions,
		logger:        logger.Named("auth"),
	}
}

// TokenTTL returns the configured access-token lifetime
func (a *AuthService) TokenTTL() time.Duration {
	return a.tokenTTL
}

// CookieName returns the session cookie name
func (a *AuthService) CookieName() string {
	return a.cookieName
}

// HashPassword securely hashes a password using bcrypt. The plaintext is
// never logged or stored.
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against its hash. A wrong password and
// a corrupt digest yield the same error.
func (a *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// IssueToken creates a signed bearer token for the subject with the given
// lifetime. A zero ttl falls back to the configured default.
func (a *AuthService) IssueToken(subjectID uuid.UUID, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = a.tokenTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   subjectID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a bearer token and returns its subject id.
// Failures are classified as expired, invalid signature, or malformed.
func (a *AuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrSignatureInvalid):
			return uuid.Nil, ErrInvalidSignature
		default:
			return uuid.Nil, ErrMalformedToken
		}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrMalformedToken
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrMalformedToken
	}
	return subjectID, nil
}

// StartSession creates a server-side session and sets the session cookie
func (a *AuthService) StartSession(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) error {
	sessionID, err := a.sessions.Create(ctx, userID, a.sessionTTL)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(a.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// EndSession deletes the server-side session, if any, and clears the cookie.
// Bearer-token logout has no server state; discarding the token is enough.
func (a *AuthService) EndSession(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(a.cookieName); err == nil && cookie.Value != "" {
		if err := a.sessions.Delete(ctx, cookie.Value); err != nil {
			a.logger.Warn("failed to delete session", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveCredential extracts and validates the caller's credential, bearer
// token first, then session cookie, and returns the subject id. Only one
// mechanism is active per deployment, but both are tolerated here.
func (a *AuthService) ResolveCredential(r *http.Request) (uuid.UUID, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return uuid.Nil, ErrMalformedToken
		}
		return a.ValidateToken(parts[1])
	}

	if cookie, err := r.Cookie(a.cookieName); err == nil && cookie.Value != "" {
		userID, err := a.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, outbound.ErrNotFound) {
				return uuid.Nil, ErrNoCredential
			}
			return uuid.Nil, err
		}
		return userID, nil
	}

	return uuid.Nil, ErrNoCredential
}
