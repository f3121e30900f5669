package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/infrastructure/persistence/memory"
	"github.com/forkfeed/forkfeed/internal/testutils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	auth     *AuthService
	sessions *memory.SessionStore
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.sessions = memory.NewSessionStore()
	s.auth = NewAuthService(testutils.TestConfig(), s.sessions, zap.NewNop())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestPasswordHashing() {
	hash, err := s.auth.HashPassword("pw123")
	s.Require().NoError(err)
	s.NotEqual("pw123", hash)

	s.NoError(s.auth.VerifyPassword(hash, "pw123"))
	s.Error(s.auth.VerifyPassword(hash, "wrong"))
}

func (s *AuthServiceTestSuite) TestTokenRoundTrip() {
	userID := uuid.New()

	token, err := s.auth.IssueToken(userID, 0)
	s.Require().NoError(err)

	subject, err := s.auth.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(userID, subject)
}

func (s *AuthServiceTestSuite) TestExpiredToken() {
	token, err := s.auth.IssueToken(uuid.New(), -time.Minute)
	s.Require().NoError(err)

	_, err = s.auth.ValidateToken(token)
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *AuthServiceTestSuite) TestTamperedSignature() {
	token, err := s.auth.IssueToken(uuid.New(), 0)
	s.Require().NoError(err)

	parts := strings.Split(token, ".")
	s.Require().Len(parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = s.auth.ValidateToken(tampered)
	s.ErrorIs(err, ErrInvalidSignature)
}

func (s *AuthServiceTestSuite) TestMalformedToken() {
	_, err := s.auth.ValidateToken("not-a-token")
	s.ErrorIs(err, ErrMalformedToken)
}

func (s *AuthServiceTestSuite) TestResolveCredentialBearer() {
	userID := uuid.New()
	token, err := s.auth.IssueToken(userID, 0)
	s.Require().NoError(err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	subject, err := s.auth.ResolveCredential(r)
	s.Require().NoError(err)
	s.Equal(userID, subject)
}

func (s *AuthServiceTestSuite) TestResolveCredentialNoCredential() {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := s.auth.ResolveCredential(r)
	s.ErrorIs(err, ErrNoCredential)
}

func (s *AuthServiceTestSuite) TestResolveCredentialBadScheme() {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	_, err := s.auth.ResolveCredential(r)
	s.ErrorIs(err, ErrMalformedToken)
}

func (s *AuthServiceTestSuite) TestSessionLifecycle() {
	userID := uuid.New()
	w := httptest.NewRecorder()

	s.Require().NoError(s.auth.StartSession(context.Background(), w, userID))

	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	cookie := cookies[0]
	s.Equal(s.auth.CookieName(), cookie.Name)
	s.True(cookie.HttpOnly)
	s.Equal(http.SameSiteLaxMode, cookie.SameSite)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	subject, err := s.auth.ResolveCredential(r)
	s.Require().NoError(err)
	s.Equal(userID, subject)

	// logout deletes the session and clears the cookie
	w2 := httptest.NewRecorder()
	s.auth.EndSession(context.Background(), w2, r)

	cleared := w2.Result().Cookies()
	s.Require().Len(cleared, 1)
	s.Equal(-1, cleared[0].MaxAge)

	_, err = s.auth.ResolveCredential(r)
	s.ErrorIs(err, ErrNoCredential)
}

func TestBearerTakesPrecedenceOverCookie(t *testing.T) {
	sessions := memory.NewSessionStore()
	auth := NewAuthService(testutils.TestConfig(), sessions, zap.NewNop())

	bearerUser := uuid.New()
	token, err := auth.IssueToken(bearerUser, 0)
	require.NoError(t, err)

	sessionID, err := sessions.Create(context.Background(), uuid.New(), time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	r.AddCookie(&http.Cookie{Name: auth.CookieName(), Value: sessionID})

	subject, err := auth.ResolveCredential(r)
	require.NoError(t, err)
	assert.Equal(t, bearerUser, subject)
}
