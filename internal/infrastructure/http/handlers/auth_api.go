package handlers

import (
	"net/http"

	"go.uber.org/zap"

	appUser "github.com/forkfeed/forkfeed/internal/application/user"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/middleware"
	"github.com/forkfeed/forkfeed/internal/infrastructure/security"
	"github.com/forkfeed/forkfeed/pkg/errors"
)

// AuthHandlers handles signup, login, logout, and profile endpoints
type AuthHandlers struct {
	base
	userService *appUser.UserService
	auth        *security.AuthService
	sessionMode bool
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(
	userService *appUser.UserService,
	auth *security.AuthService,
	sessionMode bool,
	logger *zap.Logger,
) *AuthHandlers {
	return &AuthHandlers{
		base:        newBase(logger),
		userService: userService,
		auth:        auth,
		sessionMode: sessionMode,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var cmd appUser.RegisterCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.userService.Register(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if h.sessionMode {
		if err := h.auth.StartSession(r.Context(), w, result.UserID); err != nil {
			h.writeError(w, r, errors.Wrap(err, "failed to start session"))
			return
		}
	}

	h.writeJSON(w, http.StatusCreated, result)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd appUser.LoginCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.userService.Login(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if h.sessionMode {
		if err := h.auth.StartSession(r.Context(), w, result.UserID); err != nil {
			h.writeError(w, r, errors.Wrap(err, "failed to start session"))
			return
		}
	}

	h.writeJSON(w, http.StatusOK, result)
}

// Logout handles POST /api/v1/auth/logout. It always succeeds: the server
// session, if one exists, is deleted and the cookie cleared; a bearer token
// is simply discarded by the client.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.EndSession(r.Context(), w, r)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /api/v1/me
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

// ChangePassword handles PUT /api/v1/me/password
func (h *AuthHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	var cmd appUser.ChangePasswordCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), userID, cmd); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}
