package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/domain/user"
	"github.com/forkfeed/forkfeed/internal/infrastructure/security"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	"github.com/forkfeed/forkfeed/pkg/errors"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

// RequireAuth gates a route subtree behind credential resolution. The
// credential's subject must resolve to an existing user; a valid token for a
// vanished account is still unauthenticated. Every failure produces the same
// 401 envelope before the handler runs, so an unauthenticated request never
// reaches application code.
func RequireAuth(auth *security.AuthService, users outbound.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := auth.ResolveCredential(r)
			if err != nil {
				logger.Debug("credential rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				writeUnauthenticated(w, r)
				return
			}

			u, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Debug("credential subject unknown",
					zap.String("path", r.URL.Path),
					zap.String("user_id", userID.String()),
				)
				writeUnauthenticated(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, u.ID())
			ctx = context.WithValue(ctx, userRoleKey, u.Role())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's id from the request context. The
// second return is false outside the RequireAuth subtree.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// UserRole returns the authenticated user's role from the request context
func UserRole(ctx context.Context) (user.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(user.Role)
	return role, ok
}

func writeUnauthenticated(w http.ResponseWriter, r *http.Request) {
	appErr := errors.NewUnauthenticatedError()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	_ = json.NewEncoder(w).Encode(errors.ToErrorResponse(appErr, r.Header.Get("X-Request-ID")))
}
