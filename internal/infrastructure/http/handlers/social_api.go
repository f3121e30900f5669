package handlers

import (
	"net/http"

	"go.uber.org/zap"

	appSocial "github.com/forkfeed/forkfeed/internal/application/social"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/middleware"
	"github.com/forkfeed/forkfeed/pkg/errors"
)

// SocialHandlers handles feed, like, bookmark, and comment endpoints
type SocialHandlers struct {
	base
	socialService *appSocial.SocialService
}

// NewSocialHandlers creates a new social handlers instance
func NewSocialHandlers(socialService *appSocial.SocialService, logger *zap.Logger) *SocialHandlers {
	return &SocialHandlers{
		base:          newBase(logger),
		socialService: socialService,
	}
}

// Publish handles POST /api/v1/posts
func (h *SocialHandlers) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	var cmd appSocial.PublishCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.socialService.Publish(r.Context(), userID, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, post)
}

// Feed handles GET /api/v1/posts
func (h *SocialHandlers) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.socialService.ListFeed(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, posts)
}

// Like handles POST /api/v1/posts/{id}/like
func (h *SocialHandlers) Like(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.socialService.Like(r.Context(), postID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, post)
}

// Unlike handles POST /api/v1/posts/{id}/unlike
func (h *SocialHandlers) Unlike(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.socialService.Unlike(r.Context(), postID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, post)
}

// Bookmark handles POST /api/v1/bookmarks
func (h *SocialHandlers) Bookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	var cmd appSocial.BookmarkCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.socialService.Bookmark(r.Context(), userID, cmd); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"status": "bookmarked"})
}

// ListBookmarks handles GET /api/v1/bookmarks
func (h *SocialHandlers) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	recipes, err := h.socialService.ListBookmarks(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, recipes)
}

// Comment handles POST /api/v1/posts/{id}/comments
func (h *SocialHandlers) Comment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	postID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var cmd appSocial.CommentCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	comment, err := h.socialService.Comment(r.Context(), userID, postID, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, comment)
}

// ListComments handles GET /api/v1/posts/{id}/comments
func (h *SocialHandlers) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	comments, err := h.socialService.ListComments(r.Context(), postID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, comments)
}
