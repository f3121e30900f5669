package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appRecipe "github.com/forkfeed/forkfeed/internal/application/recipe"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/middleware"
	"github.com/forkfeed/forkfeed/pkg/errors"
)

// RecipeHandlers handles recipe CRUD endpoints
type RecipeHandlers struct {
	base
	recipeService *appRecipe.RecipeService
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(recipeService *appRecipe.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		base:          newBase(logger),
		recipeService: recipeService,
	}
}

// Create handles POST /api/v1/recipes
func (h *RecipeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	var cmd appRecipe.CreateCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.recipeService.Create(r.Context(), userID, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, dto)
}

// List handles GET /api/v1/recipes
func (h *RecipeHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	dtos, err := h.recipeService.ListMine(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// Get handles GET /api/v1/recipes/{id}
func (h *RecipeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	recipeID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.recipeService.Get(r.Context(), userID, recipeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto)
}

// Update handles PUT /api/v1/recipes/{id}
func (h *RecipeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	recipeID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var cmd appRecipe.UpdateCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.recipeService.Update(r.Context(), userID, recipeID, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dto)
}

// Delete handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	recipeID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.recipeService.Delete(r.Context(), userID, recipeID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses a UUID path parameter. A malformed id maps to not found
// rather than validation failure so probing with junk ids looks no different
// from probing with unknown ids.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.NewNotFoundError("")
	}
	return id, nil
}
