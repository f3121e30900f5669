package handlers

import (
	"net/http"

	"go.uber.org/zap"

	appList "github.com/forkfeed/forkfeed/internal/application/shoppinglist"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/middleware"
	"github.com/forkfeed/forkfeed/pkg/errors"
)

// ShoppingListHandlers handles shopping-list endpoints
type ShoppingListHandlers struct {
	base
	listService *appList.ShoppingListService
}

// NewShoppingListHandlers creates a new shopping list handlers instance
func NewShoppingListHandlers(listService *appList.ShoppingListService, logger *zap.Logger) *ShoppingListHandlers {
	return &ShoppingListHandlers{
		base:        newBase(logger),
		listService: listService,
	}
}

// AddRecipe handles POST /api/v1/shopping-list/recipes/{recipeID}
func (h *ShoppingListHandlers) AddRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	recipeID, err := pathUUID(r, "recipeID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.listService.AddRecipeIngredients(r.Context(), userID, recipeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// Replace handles PUT /api/v1/shopping-list
func (h *ShoppingListHandlers) Replace(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	var cmd appList.ReplaceCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.listService.Replace(r.Context(), userID, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// List handles GET /api/v1/shopping-list
func (h *ShoppingListHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	list, err := h.listService.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// Export handles GET /api/v1/shopping-list/export, returning the list as a
// downloadable plain-text file.
func (h *ShoppingListHandlers) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	text, err := h.listService.Export(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="shopping-list.txt"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		h.logger.Error("failed to write export", zap.Error(err))
	}
}
