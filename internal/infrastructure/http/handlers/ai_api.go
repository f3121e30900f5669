package handlers

import (
	"net/http"

	"go.uber.org/zap"

	appAI "github.com/forkfeed/forkfeed/internal/application/ai"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/middleware"
	"github.com/forkfeed/forkfeed/pkg/errors"
)

// AIHandlers handles the recipe generation endpoint
type AIHandlers struct {
	base
	aiService *appAI.AIService
}

// NewAIHandlers creates a new AI handlers instance
func NewAIHandlers(aiService *appAI.AIService, logger *zap.Logger) *AIHandlers {
	return &AIHandlers{
		base:      newBase(logger),
		aiService: aiService,
	}
}

// Generate handles POST /api/v1/recipes/generate
func (h *AIHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	var cmd appAI.GenerateCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.aiService.GenerateRecipe(r.Context(), userID, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, dto)
}
