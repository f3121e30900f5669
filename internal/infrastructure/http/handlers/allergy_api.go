package handlers

import (
	"net/http"

	"go.uber.org/zap"

	appAllergy "github.com/forkfeed/forkfeed/internal/application/allergy"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/middleware"
	"github.com/forkfeed/forkfeed/pkg/errors"
)

// AllergyHandlers handles allergy endpoints
type AllergyHandlers struct {
	base
	allergyService *appAllergy.AllergyService
}

// NewAllergyHandlers creates a new allergy handlers instance
func NewAllergyHandlers(allergyService *appAllergy.AllergyService, logger *zap.Logger) *AllergyHandlers {
	return &AllergyHandlers{
		base:           newBase(logger),
		allergyService: allergyService,
	}
}

// Add handles POST /api/v1/allergies
func (h *AllergyHandlers) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	var cmd appAllergy.AddCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.allergyService.Add(r.Context(), userID, cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, dto)
}

// List handles GET /api/v1/allergies
func (h *AllergyHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	dtos, err := h.allergyService.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dtos)
}

// Delete handles DELETE /api/v1/allergies/{id}
func (h *AllergyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthenticatedError())
		return
	}

	allergyID, err := pathUUID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.allergyService.Delete(r.Context(), userID, allergyID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
