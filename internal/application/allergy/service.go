// Package allergy provides the application layer for a user's recorded
// allergies.
package allergy

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	apperrors "github.com/forkfeed/forkfeed/pkg/errors"
)

// AllergyService implements allergy use cases
type AllergyService struct {
	allergyRepo outbound.AllergyRepository
	logger      *zap.Logger
}

// NewAllergyService creates a new allergy service
func NewAllergyService(allergyRepo outbound.AllergyRepository, logger *zap.Logger) *AllergyService {
	return &AllergyService{
		allergyRepo: allergyRepo,
		logger:      logger.Named("allergy-service"),
	}
}

// AddCommand contains the ingredient to avoid
type AddCommand struct {
	IngredientName string `json:"ingredient_name" validate:"required,max=255"`
}

// AllergyDTO represents an allergy returned by the API
type AllergyDTO struct {
	ID             uuid.UUID `json:"id"`
	IngredientName string    `json:"ingredient_name"`
}

// Add records an allergy for the caller
func (s *AllergyService) Add(ctx context.Context, userID uuid.UUID, cmd AddCommand) (*AllergyDTO, error) {
	name := strings.TrimSpace(cmd.IngredientName)
	if name == "" {
		return nil, apperrors.NewValidationError("ingredient name is required")
	}

	allergy, err := s.allergyRepo.Add(ctx, userID, name)
	if err != nil {
		if errors.Is(err, outbound.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Allergy already recorded")
		}
		return nil, apperrors.Wrap(err, "failed to add allergy")
	}

	return &AllergyDTO{ID: allergy.ID, IngredientName: allergy.IngredientName}, nil
}

// List returns the caller's allergies
func (s *AllergyService) List(ctx context.Context, userID uuid.UUID) ([]AllergyDTO, error) {
	allergies, err := s.allergyRepo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load allergies")
	}

	dtos := make([]AllergyDTO, 0, len(allergies))
	for _, a := range allergies {
		dtos = append(dtos, AllergyDTO{ID: a.ID, IngredientName: a.IngredientName})
	}
	return dtos, nil
}

// Delete removes one of the caller's allergies
func (s *AllergyService) Delete(ctx context.Context, userID, allergyID uuid.UUID) error {
	if err := s.allergyRepo.Delete(ctx, userID, allergyID); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return apperrors.NewNotFoundError("Allergy")
		}
		return apperrors.Wrap(err, "failed to delete allergy")
	}
	return nil
}
