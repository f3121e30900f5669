// Package recipe provides the application layer for recipe management
package recipe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	apperrors "github.com/forkfeed/forkfeed/pkg/errors"
)

// RecipeService implements recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipeRepo outbound.RecipeRepository, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		logger:     logger.Named("recipe-service"),
	}
}

// CreateCommand contains recipe creation data
type CreateCommand struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Content     string   `json:"content" validate:"required"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// UpdateCommand contains recipe update data
type UpdateCommand struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Content     string   `json:"content" validate:"required"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// RecipeDTO represents recipe data returned by the API
type RecipeDTO struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Visibility  string    `json:"visibility"`
	Ingredients []string  `json:"ingredients"`
	AIGenerated bool      `json:"ai_generated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Create creates a new private recipe for the caller
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, cmd CreateCommand) (*RecipeDTO, error) {
	rec, err := recipe.NewRecipe(cmd.Title, cmd.Content, authorID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	rec.SetIngredients(cmd.Ingredients)

	if err := s.recipeRepo.Create(ctx, rec); err != nil {
		return nil, apperrors.Wrap(err, "failed to create recipe")
	}

	s.logger.Info("recipe created",
		zap.String("recipe_id", rec.ID().String()),
		zap.String("author_id", authorID.String()),
	)

	dto := EntityToDTO(rec)
	return &dto, nil
}

// Get returns a recipe the caller is allowed to see. A recipe owned by
// someone else and kept private is reported as not found, the same as a
// recipe that does not exist.
func (s *RecipeService) Get(ctx context.Context, callerID, recipeID uuid.UUID) (*RecipeDTO, error) {
	rec, err := s.findVisible(ctx, callerID, recipeID)
	if err != nil {
		return nil, err
	}
	dto := EntityToDTO(rec)
	return &dto, nil
}

// ListMine returns the caller's recipes, newest first
func (s *RecipeService) ListMine(ctx context.Context, callerID uuid.UUID) ([]RecipeDTO, error) {
	recipes, err := s.recipeRepo.FindByAuthor(ctx, callerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recipes")
	}

	dtos := make([]RecipeDTO, 0, len(recipes))
	for _, rec := range recipes {
		dtos = append(dtos, EntityToDTO(rec))
	}
	return dtos, nil
}

// Update updates a recipe owned by the caller
func (s *RecipeService) Update(ctx context.Context, callerID, recipeID uuid.UUID, cmd UpdateCommand) (*RecipeDTO, error) {
	rec, err := s.findOwned(ctx, callerID, recipeID)
	if err != nil {
		return nil, err
	}

	if err := rec.Update(cmd.Title, cmd.Content); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.Ingredients != nil {
		rec.SetIngredients(cmd.Ingredients)
	}

	if err := s.recipeRepo.Update(ctx, rec); err != nil {
		return nil, apperrors.Wrap(err, "failed to update recipe")
	}

	dto := EntityToDTO(rec)
	return &dto, nil
}

// Delete removes a recipe owned by the caller together with everything that
// references it.
func (s *RecipeService) Delete(ctx context.Context, callerID, recipeID uuid.UUID) error {
	if _, err := s.findOwned(ctx, callerID, recipeID); err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return apperrors.NewNotFoundError("Recipe")
		}
		return apperrors.Wrap(err, "failed to delete recipe")
	}

	s.logger.Info("recipe deleted",
		zap.String("recipe_id", recipeID.String()),
		zap.String("author_id", callerID.String()),
	)
	return nil
}

// findOwned loads a recipe and checks the caller owns it. Non-ownership is
// indistinguishable from absence.
func (s *RecipeService) findOwned(ctx context.Context, callerID, recipeID uuid.UUID) (*recipe.Recipe, error) {
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Recipe")
		}
		return nil, apperrors.Wrap(err, "failed to load recipe")
	}
	if rec.AuthorID() != callerID {
		return nil, apperrors.NewNotFoundError("Recipe")
	}
	return rec, nil
}

// findVisible loads a recipe the caller owns or that is public
func (s *RecipeService) findVisible(ctx context.Context, callerID, recipeID uuid.UUID) (*recipe.Recipe, error) {
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Recipe")
		}
		return nil, apperrors.Wrap(err, "failed to load recipe")
	}
	if rec.AuthorID() != callerID && !rec.IsPublic() {
		return nil, apperrors.NewNotFoundError("Recipe")
	}
	return rec, nil
}

// EntityToDTO converts a recipe entity to its transfer representation
func EntityToDTO(rec *recipe.Recipe) RecipeDTO {
	ingredients := rec.Ingredients()
	if ingredients == nil {
		ingredients = []string{}
	}
	return RecipeDTO{
		ID:          rec.ID(),
		AuthorID:    rec.AuthorID(),
		Title:       rec.Title(),
		Content:     rec.Content(),
		Visibility:  string(rec.Visibility()),
		Ingredients: ingredients,
		AIGenerated: rec.AIGenerated(),
		CreatedAt:   rec.CreatedAt(),
		UpdatedAt:   rec.UpdatedAt(),
	}
}
