// Package ai provides the application layer for LLM-assisted recipe
// generation.
package ai

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appRecipe "github.com/forkfeed/forkfeed/internal/application/recipe"
	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	apperrors "github.com/forkfeed/forkfeed/pkg/errors"
)

// AIService implements recipe generation use cases
type AIService struct {
	provider    outbound.AIService
	recipeRepo  outbound.RecipeRepository
	allergyRepo outbound.AllergyRepository
	logger      *zap.Logger
}

// NewAIService creates a new AI service
func NewAIService(
	provider outbound.AIService,
	recipeRepo outbound.RecipeRepository,
	allergyRepo outbound.AllergyRepository,
	logger *zap.Logger,
) *AIService {
	return &AIService{
		provider:    provider,
		recipeRepo:  recipeRepo,
		allergyRepo: allergyRepo,
		logger:      logger.Named("ai-service"),
	}
}

// GenerateCommand contains the generation request
type GenerateCommand struct {
	Prompt              string   `json:"prompt" validate:"required,max=2000"`
	Ingredients         []string `json:"ingredients,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
}

// GenerateRecipe asks the provider for a recipe and persists it for the
// caller, public and AI-flagged. The caller's recorded allergies are always
// appended to the dietary restrictions.
func (s *AIService) GenerateRecipe(ctx context.Context, callerID uuid.UUID, cmd GenerateCommand) (*appRecipe.RecipeDTO, error) {
	restrictions := append([]string{}, cmd.DietaryRestrictions...)

	allergies, err := s.allergyRepo.List(ctx, callerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load allergies")
	}
	for _, a := range allergies {
		restrictions = append(restrictions, a.IngredientName)
	}

	generated, err := s.provider.GenerateRecipe(ctx, outbound.GenerateRequest{
		Prompt:              cmd.Prompt,
		Ingredients:         cmd.Ingredients,
		DietaryRestrictions: restrictions,
	})
	if err != nil {
		s.logger.Error("recipe generation failed",
			zap.String("user_id", callerID.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewDependencyError("completion provider", err)
	}

	rec, err := recipe.NewRecipe(generated.Title, generated.Content, callerID)
	if err != nil {
		// the provider returned a parseable object with unusable fields
		return nil, apperrors.NewDependencyError("completion provider", err)
	}
	rec.SetIngredients(generated.Ingredients)
	rec.Publish()
	rec.MarkAIGenerated()

	if err := s.recipeRepo.Create(ctx, rec); err != nil {
		return nil, apperrors.Wrap(err, "failed to save generated recipe")
	}

	s.logger.Info("recipe generated",
		zap.String("recipe_id", rec.ID().String()),
		zap.String("user_id", callerID.String()),
	)

	dto := appRecipe.EntityToDTO(rec)
	return &dto, nil
}
