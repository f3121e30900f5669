// Package shoppinglist provides the application layer for the per-user
// shopping list.
package shoppinglist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	apperrors "github.com/forkfeed/forkfeed/pkg/errors"
)

// ShoppingListService implements shopping-list use cases. Two write paths
// with deliberately different merge policies: adding a recipe's ingredients
// is an idempotent set-union, replacing the list stores the payload verbatim.
type ShoppingListService struct {
	listRepo   outbound.ShoppingListRepository
	recipeRepo outbound.RecipeRepository
	logger     *zap.Logger
}

// NewShoppingListService creates a new shopping list service
func NewShoppingListService(
	listRepo outbound.ShoppingListRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) *ShoppingListService {
	return &ShoppingListService{
		listRepo:   listRepo,
		recipeRepo: recipeRepo,
		logger:     logger.Named("shoppinglist-service"),
	}
}

// ReplaceCommand contains the full replacement list
type ReplaceCommand struct {
	Items []string `json:"items" validate:"required"`
}

// ListDTO represents the shopping list returned by the API
type ListDTO struct {
	Items []string `json:"items"`
}

// AddRecipeIngredients merges a recipe's ingredients into the caller's list.
// Names already present are skipped on a case-sensitive exact match, so the
// operation is idempotent. The recipe may belong to any user.
func (s *ShoppingListService) AddRecipeIngredients(ctx context.Context, userID, recipeID uuid.UUID) (*ListDTO, error) {
	rec, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Recipe")
		}
		return nil, apperrors.Wrap(err, "failed to load recipe")
	}

	current, err := s.listRepo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load shopping list")
	}

	present := make(map[string]bool, len(current))
	for _, item := range current {
		present[item.Name] = true
	}

	var missing []string
	for _, name := range rec.Ingredients() {
		if present[name] {
			continue
		}
		present[name] = true
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		if err := s.listRepo.Add(ctx, userID, missing); err != nil {
			return nil, apperrors.Wrap(err, "failed to add shopping list items")
		}
	}

	s.logger.Info("recipe ingredients merged into shopping list",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
		zap.Int("added", len(missing)),
	)

	return s.List(ctx, userID)
}

// Replace swaps the caller's entire list for the given items, preserving
// order and duplicates. Blank entries are dropped.
func (s *ShoppingListService) Replace(ctx context.Context, userID uuid.UUID, cmd ReplaceCommand) (*ListDTO, error) {
	items := make([]string, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if err := s.listRepo.Replace(ctx, userID, items); err != nil {
		return nil, apperrors.Wrap(err, "failed to replace shopping list")
	}

	return &ListDTO{Items: items}, nil
}

// List returns the caller's items in insertion order
func (s *ShoppingListService) List(ctx context.Context, userID uuid.UUID) (*ListDTO, error) {
	items, err := s.listRepo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load shopping list")
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return &ListDTO{Items: names}, nil
}

// Export renders the list as plain text, one item per line. An empty list
// cannot be exported.
func (s *ShoppingListService) Export(ctx context.Context, userID uuid.UUID) (string, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(list.Items) == 0 {
		return "", apperrors.NewValidationError("Shopping list is empty")
	}
	return strings.Join(list.Items, "\n") + "\n", nil
}
