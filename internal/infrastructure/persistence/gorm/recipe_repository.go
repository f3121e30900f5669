package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a recipe with its ingredient rows in one transaction
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := RecipeToModel(rec)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return insertIngredients(tx, rec.ID(), rec.Ingredients())
	})
}

// Update updates the recipe row and replaces its ingredient rows so the
// stored state matches the entity.
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := RecipeToModel(rec)
		result := tx.Model(&RecipeModel{}).Where("id = ?", model.ID).Updates(map[string]interface{}{
			"title":        model.Title,
			"content":      model.Content,
			"visibility":   model.Visibility,
			"ai_generated": model.AIGenerated,
			"updated_at":   model.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return outbound.ErrNotFound
		}

		if err := tx.Where("recipe_id = ?", rec.ID()).Delete(&IngredientModel{}).Error; err != nil {
			return err
		}
		return insertIngredients(tx, rec.ID(), rec.Ingredients())
	})
}

// Delete removes the recipe and all dependent rows. Nothing referencing the
// recipe survives: no orphaned ingredients, bookmarks, comments, or post.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post PostModel
		err := tx.First(&post, "recipe_id = ?", id).Error
		switch {
		case err == nil:
			if err := tx.Where("post_id = ?", post.ID).Delete(&CommentModel{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&post).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// never published, nothing social to clean up
		default:
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&BookmarkModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&IngredientModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&RecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return outbound.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a recipe by ID, ingredients included
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).Preload("Ingredients", orderIngredients).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model), nil
}

// FindByAuthor lists a user's recipes, newest first
func (r *RecipeRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients", orderIngredients).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, ModelToRecipe(&models[i]))
	}
	return recipes, nil
}

// CountIngredients counts the ingredient rows for a recipe
func (r *RecipeRepository) CountIngredients(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&IngredientModel{}).
		Where("recipe_id = ?", recipeID).
		Count(&count)
	return count, result.Error
}

func insertIngredients(tx *gorm.DB, recipeID uuid.UUID, names []string) error {
	for pos, name := range names {
		ing := IngredientModel{RecipeID: recipeID, Name: name, Position: pos}
		if err := tx.Create(&ing).Error; err != nil {
			return err
		}
	}
	return nil
}

// orderIngredients keeps preloaded ingredient rows in authoring order.
func orderIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
