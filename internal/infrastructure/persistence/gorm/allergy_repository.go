package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

// AllergyRepository implements allergy persistence using GORM
type AllergyRepository struct {
	db *gorm.DB
}

// NewAllergyRepository creates a new allergy repository
func NewAllergyRepository(db *gorm.DB) outbound.AllergyRepository {
	return &AllergyRepository{db: db}
}

// Add records an allergy for a user
func (r *AllergyRepository) Add(ctx context.Context, userID uuid.UUID, ingredientName string) (*outbound.Allergy, error) {
	model := AllergyModel{UserID: userID, IngredientName: ingredientName}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateError(err) {
			return nil, outbound.ErrDuplicate
		}
		return nil, err
	}
	return &outbound.Allergy{ID: model.ID, IngredientName: model.IngredientName}, nil
}

// List returns a user's allergies in the order they were recorded
func (r *AllergyRepository) List(ctx context.Context, userID uuid.UUID) ([]outbound.Allergy, error) {
	var models []AllergyModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	allergies := make([]outbound.Allergy, 0, len(models))
	for _, m := range models {
		allergies = append(allergies, outbound.Allergy{ID: m.ID, IngredientName: m.IngredientName})
	}
	return allergies, nil
}

// Delete removes an allergy owned by the user
func (r *AllergyRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&AllergyModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}
