package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

// ShoppingListRepository implements shopping-list persistence using GORM
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository
func NewShoppingListRepository(db *gorm.DB) outbound.ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// List returns the user's items in insertion order
func (r *ShoppingListRepository) List(ctx context.Context, userID uuid.UUID) ([]outbound.ShoppingListItem, error) {
	var models []ShoppingListItemModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]outbound.ShoppingListItem, 0, len(models))
	for _, m := range models {
		items = append(items, outbound.ShoppingListItem{ID: m.ID, Name: m.Name})
	}
	return items, nil
}

// Add appends items for the given names. No de-duplication happens here;
// the merge policy is the caller's responsibility.
func (r *ShoppingListRepository) Add(ctx context.Context, userID uuid.UUID, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertListItems(tx, userID, names)
	})
}

// Replace deletes all of the user's items and inserts the given names
// verbatim, duplicates included, in one transaction.
func (r *ShoppingListRepository) Replace(ctx context.Context, userID uuid.UUID, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&ShoppingListItemModel{}).Error; err != nil {
			return err
		}
		return insertListItems(tx, userID, names)
	})
}

func insertListItems(tx *gorm.DB, userID uuid.UUID, names []string) error {
	// Rows are created one at a time so the autoincrementing key preserves
	// the caller's ordering.
	for _, name := range names {
		item := ShoppingListItemModel{UserID: userID, Name: name}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
