// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);default:'member'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time

	// Relationships
	Recipes []RecipeModel `gorm:"foreignKey:AuthorID"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	AuthorID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Content     string    `gorm:"type:text;not null"`
	Visibility  string    `gorm:"type:varchar(20);default:'private';index"`
	AIGenerated bool      `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	Author      UserModel         `gorm:"foreignKey:AuthorID"`
	Ingredients []IngredientModel `gorm:"foreignKey:RecipeID"`
}

// IngredientModel represents an ingredient row belonging to a recipe.
// Ingredient names are unique within a recipe; Position keeps the
// author's ordering, since UUID keys carry none.
type IngredientModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uq_recipe_ingredient"`
	Name     string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_recipe_ingredient"`
	Position int       `gorm:"not null;default:0"`

	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// AllergyModel represents an ingredient a user must avoid. A user lists
// each ingredient at most once.
type AllergyModel struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uq_user_allergy"`
	IngredientName string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_allergy"`
	CreatedAt      time.Time

	User UserModel `gorm:"foreignKey:UserID"`
}

// PostModel represents a recipe's presence on the public feed
type PostModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex"`
	Likes     int       `gorm:"default:0"`
	CreatedAt time.Time

	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// BookmarkModel represents a user's bookmark of a recipe
type BookmarkModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt time.Time

	User   UserModel   `gorm:"foreignKey:UserID"`
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
}

// CommentModel represents a comment on a feed post
type CommentModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time

	Post PostModel `gorm:"foreignKey:PostID"`
	User UserModel `gorm:"foreignKey:UserID"`
}

// ShoppingListItemModel represents one entry on a user's shopping list.
// The autoincrementing key preserves insertion order; duplicates are allowed
// at this level, the merge policy lives in the application layer.
type ShoppingListItemModel struct {
	ID     uint64    `gorm:"primaryKey;autoIncrement"`
	UserID uuid.UUID `gorm:"type:char(36);not null;index"`
	Name   string    `gorm:"type:varchar(255);not null"`

	User UserModel `gorm:"foreignKey:UserID"`
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for IngredientModel
func (i *IngredientModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for AllergyModel
func (a *AllergyModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PostModel
func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for BookmarkModel
func (b *BookmarkModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for CommentModel
func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (UserModel) TableName() string {
	return "users"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (IngredientModel) TableName() string {
	return "ingredients"
}

func (AllergyModel) TableName() string {
	return "allergies"
}

func (PostModel) TableName() string {
	return "posts"
}

func (BookmarkModel) TableName() string {
	return "bookmarks"
}

func (CommentModel) TableName() string {
	return "comments"
}

func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}
