// Package outbound defines the driven-side ports of the application:
// repository, session-store, and AI-provider interfaces implemented by the
// infrastructure layer.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	"github.com/forkfeed/forkfeed/internal/domain/user"
)

// Sentinel errors shared by all repository implementations
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository provides user persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// RecipeRepository provides recipe persistence. Delete removes the recipe
// together with its ingredient rows, bookmarks, comments, and social post in
// one transaction.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID) ([]*recipe.Recipe, error)
	CountIngredients(ctx context.Context, recipeID uuid.UUID) (int64, error)
}

// ShoppingListItem is a single entry on a user's shopping list
type ShoppingListItem struct {
	ID   uint64
	Name string
}

// ShoppingListRepository provides shopping-list persistence. List returns
// items in insertion order. Replace deletes all of the user's items and
// inserts the given names verbatim within one transaction.
type ShoppingListRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error)
	Add(ctx context.Context, userID uuid.UUID, names []string) error
	Replace(ctx context.Context, userID uuid.UUID, names []string) error
}

// Post is a recipe's presence on the public feed
type Post struct {
	ID       uuid.UUID
	RecipeID uuid.UUID
	Likes    int
}

// FeedPost is a feed entry joined with its recipe
type FeedPost struct {
	PostID   uuid.UUID
	RecipeID uuid.UUID
	AuthorID uuid.UUID
	Title    string
	Content  string
	Likes    int
}

// Comment is a comment on a feed post
type Comment struct {
	ID         uuid.UUID
	PostID     uuid.UUID
	AuthorID   uuid.UUID
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// SocialRepository provides the social layer: feed posts, likes, bookmarks,
// and comments.
type SocialRepository interface {
	// EnsurePost returns the post for a recipe, creating it if absent.
	EnsurePost(ctx context.Context, recipeID uuid.UUID) (*Post, error)
	FindPost(ctx context.Context, postID uuid.UUID) (*Post, error)
	ListFeed(ctx context.Context) ([]FeedPost, error)
	Like(ctx context.Context, postID uuid.UUID) error
	// Unlike decrements the like count but never below zero.
	Unlike(ctx context.Context, postID uuid.UUID) error
	AddBookmark(ctx context.Context, userID, recipeID uuid.UUID) error
	ListBookmarkedRecipes(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error)
	AddComment(ctx context.Context, postID, authorID uuid.UUID, text string) (*Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]Comment, error)
}

// Allergy is an ingredient a user must avoid
type Allergy struct {
	ID             uuid.UUID
	IngredientName string
}

// AllergyRepository provides allergy persistence
type AllergyRepository interface {
	Add(ctx context.Context, userID uuid.UUID, ingredientName string) (*Allergy, error)
	List(ctx context.Context, userID uuid.UUID) ([]Allergy, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SessionStore holds server-side sessions for the cookie credential variant.
// A missing session id resolves to ErrNotFound, which the auth gate treats
// as unauthenticated.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error)
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID string) error
}

// GenerateRequest is the input to the recipe generator
type GenerateRequest struct {
	Prompt              string
	Ingredients         []string
	DietaryRestrictions []string
}

// GeneratedRecipe is the structured output parsed from the LLM reply
type GeneratedRecipe struct {
	Title       string
	Content     string
	Ingredients []string
}

// AIService generates recipe text via an external completion provider.
// The provider is slow and unreliable; callers must treat failures as a
// dependency error, never a user error.
type AIService interface {
	GenerateRecipe(ctx context.Context, req GenerateRequest) (*GeneratedRecipe, error)
}
