package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

// SocialRepository implements the social layer persistence using GORM
type SocialRepository struct {
	db *gorm.DB
}

// NewSocialRepository creates a new social repository
func NewSocialRepository(db *gorm.DB) outbound.SocialRepository {
	return &SocialRepository{db: db}
}

// EnsurePost returns the post for a recipe, creating it if absent
func (r *SocialRepository) EnsurePost(ctx context.Context, recipeID uuid.UUID) (*outbound.Post, error) {
	var model PostModel

	err := r.db.WithContext(ctx).First(&model, "recipe_id = ?", recipeID).Error
	if err == nil {
		return postToPort(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	model = PostModel{RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		// lost a race with a concurrent publish; read the winner
		if isDuplicateError(err) {
			if err := r.db.WithContext(ctx).First(&model, "recipe_id = ?", recipeID).Error; err != nil {
				return nil, err
			}
			return postToPort(&model), nil
		}
		return nil, err
	}
	return postToPort(&model), nil
}

// FindPost finds a post by ID
func (r *SocialRepository) FindPost(ctx context.Context, postID uuid.UUID) (*outbound.Post, error) {
	var model PostModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", postID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}
	return postToPort(&model), nil
}

// ListFeed returns all posts joined with their public recipes
func (r *SocialRepository) ListFeed(ctx context.Context) ([]outbound.FeedPost, error) {
	var rows []struct {
		PostID   uuid.UUID
		RecipeID uuid.UUID
		AuthorID uuid.UUID
		Title    string
		Content  string
		Likes    int
	}

	result := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id AS post_id, recipes.id AS recipe_id, recipes.author_id, recipes.title, recipes.content, posts.likes").
		Joins("JOIN recipes ON recipes.id = posts.recipe_id").
		Where("recipes.visibility = ?", string(recipe.VisibilityPublic)).
		Order("posts.created_at DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	feed := make([]outbound.FeedPost, 0, len(rows))
	for _, row := range rows {
		feed = append(feed, outbound.FeedPost{
			PostID:   row.PostID,
			RecipeID: row.RecipeID,
			AuthorID: row.AuthorID,
			Title:    row.Title,
			Content:  row.Content,
			Likes:    row.Likes,
		})
	}
	return feed, nil
}

// Like increments the like count atomically
func (r *SocialRepository) Like(ctx context.Context, postID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&PostModel{}).
		Where("id = ?", postID).
		Update("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// Unlike decrements the like count, never below zero. Unliking a post that
// is already at zero is a no-op, not an error.
func (r *SocialRepository) Unlike(ctx context.Context, postID uuid.UUID) error {
	var model PostModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return outbound.ErrNotFound
		}
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PostModel{}).
		Where("id = ? AND likes > 0", postID).
		Update("likes", gorm.Expr("likes - 1"))
	return result.Error
}

// AddBookmark records a user's bookmark of a recipe
func (r *SocialRepository) AddBookmark(ctx context.Context, userID, recipeID uuid.UUID) error {
	bookmark := BookmarkModel{UserID: userID, RecipeID: recipeID}
	return r.db.WithContext(ctx).Create(&bookmark).Error
}

// ListBookmarkedRecipes returns the recipes a user has bookmarked
func (r *SocialRepository) ListBookmarkedRecipes(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Ingredients", orderIngredients).
		Joins("JOIN bookmarks ON bookmarks.recipe_id = recipes.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
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

// AddComment records a comment on a post
func (r *SocialRepository) AddComment(ctx context.Context, postID, authorID uuid.UUID, text string) (*outbound.Comment, error) {
	model := CommentModel{PostID: postID, UserID: authorID, Text: text}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}

	var author UserModel
	if err := r.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		return nil, err
	}

	return &outbound.Comment{
		ID:         model.ID,
		PostID:     model.PostID,
		AuthorID:   model.UserID,
		AuthorName: author.Name,
		Text:       model.Text,
		CreatedAt:  model.CreatedAt,
	}, nil
}

// ListComments returns a post's comments with commenter names, oldest first
func (r *SocialRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]outbound.Comment, error) {
	var rows []struct {
		ID        uuid.UUID
		PostID    uuid.UUID
		UserID    uuid.UUID
		Name      string
		Text      string
		CreatedAt time.Time
	}

	result := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.post_id, comments.user_id, users.name, comments.text, comments.created_at").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	comments := make([]outbound.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, outbound.Comment{
			ID:         row.ID,
			PostID:     row.PostID,
			AuthorID:   row.UserID,
			AuthorName: row.Name,
			Text:       row.Text,
			CreatedAt:  row.CreatedAt,
		})
	}
	return comments, nil
}

func postToPort(model *PostModel) *outbound.Post {
	return &outbound.Post{
		ID:       model.ID,
		RecipeID: model.RecipeID,
		Likes:    model.Likes,
	}
}
