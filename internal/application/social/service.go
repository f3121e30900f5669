// Package social provides the application layer for the public feed:
// posts, likes, bookmarks, and comments.
package social

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appRecipe "github.com/forkfeed/forkfeed/internal/application/recipe"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	apperrors "github.com/forkfeed/forkfeed/pkg/errors"
)

// SocialService implements the feed use cases
type SocialService struct {
	socialRepo outbound.SocialRepository
	recipeRepo outbound.RecipeRepository
	logger     *zap.Logger
}

// NewSocialService creates a new social service
func NewSocialService(
	socialRepo outbound.SocialRepository,
	recipeRepo outbound.RecipeRepository,
	logger *zap.Logger,
) *SocialService {
	return &SocialService{
		socialRepo: socialRepo,
		recipeRepo: recipeRepo,
		logger:     logger.Named("social-service"),
	}
}

// PublishCommand contains the recipe to publish
type PublishCommand struct {
	RecipeID uuid.UUID `json:"recipe_id" validate:"required"`
}

// BookmarkCommand contains the recipe to bookmark
type BookmarkCommand struct {
	RecipeID uuid.UUID `json:"recipe_id" validate:"required"`
}

// CommentCommand contains a new comment's text
type CommentCommand struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// PostDTO represents a feed post returned by the API
type PostDTO struct {
	PostID   uuid.UUID `json:"post_id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	AuthorID uuid.UUID `json:"author_id,omitempty"`
	Title    string    `json:"title,omitempty"`
	Content  string    `json:"content,omitempty"`
	Likes    int       `json:"likes"`
}

// CommentDTO represents a comment returned by the API
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publish makes the caller's recipe public and puts it on the feed. The
// operation is idempotent; publishing an already-public recipe returns its
// existing post. Recipes the caller does not own are reported as not found.
func (s *SocialService) Publish(ctx context.Context, callerID uuid.UUID, cmd PublishCommand) (*PostDTO, error) {
	rec, err := s.recipeRepo.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Recipe")
		}
		return nil, apperrors.Wrap(err, "failed to load recipe")
	}
	if rec.AuthorID() != callerID {
		return nil, apperrors.NewNotFoundError("Recipe")
	}

	if !rec.IsPublic() {
		rec.Publish()
		if err := s.recipeRepo.Update(ctx, rec); err != nil {
			return nil, apperrors.Wrap(err, "failed to publish recipe")
		}
	}

	post, err := s.socialRepo.EnsurePost(ctx, rec.ID())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create post")
	}

	s.logger.Info("recipe published",
		zap.String("recipe_id", rec.ID().String()),
		zap.String("post_id", post.ID.String()),
	)

	return &PostDTO{PostID: post.ID, RecipeID: post.RecipeID, Likes: post.Likes}, nil
}

// ListFeed returns every public recipe with its post id and like count
func (s *SocialService) ListFeed(ctx context.Context) ([]PostDTO, error) {
	feed, err := s.socialRepo.ListFeed(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load feed")
	}

	posts := make([]PostDTO, 0, len(feed))
	for _, entry := range feed {
		posts = append(posts, PostDTO{
			PostID:   entry.PostID,
			RecipeID: entry.RecipeID,
			AuthorID: entry.AuthorID,
			Title:    entry.Title,
			Content:  entry.Content,
			Likes:    entry.Likes,
		})
	}
	return posts, nil
}

// Like increments a post's like count
func (s *SocialService) Like(ctx context.Context, postID uuid.UUID) (*PostDTO, error) {
	if err := s.socialRepo.Like(ctx, postID); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Post")
		}
		return nil, apperrors.Wrap(err, "failed to like post")
	}
	return s.postDTO(ctx, postID)
}

// Unlike decrements a post's like count, stopping at zero. Unliking a post
// with no likes succeeds and leaves the count at zero.
func (s *SocialService) Unlike(ctx context.Context, postID uuid.UUID) (*PostDTO, error) {
	if err := s.socialRepo.Unlike(ctx, postID); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Post")
		}
		return nil, apperrors.Wrap(err, "failed to unlike post")
	}
	return s.postDTO(ctx, postID)
}

// Bookmark records the caller's bookmark of a public or owned recipe
func (s *SocialService) Bookmark(ctx context.Context, callerID uuid.UUID, cmd BookmarkCommand) error {
	rec, err := s.recipeRepo.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return apperrors.NewNotFoundError("Recipe")
		}
		return apperrors.Wrap(err, "failed to load recipe")
	}
	if rec.AuthorID() != callerID && !rec.IsPublic() {
		return apperrors.NewNotFoundError("Recipe")
	}

	if err := s.socialRepo.AddBookmark(ctx, callerID, cmd.RecipeID); err != nil {
		return apperrors.Wrap(err, "failed to add bookmark")
	}
	return nil
}

// ListBookmarks returns the caller's bookmarked recipes
func (s *SocialService) ListBookmarks(ctx context.Context, callerID uuid.UUID) ([]appRecipe.RecipeDTO, error) {
	recipes, err := s.socialRepo.ListBookmarkedRecipes(ctx, callerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load bookmarks")
	}

	dtos := make([]appRecipe.RecipeDTO, 0, len(recipes))
	for _, rec := range recipes {
		dtos = append(dtos, appRecipe.EntityToDTO(rec))
	}
	return dtos, nil
}

// Comment adds a comment to a post
func (s *SocialService) Comment(ctx context.Context, callerID, postID uuid.UUID, cmd CommentCommand) (*CommentDTO, error) {
	if _, err := s.socialRepo.FindPost(ctx, postID); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Post")
		}
		return nil, apperrors.Wrap(err, "failed to load post")
	}

	comment, err := s.socialRepo.AddComment(ctx, postID, callerID, cmd.Text)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to add comment")
	}

	return &CommentDTO{
		ID:         comment.ID,
		PostID:     comment.PostID,
		AuthorName: comment.AuthorName,
		Text:       comment.Text,
		CreatedAt:  comment.CreatedAt,
	}, nil
}

// ListComments returns a post's comments, oldest first
func (s *SocialService) ListComments(ctx context.Context, postID uuid.UUID) ([]CommentDTO, error) {
	if _, err := s.socialRepo.FindPost(ctx, postID); err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Post")
		}
		return nil, apperrors.Wrap(err, "failed to load post")
	}

	comments, err := s.socialRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load comments")
	}

	dtos := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, CommentDTO{
			ID:         c.ID,
			PostID:     c.PostID,
			AuthorName: c.AuthorName,
			Text:       c.Text,
			CreatedAt:  c.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *SocialService) postDTO(ctx context.Context, postID uuid.UUID) (*PostDTO, error) {
	post, err := s.socialRepo.FindPost(ctx, postID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load post")
	}
	return &PostDTO{PostID: post.ID, RecipeID: post.RecipeID, Likes: post.Likes}, nil
}
