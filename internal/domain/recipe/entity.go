// Package recipe defines the recipe domain entity
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Visibility controls whether a recipe appears on the public feed
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Recipe represents a recipe owned by a user. Ingredients are held as plain
// names; quantities live in the content text, matching the upstream LLM
// output format.
type Recipe struct {
	id          uuid.UUID
	authorID    uuid.UUID
	title       string
	content     string
	visibility  Visibility
	ingredients []string
	aiGenerated bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRecipe creates a new private recipe with validation
func NewRecipe(title, content string, authorID uuid.UUID) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	if authorID == uuid.Nil {
		return nil, ErrInvalidAuthor
	}

	now := time.Now()
	return &Recipe{
		id:         uuid.New(),
		authorID:   authorID,
		title:      title,
		content:    content,
		visibility: VisibilityPrivate,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a recipe from persisted state without validation
func Reconstruct(
	id, authorID uuid.UUID,
	title, content string,
	visibility Visibility,
	ingredients []string,
	aiGenerated bool,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:          id,
		authorID:    authorID,
		title:       title,
		content:     content,
		visibility:  visibility,
		ingredients: ingredients,
		aiGenerated: aiGenerated,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the recipe's ID
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// AuthorID returns the owning user's ID
func (r *Recipe) AuthorID() uuid.UUID {
	return r.authorID
}

// Title returns the recipe title
func (r *Recipe) Title() string {
	return r.title
}

// Content returns the recipe body text
func (r *Recipe) Content() string {
	return r.content
}

// Visibility returns the recipe visibility
func (r *Recipe) Visibility() Visibility {
	return r.visibility
}

// IsPublic reports whether the recipe is publicly visible
func (r *Recipe) IsPublic() bool {
	return r.visibility == VisibilityPublic
}

// Ingredients returns the ingredient names
func (r *Recipe) Ingredients() []string {
	return r.ingredients
}

// AIGenerated reports whether the recipe came from the generator
func (r *Recipe) AIGenerated() bool {
	return r.aiGenerated
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// Update replaces title and content
func (r *Recipe) Update(title, content string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return ErrContentRequired
	}

	r.title = title
	r.content = content
	r.updatedAt = time.Now()
	return nil
}

// SetIngredients normalizes and stores the ingredient names: entries are
// trimmed, blanks dropped, and duplicates within the recipe collapsed
// (first occurrence wins), mirroring the per-recipe unique constraint.
func (r *Recipe) SetIngredients(names []string) {
	seen := make(map[string]bool, len(names))
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}
	r.ingredients = cleaned
	r.updatedAt = time.Now()
}

// Publish makes the recipe publicly visible
func (r *Recipe) Publish() {
	r.visibility = VisibilityPublic
	r.updatedAt = time.Now()
}

// MarkAIGenerated flags the recipe as generator output
func (r *Recipe) MarkAIGenerated() {
	r.aiGenerated = true
	r.updatedAt = time.Now()
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if len(title) > 255 {
		return ErrTitleTooLong
	}
	return nil
}
