// Mapping between domain entities and GORM models
package gorm

import (
	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	"github.com/forkfeed/forkfeed/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         string(u.Role()),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(model *UserModel) *user.User {
	role := user.Role(model.Role)
	if role != user.RoleAdmin {
		role = user.RoleMember
	}
	return user.Reconstruct(
		model.ID,
		model.Email,
		model.Name,
		model.PasswordHash,
		role,
		model.CreatedAt,
		model.UpdatedAt,
		model.LastLoginAt,
	)
}

// RecipeToModel converts a domain recipe to a GORM model. Ingredient rows
// are mapped separately by the repository so their lifecycle can be managed
// inside the same transaction.
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:          r.ID(),
		AuthorID:    r.AuthorID(),
		Title:       r.Title(),
		Content:     r.Content(),
		Visibility:  string(r.Visibility()),
		AIGenerated: r.AIGenerated(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(model *RecipeModel) *recipe.Recipe {
	ingredients := make([]string, 0, len(model.Ingredients))
	for _, ing := range model.Ingredients {
		ingredients = append(ingredients, ing.Name)
	}

	visibility := recipe.Visibility(model.Visibility)
	if visibility != recipe.VisibilityPublic {
		visibility = recipe.VisibilityPrivate
	}

	return recipe.Reconstruct(
		model.ID,
		model.AuthorID,
		model.Title,
		model.Content,
		visibility,
		ingredients,
		model.AIGenerated,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
