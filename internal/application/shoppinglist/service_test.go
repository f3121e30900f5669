package shoppinglist_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/application/shoppinglist"
	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	gormrepo "github.com/forkfeed/forkfeed/internal/infrastructure/persistence/gorm"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	"github.com/forkfeed/forkfeed/internal/testutils"
	"github.com/forkfeed/forkfeed/pkg/errors"
)

type fixture struct {
	ctx     context.Context
	service *shoppinglist.ShoppingListService
	recipes outbound.RecipeRepository
	userID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutils.NewTestDB(t)
	recipes := gormrepo.NewRecipeRepository(db)
	lists := gormrepo.NewShoppingListRepository(db)

	users := gormrepo.NewUserRepository(db)
	u := testutils.NewUserFactory(7).Build(t, "pw123")
	require.NoError(t, users.Create(context.Background(), u))

	return &fixture{
		ctx:     context.Background(),
		service: shoppinglist.NewShoppingListService(lists, recipes, zap.NewNop()),
		recipes: recipes,
		userID:  u.ID(),
	}
}

func (f *fixture) addRecipe(t *testing.T, ingredients ...string) *recipe.Recipe {
	t.Helper()
	rec := testutils.NewRecipeFactory(7).Build(t, f.userID, ingredients...)
	require.NoError(t, f.recipes.Create(f.ctx, rec))
	return rec
}

func TestAddRecipeIngredientsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	rec := f.addRecipe(t, "Flour", "Milk", "Eggs")

	first, err := f.service.AddRecipeIngredients(f.ctx, f.userID, rec.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"Flour", "Milk", "Eggs"}, first.Items)

	second, err := f.service.AddRecipeIngredients(f.ctx, f.userID, rec.ID())
	require.NoError(t, err)
	assert.Equal(t, first.Items, second.Items)
}

func TestAddRecipeIngredientsMergesCaseSensitively(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Replace(f.ctx, f.userID, shoppinglist.ReplaceCommand{
		Items: []string{"Milk", "butter"},
	})
	require.NoError(t, err)

	// "milk" differs from "Milk" by case only; both survive
	rec := f.addRecipe(t, "milk", "Butter", "butter")

	list, err := f.service.AddRecipeIngredients(f.ctx, f.userID, rec.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "butter", "milk", "Butter"}, list.Items)
}

func TestAddRecipeIngredientsUnknownRecipe(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.AddRecipeIngredients(f.ctx, f.userID, uuid.New())
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestReplacePreservesDuplicatesAndOrder(t *testing.T) {
	f := newFixture(t)

	list, err := f.service.Replace(f.ctx, f.userID, shoppinglist.ReplaceCommand{
		Items: []string{"Milk", "Milk", "Eggs"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Milk", "Eggs"}, list.Items)

	stored, err := f.service.List(f.ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Milk", "Eggs"}, stored.Items)
}

func TestReplaceDropsBlankEntries(t *testing.T) {
	f := newFixture(t)

	list, err := f.service.Replace(f.ctx, f.userID, shoppinglist.ReplaceCommand{
		Items: []string{" Milk ", "", "   ", "Eggs"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Eggs"}, list.Items)
}

func TestReplaceWithEmptyClearsList(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Replace(f.ctx, f.userID, shoppinglist.ReplaceCommand{
		Items: []string{"Milk"},
	})
	require.NoError(t, err)

	list, err := f.service.Replace(f.ctx, f.userID, shoppinglist.ReplaceCommand{Items: []string{}})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestExport(t *testing.T) {
	f := newFixture(t)

	t.Run("empty list cannot be exported", func(t *testing.T) {
		_, err := f.service.Export(f.ctx, f.userID)
		assert.True(t, errors.Is(err, errors.CodeValidationFailed))
	})

	t.Run("one item per line", func(t *testing.T) {
		_, err := f.service.Replace(f.ctx, f.userID, shoppinglist.ReplaceCommand{
			Items: []string{"Milk", "Eggs"},
		})
		require.NoError(t, err)

		text, err := f.service.Export(f.ctx, f.userID)
		require.NoError(t, err)
		assert.Equal(t, "Milk\nEggs\n", text)
	})
}
