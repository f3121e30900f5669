package gorm_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	gormdb "gorm.io/gorm"

	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	"github.com/forkfeed/forkfeed/internal/domain/user"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	"github.com/forkfeed/forkfeed/internal/testutils"

	gormrepo "github.com/forkfeed/forkfeed/internal/infrastructure/persistence/gorm"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx       context.Context
	db        *gormdb.DB
	users     outbound.UserRepository
	recipes   outbound.RecipeRepository
	lists     outbound.ShoppingListRepository
	social    outbound.SocialRepository
	allergies outbound.AllergyRepository

	userFactory   *testutils.UserFactory
	recipeFactory *testutils.RecipeFactory
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutils.NewTestDB(s.T())
	s.users = gormrepo.NewUserRepository(s.db)
	s.recipes = gormrepo.NewRecipeRepository(s.db)
	s.lists = gormrepo.NewShoppingListRepository(s.db)
	s.social = gormrepo.NewSocialRepository(s.db)
	s.allergies = gormrepo.NewAllergyRepository(s.db)
	s.userFactory = testutils.NewUserFactory(1)
	s.recipeFactory = testutils.NewRecipeFactory(1)
}

func (s *RepositoryTestSuite) createUser() *user.User {
	u := s.userFactory.Build(s.T(), "pw123")
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func (s *RepositoryTestSuite) createRecipe(authorID uuid.UUID, ingredients ...string) *recipe.Recipe {
	rec := s.recipeFactory.Build(s.T(), authorID, ingredients...)
	s.Require().NoError(s.recipes.Create(s.ctx, rec))
	return rec
}

func (s *RepositoryTestSuite) TestUserRoundTrip() {
	u := s.createUser()

	byID, err := s.users.FindByID(s.ctx, u.ID())
	s.Require().NoError(err)
	s.Equal(u.Email(), byID.Email())
	s.NoError(byID.CheckPassword("pw123"))

	byEmail, err := s.users.FindByEmail(s.ctx, u.Email())
	s.Require().NoError(err)
	s.Equal(u.ID(), byEmail.ID())
}

func (s *RepositoryTestSuite) TestUserDuplicateEmail() {
	u := s.createUser()

	dup, err := user.NewUser(u.Email(), "Other Name", "pw456", 4)
	s.Require().NoError(err)

	s.ErrorIs(s.users.Create(s.ctx, dup), outbound.ErrDuplicate)
}

func (s *RepositoryTestSuite) TestUserNotFound() {
	_, err := s.users.FindByID(s.ctx, uuid.New())
	s.ErrorIs(err, outbound.ErrNotFound)

	_, err = s.users.FindByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, outbound.ErrNotFound)
}

func (s *RepositoryTestSuite) TestRecipeRoundTrip() {
	author := s.createUser()
	rec := s.createRecipe(author.ID(), "Flour", "Milk")

	got, err := s.recipes.FindByID(s.ctx, rec.ID())
	s.Require().NoError(err)
	s.Equal(rec.Title(), got.Title())
	s.ElementsMatch([]string{"Flour", "Milk"}, got.Ingredients())
}

func (s *RepositoryTestSuite) TestRecipeIngredientsKeepAuthoringOrder() {
	author := s.createUser()
	ingredients := []string{"Milk", "butter", "milk", "Butter", "Apples"}
	rec := s.createRecipe(author.ID(), ingredients...)

	got, err := s.recipes.FindByID(s.ctx, rec.ID())
	s.Require().NoError(err)
	s.Equal(ingredients, got.Ingredients())

	byAuthor, err := s.recipes.FindByAuthor(s.ctx, author.ID())
	s.Require().NoError(err)
	s.Require().Len(byAuthor, 1)
	s.Equal(ingredients, byAuthor[0].Ingredients())

	s.Require().NoError(s.social.AddBookmark(s.ctx, author.ID(), rec.ID()))
	bookmarked, err := s.social.ListBookmarkedRecipes(s.ctx, author.ID())
	s.Require().NoError(err)
	s.Require().Len(bookmarked, 1)
	s.Equal(ingredients, bookmarked[0].Ingredients())
}

func (s *RepositoryTestSuite) TestRecipeUpdateReplacesIngredients() {
	author := s.createUser()
	rec := s.createRecipe(author.ID(), "Flour", "Milk")

	s.Require().NoError(rec.Update("New Title", "New content."))
	rec.SetIngredients([]string{"Eggs"})
	s.Require().NoError(s.recipes.Update(s.ctx, rec))

	got, err := s.recipes.FindByID(s.ctx, rec.ID())
	s.Require().NoError(err)
	s.Equal("New Title", got.Title())
	s.Equal([]string{"Eggs"}, got.Ingredients())

	count, err := s.recipes.CountIngredients(s.ctx, rec.ID())
	s.Require().NoError(err)
	s.EqualValues(1, count)
}

func (s *RepositoryTestSuite) TestRecipeDeleteLeavesNoOrphans() {
	author := s.createUser()
	rec := s.createRecipe(author.ID(), "Flour", "Milk")

	post, err := s.social.EnsurePost(s.ctx, rec.ID())
	s.Require().NoError(err)
	s.Require().NoError(s.social.AddBookmark(s.ctx, author.ID(), rec.ID()))
	_, err = s.social.AddComment(s.ctx, post.ID, author.ID(), "Looks great")
	s.Require().NoError(err)

	s.Require().NoError(s.recipes.Delete(s.ctx, rec.ID()))

	_, err = s.recipes.FindByID(s.ctx, rec.ID())
	s.ErrorIs(err, outbound.ErrNotFound)

	count, err := s.recipes.CountIngredients(s.ctx, rec.ID())
	s.Require().NoError(err)
	s.EqualValues(0, count)

	_, err = s.social.FindPost(s.ctx, post.ID)
	s.ErrorIs(err, outbound.ErrNotFound)

	var bookmarks, comments int64
	s.Require().NoError(s.db.Model(&gormrepo.BookmarkModel{}).Where("recipe_id = ?", rec.ID()).Count(&bookmarks).Error)
	s.Require().NoError(s.db.Model(&gormrepo.CommentModel{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	s.EqualValues(0, bookmarks)
	s.EqualValues(0, comments)
}

func (s *RepositoryTestSuite) TestRecipeDeleteMissing() {
	s.ErrorIs(s.recipes.Delete(s.ctx, uuid.New()), outbound.ErrNotFound)
}

func (s *RepositoryTestSuite) TestShoppingListOrderAndDuplicates() {
	u := s.createUser()

	s.Require().NoError(s.lists.Add(s.ctx, u.ID(), []string{"Milk", "Flour"}))
	s.Require().NoError(s.lists.Add(s.ctx, u.ID(), []string{"Eggs"}))

	items, err := s.lists.List(s.ctx, u.ID())
	s.Require().NoError(err)
	s.Equal([]string{"Milk", "Flour", "Eggs"}, itemNames(items))

	// replace stores duplicates verbatim
	s.Require().NoError(s.lists.Replace(s.ctx, u.ID(), []string{"Milk", "Milk"}))

	items, err = s.lists.List(s.ctx, u.ID())
	s.Require().NoError(err)
	s.Equal([]string{"Milk", "Milk"}, itemNames(items))
}

func (s *RepositoryTestSuite) TestShoppingListScopedPerUser() {
	a := s.createUser()
	b := s.createUser()

	s.Require().NoError(s.lists.Add(s.ctx, a.ID(), []string{"Milk"}))

	items, err := s.lists.List(s.ctx, b.ID())
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *RepositoryTestSuite) TestEnsurePostIdempotent() {
	author := s.createUser()
	rec := s.createRecipe(author.ID())

	first, err := s.social.EnsurePost(s.ctx, rec.ID())
	s.Require().NoError(err)

	second, err := s.social.EnsurePost(s.ctx, rec.ID())
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
}

func (s *RepositoryTestSuite) TestLikeUnlikeFloorsAtZero() {
	author := s.createUser()
	rec := s.createRecipe(author.ID())
	post, err := s.social.EnsurePost(s.ctx, rec.ID())
	s.Require().NoError(err)

	s.Require().NoError(s.social.Like(s.ctx, post.ID))
	s.Require().NoError(s.social.Like(s.ctx, post.ID))

	got, err := s.social.FindPost(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal(2, got.Likes)

	s.Require().NoError(s.social.Unlike(s.ctx, post.ID))
	s.Require().NoError(s.social.Unlike(s.ctx, post.ID))
	s.Require().NoError(s.social.Unlike(s.ctx, post.ID)) // already at zero

	got, err = s.social.FindPost(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal(0, got.Likes)
}

func (s *RepositoryTestSuite) TestLikeMissingPost() {
	s.ErrorIs(s.social.Like(s.ctx, uuid.New()), outbound.ErrNotFound)
	s.ErrorIs(s.social.Unlike(s.ctx, uuid.New()), outbound.ErrNotFound)
}

func (s *RepositoryTestSuite) TestFeedShowsOnlyPublicRecipes() {
	author := s.createUser()
	publicRec := s.createRecipe(author.ID())
	privateRec := s.createRecipe(author.ID())

	publicRec.Publish()
	s.Require().NoError(s.recipes.Update(s.ctx, publicRec))
	_, err := s.social.EnsurePost(s.ctx, publicRec.ID())
	s.Require().NoError(err)
	_, err = s.social.EnsurePost(s.ctx, privateRec.ID())
	s.Require().NoError(err)

	feed, err := s.social.ListFeed(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(feed, 1)
	s.Equal(publicRec.ID(), feed[0].RecipeID)
}

func (s *RepositoryTestSuite) TestCommentsCarryAuthorName() {
	author := s.createUser()
	rec := s.createRecipe(author.ID())
	post, err := s.social.EnsurePost(s.ctx, rec.ID())
	s.Require().NoError(err)

	created, err := s.social.AddComment(s.ctx, post.ID, author.ID(), "Tasty")
	s.Require().NoError(err)
	s.Equal(author.Name(), created.AuthorName)

	comments, err := s.social.ListComments(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 1)
	s.Equal("Tasty", comments[0].Text)
	s.Equal(author.Name(), comments[0].AuthorName)
}

func (s *RepositoryTestSuite) TestBookmarks() {
	u := s.createUser()
	rec := s.createRecipe(u.ID(), "Flour")

	s.Require().NoError(s.social.AddBookmark(s.ctx, u.ID(), rec.ID()))

	recipes, err := s.social.ListBookmarkedRecipes(s.ctx, u.ID())
	s.Require().NoError(err)
	s.Require().Len(recipes, 1)
	s.Equal(rec.ID(), recipes[0].ID())
	s.Equal([]string{"Flour"}, recipes[0].Ingredients())
}

func (s *RepositoryTestSuite) TestAllergies() {
	u := s.createUser()

	a, err := s.allergies.Add(s.ctx, u.ID(), "Peanuts")
	s.Require().NoError(err)
	s.Equal("Peanuts", a.IngredientName)

	_, err = s.allergies.Add(s.ctx, u.ID(), "Peanuts")
	s.ErrorIs(err, outbound.ErrDuplicate)

	list, err := s.allergies.List(s.ctx, u.ID())
	s.Require().NoError(err)
	s.Require().Len(list, 1)

	s.Require().NoError(s.allergies.Delete(s.ctx, u.ID(), a.ID))
	s.ErrorIs(s.allergies.Delete(s.ctx, u.ID(), a.ID), outbound.ErrNotFound)
}

func itemNames(items []outbound.ShoppingListItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}
