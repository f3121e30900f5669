// Package testutils provides shared helpers and factories for tests
package testutils

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/forkfeed/forkfeed/internal/domain/recipe"
	"github.com/forkfeed/forkfeed/internal/domain/user"
	"github.com/forkfeed/forkfeed/internal/infrastructure/config"
	gormpersistence "github.com/forkfeed/forkfeed/internal/infrastructure/persistence/gorm"
)

// NewTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormpersistence.AutoMigrate(db))
	return db
}

// TestConfig returns a configuration suitable for tests. BCrypt cost is the
// library minimum so hashing stays fast.
func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "forkfeed-test",
			Environment: "test",
			Version:     "test",
		},
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RequestTimeout:  5 * time.Second,
			RateLimitPerMin: 6000,
			RateLimitBurst:  100,
		},
		Auth: config.AuthConfig{
			Mode:          "bearer",
			JWTSecret:     "test-secret-key-for-testing-only-32b",
			TokenTTL:      30 * time.Minute,
			SessionTTL:    time.Hour,
			SessionCookie: "forkfeed_session",
			BCryptCost:    bcrypt.MinCost,
		},
	}
}

// UserFactory builds domain users with fake data
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a user factory with a seeded faker
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{faker: gofakeit.New(seed)}
}

// Build creates a valid user with a known password
func (f *UserFactory) Build(t *testing.T, password string) *user.User {
	t.Helper()
	u, err := user.NewUser(f.faker.Email(), f.faker.Name(), password, bcrypt.MinCost)
	require.NoError(t, err)
	return u
}

// RecipeFactory builds domain recipes with fake data
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a recipe factory with a seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Build creates a valid private recipe for the author
func (f *RecipeFactory) Build(t *testing.T, authorID uuid.UUID, ingredients ...string) *recipe.Recipe {
	t.Helper()
	rec, err := recipe.NewRecipe(f.faker.Dinner(), f.faker.Paragraph(1, 3, 8, " "), authorID)
	require.NoError(t, err)
	if len(ingredients) > 0 {
		rec.SetIngredients(ingredients)
	}
	return rec
}
