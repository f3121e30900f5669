// Package main provides the entry point for the Forkfeed API server
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appAI "github.com/forkfeed/forkfeed/internal/application/ai"
	appAllergy "github.com/forkfeed/forkfeed/internal/application/allergy"
	appRecipe "github.com/forkfeed/forkfeed/internal/application/recipe"
	appList "github.com/forkfeed/forkfeed/internal/application/shoppinglist"
	appSocial "github.com/forkfeed/forkfeed/internal/application/social"
	appUser "github.com/forkfeed/forkfeed/internal/application/user"
	"github.com/forkfeed/forkfeed/internal/infrastructure/ai/openai"
	"github.com/forkfeed/forkfeed/internal/infrastructure/config"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/handlers"
	"github.com/forkfeed/forkfeed/internal/infrastructure/http/server"
	gormpersistence "github.com/forkfeed/forkfeed/internal/infrastructure/persistence/gorm"
	"github.com/forkfeed/forkfeed/internal/infrastructure/persistence/memory"
	redisstore "github.com/forkfeed/forkfeed/internal/infrastructure/persistence/redis"
	"github.com/forkfeed/forkfeed/internal/infrastructure/security"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	"github.com/forkfeed/forkfeed/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	db, err := gormpersistence.NewConnection(cfg, zapLogger)
	if err != nil {
		return err
	}

	// Sessions only matter in cookie mode, but the store is wired either way
	// so the auth gate can resolve stray cookies.
	var sessions outbound.SessionStore
	if cfg.Auth.Mode == "session" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
			PoolSize: cfg.Redis.PoolSize,
		})
		sessions = redisstore.NewSessionStore(redisClient)
		zapLogger.Info("session store: redis", zap.String("addr", cfg.RedisAddr()))
	} else {
		sessions = memory.NewSessionStore()
	}

	userRepo := gormpersistence.NewUserRepository(db)
	recipeRepo := gormpersistence.NewRecipeRepository(db)
	listRepo := gormpersistence.NewShoppingListRepository(db)
	socialRepo := gormpersistence.NewSocialRepository(db)
	allergyRepo := gormpersistence.NewAllergyRepository(db)

	authService := security.NewAuthService(cfg, sessions, zapLogger)
	aiClient := openai.NewClient(cfg.AI, zapLogger)

	userService := appUser.NewUserService(userRepo, authService, cfg.Auth.BCryptCost, zapLogger)
	recipeService := appRecipe.NewRecipeService(recipeRepo, zapLogger)
	listService := appList.NewShoppingListService(listRepo, recipeRepo, zapLogger)
	socialService := appSocial.NewSocialService(socialRepo, recipeRepo, zapLogger)
	allergyService := appAllergy.NewAllergyService(allergyRepo, zapLogger)
	aiService := appAI.NewAIService(aiClient, recipeRepo, allergyRepo, zapLogger)

	sessionMode := cfg.Auth.Mode == "session"
	srv := server.NewServer(cfg, zapLogger, authService, userRepo, server.Handlers{
		Auth:         handlers.NewAuthHandlers(userService, authService, sessionMode, zapLogger),
		Recipes:      handlers.NewRecipeHandlers(recipeService, zapLogger),
		ShoppingList: handlers.NewShoppingListHandlers(listService, zapLogger),
		Social:       handlers.NewSocialHandlers(socialService, zapLogger),
		Allergies:    handlers.NewAllergyHandlers(allergyService, zapLogger),
		AI:           handlers.NewAIHandlers(aiService, zapLogger),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
