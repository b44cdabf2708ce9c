package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pitchside/internal/api"
	"pitchside/internal/api/handlers"
	"pitchside/internal/embedding"
	"pitchside/internal/extract"
	"pitchside/internal/repository"
	"pitchside/internal/retrieval"
	"pitchside/internal/service"
	"pitchside/pkg/auth"
	"pitchside/pkg/config"
	"pitchside/pkg/logger"
	"pitchside/pkg/postgres"

	"go.uber.org/zap"
)

// @title Pitchside API
// @version 1.0
// @description Personalized football betting assistant API

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting pitchside service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	profileRepo := repository.NewProfileRepository(db, appLogger)
	chatRepo := repository.NewChatRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Embedder with a cache in front of the API
	embedder := embedding.NewCachedEmbedder(
		embedding.NewOpenAIEmbedder(&cfg.OpenAI, cfg.Retrieval.Dimensions, appLogger),
		cfg.Retrieval.CacheTTL,
		appLogger,
	)

	collection := retrieval.NewCollection(cfg.Retrieval.Dimensions, embedder, appLogger)

	// Preference extractor, optionally with a YAML lexicon override
	var lexicon *extract.Lexicon
	if cfg.Extractor.LexiconPath != "" {
		lexicon, err = extract.LoadLexicon(cfg.Extractor.LexiconPath)
		if err != nil {
			appLogger.Fatal("Failed to load lexicon", zap.Error(err), zap.String("path", cfg.Extractor.LexiconPath))
		}
	}
	extractor := extract.NewExtractor(lexicon)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	profileService := service.NewProfileService(profileRepo, cfg.Extractor.MergeThreshold, appLogger)
	llmService := service.NewLLMService(&cfg.OpenAI, appLogger)
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, collection, embedder, appLogger)
	chatService := service.NewChatService(chatRepo, knowledgeRepo, profileService, llmService,
		extractor, collection, cfg.Retrieval.TopK, appLogger)

	// Load the persisted knowledge base into the retrieval collection
	if err := knowledgeService.Hydrate(ctx); err != nil {
		appLogger.Fatal("Failed to hydrate knowledge base", zap.Error(err))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	knowledgeHandler := handlers.NewKnowledgeHandler(knowledgeService, appLogger)
	preferenceHandler := handlers.NewPreferenceHandler(profileService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, chatHandler, knowledgeHandler, preferenceHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
