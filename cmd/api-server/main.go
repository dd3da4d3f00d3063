package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"binderbuilder/database"
	"binderbuilder/internal/catalog"
	"binderbuilder/internal/config"
	"binderbuilder/internal/handler"
	"binderbuilder/internal/middleware"
	"binderbuilder/internal/repository"
	"binderbuilder/internal/service"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	// Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// Services and outbound client
	authService := service.NewAuthService(userRepo, cfg)
	collectionService := service.NewCollectionService(collectionRepo, cardRepo)
	catalogClient := catalog.NewClient(cfg)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	catalogHandler := handler.NewCatalogHandler(catalogClient)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", handler.Welcome)

	api := r.Group("/api")
	api.GET("/health", handler.Health)
	catalogHandler.RegisterRoutes(api)

	authGroup := api.Group("/auth")
	authHandler.RegisterRoutes(authGroup)
	authGroup.GET("/me", middleware.AuthMiddleware(authService), authHandler.Me)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	collectionHandler.RegisterRoutes(protected)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Starting API server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
