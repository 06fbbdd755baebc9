package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"bookhive/database"
	"bookhive/internal/cache"
	"bookhive/internal/config"
	"bookhive/internal/http-api/handler"
	"bookhive/internal/http-api/middleware"
	"bookhive/internal/http-api/repository"
	"bookhive/internal/http-api/service"
	"bookhive/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	// The cache is optional infrastructure: a nil *BookCache degrades every
	// operation to a miss, so a Redis outage only costs read performance.
	bookCache, err := cache.NewBookCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, running without book cache", "error", err)
		bookCache = nil
	} else {
		defer bookCache.Close()
	}

	coverStore, err := storage.NewDiskCoverStore(cfg.CoverDataPath)
	if err != nil {
		logger.Error("could not initialize cover storage", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	genreRepo := repository.NewGenreRepository(db)

	// Services
	googleVerifier := service.NewGoogleVerifier(cfg.GoogleClientID)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, googleVerifier, cfg)
	bookService := service.NewBookService(bookRepo, genreRepo, coverStore, bookCache, logger)
	reviewService := service.NewReviewService(reviewRepo, bookRepo, likeRepo, bookCache, logger)
	commentService := service.NewCommentService(commentRepo, reviewRepo, likeRepo)
	likeService := service.NewLikeService(likeRepo, reviewRepo, commentRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, bookRepo)
	userService := service.NewUserService(userRepo, favoriteRepo, likeRepo)
	genreService := service.NewGenreService(genreRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	bookHandler := handler.NewBookHandler(bookService, cfg.UploadMaxSize)
	reviewHandler := handler.NewReviewHandler(reviewService, likeService)
	commentHandler := handler.NewCommentHandler(commentService, likeService)
	userHandler := handler.NewUserHandler(userService, favoriteService)
	genreHandler := handler.NewGenreHandler(genreService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Static("/covers", coverStore.Dir())

	authRequired := middleware.AuthMiddleware(authService)
	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst)

	api := r.Group("/api")
	{
		books := api.Group("/books")
		bookHandler.RegisterRoutes(books, authRequired)
		reviewHandler.RegisterRoutes(books, authRequired)
		commentHandler.RegisterRoutes(books, authRequired)

		users := api.Group("/users")
		authHandler.RegisterRoutes(users, authLimiter.Middleware())
		userHandler.RegisterRoutes(users, authRequired)

		genres := api.Group("/genres")
		genreHandler.RegisterRoutes(genres)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
