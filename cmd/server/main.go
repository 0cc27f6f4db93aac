package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/cache"
	"github.com/yukikurage/academic-hub-api/internal/config"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/database"
	"github.com/yukikurage/academic-hub-api/internal/handlers"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/metrics"
	"github.com/yukikurage/academic-hub-api/internal/middleware"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"github.com/yukikurage/academic-hub-api/internal/services"
	"github.com/yukikurage/academic-hub-api/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	appLog, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	ctx := context.Background()

	// Connect to database
	db, err := database.Connect(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}

	// Run migrations
	if err := database.Migrate(db, appLog); err != nil {
		appLog.Fatal("Failed to run migrations", "error", err)
	}

	blobs, err := storage.New(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
	}

	// Redis is optional; without it stats are computed on every request
	statsCache := cache.Connect(ctx, cfg.RedisAddr(), cfg.RedisPassword, appLog)
	defer statsCache.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	downloadRepo := repository.NewDownloadRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	forumRepo := repository.NewForumRepository(db)
	chatRepo := repository.NewChatRepository(db)

	engine := achievements.NewEngine(achievementRepo, services.AchievementCounters(services.AchievementSources{
		Users:     userRepo,
		Resources: resourceRepo,
		Bookmarks: bookmarkRepo,
		Downloads: downloadRepo,
		Goals:     goalRepo,
		Forum:     forumRepo,
	}), appLog)

	// Initialize AI service
	var completer services.ChatCompleter
	if cfg.OpenAIAPIKey != "" {
		completer = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		appLog.Warn("OPENAI_API_KEY not set; chat assistant disabled")
	}

	// Services
	hasher := services.NewBcryptHasher()
	stats := services.NewStatsService(resourceRepo, userRepo, statsCache, cfg.StatsCacheTTL, appLog)
	authService := services.NewAuthService(userRepo, hasher, services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenExpiry), stats)

	h := handlers.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Resources:    handlers.NewResourceHandler(services.NewResourceService(resourceRepo, downloadRepo, blobs, engine, stats, appLog)),
		Bookmarks:    handlers.NewBookmarkHandler(services.NewBookmarkService(bookmarkRepo, resourceRepo, engine)),
		Achievements: handlers.NewAchievementHandler(engine),
		Goals:        handlers.NewGoalHandler(services.NewGoalService(goalRepo, engine)),
		Forum:        handlers.NewForumHandler(services.NewForumService(forumRepo, engine, appLog)),
		Profile: handlers.NewProfileHandler(services.NewProfileService(services.ProfileRepositories{
			Users:        userRepo,
			Resources:    resourceRepo,
			Bookmarks:    bookmarkRepo,
			Downloads:    downloadRepo,
			Achievements: achievementRepo,
			Goals:        goalRepo,
		}, hasher, blobs, engine, appLog)),
		Chat:  handlers.NewChatHandler(services.NewChatService(chatRepo, completer, appLog)),
		Stats: handlers.NewStatsHandler(stats),
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(appLog), metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg)))

	store, err := sessionStore(cfg)
	if err != nil {
		appLog.Fatal("Failed to create session store", "error", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check and metrics endpoints
	r.GET("/health", handlers.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	handlers.RegisterRoutes(r.Group("/api"), h, authService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("Server starting", "port", cfg.Port, "env", cfg.AppEnv, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server shutdown failed", "error", err)
	}
}

// sessionStore keeps the chat session in Redis when configured, otherwise in a signed cookie.
func sessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, constants.AuthorizationHeader, constants.RequestIDHeader)
	corsCfg.ExposeHeaders = []string{"Content-Disposition", constants.RequestIDHeader}

	origins := cfg.Origins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	return corsCfg
}
