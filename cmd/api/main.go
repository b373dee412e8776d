package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	_ "github.com/redmonkez12/movie-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/movie-api/internal/auth"
	"github.com/redmonkez12/movie-api/internal/config"
	"github.com/redmonkez12/movie-api/internal/database"
	httpServer "github.com/redmonkez12/movie-api/internal/http"
	"github.com/redmonkez12/movie-api/internal/logging"
	"github.com/redmonkez12/movie-api/internal/movie"
	"github.com/redmonkez12/movie-api/internal/user"
)

// @title           Movie API
// @version         1.0
// @description     A REST API exposing a movie catalog and per-user favorites, with token-based authentication.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.CreateSchema(context.Background(), db); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	movieRepo := movie.NewRepository(db)

	// The catalog cache is optional; without Redis every list request hits
	// the database.
	var movieCache *movie.Cache
	if cfg.Redis.Enabled() {
		redisClient, err := initRedis(cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()
		movieCache = movie.NewCache(redisClient, cfg.Redis.CatalogCacheTTL)
	} else {
		logger.Info("catalog cache disabled, no Redis host configured")
	}

	// Initialize token service
	tokenService, err := auth.NewTokenService(cfg.Auth.TokenBackend, cfg.Auth.TokenKey)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize services
	hasher := auth.NewArgon2Hasher()
	userService := user.NewService(userRepo, hasher)
	authService := auth.NewService(userRepo, hasher, tokenService, cfg.Auth.TokenDuration)

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(tokenService)
	userHandler := user.NewHandler(userService)
	movieHandler := movie.NewHandler(movieRepo, movieCache)

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, userHandler, movieHandler, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return database.NewBunDB(sqlDB), nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
