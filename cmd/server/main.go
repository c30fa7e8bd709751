package main

import (
	"context" // context package is needed for Redis operations
	"slices"  // Origin lookup
	"time"    // Startup timeouts

	"finance_tracker/internal/api"          // Custom package for API handlers
	"finance_tracker/internal/config"       // Custom package for configuration
	"finance_tracker/internal/db"           // Custom package for database access
	"finance_tracker/internal/gamification" // Streaks and badges
	"finance_tracker/internal/ledger"       // Transaction service
	"finance_tracker/internal/middleware"   // Custom package for middleware
	"finance_tracker/internal/store"        // Persistence
	"finance_tracker/internal/utils"        // Cache helpers

	"github.com/gin-contrib/cors"   // CORS middleware
	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Money values
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	cfg.SetupLogger()          // Setup logger

	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to the configured database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if cfg.DBDriver == config.DriverSQLite {
		// SQLite has no separate migrate step in development
		if err := db.AutoMigrate(gdb); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
	}

	// Setup Redis client, the dashboard cache is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logrus.WithField("error", err.Error()).Warn("Redis unavailable, continuing without cache")
			_ = redisClient.Close()
			redisClient = nil
		}
		cancel()
	}

	st := store.New(gdb)
	svc := ledger.NewService(st, gamification.NewTracker(st, nil), utils.NewCache(redisClient, cfg.CacheTTL))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance
	r.Use(middleware.RequestID())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(cfg.CORSOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Deps{
		Store:     st,
		Ledger:    svc,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
	})

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,
		"driver": cfg.DBDriver,
		"cache":  redisClient != nil,
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
