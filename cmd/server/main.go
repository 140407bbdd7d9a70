package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tallybook/tallybook/internal/config"
	"github.com/tallybook/tallybook/internal/database"
	"github.com/tallybook/tallybook/internal/events"
	"github.com/tallybook/tallybook/internal/handler"
	"github.com/tallybook/tallybook/internal/middleware"
	redisclient "github.com/tallybook/tallybook/internal/redis"
	"github.com/tallybook/tallybook/internal/repository"
	"github.com/tallybook/tallybook/internal/service"
	"github.com/tallybook/tallybook/internal/session"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is optional: without it sessions live in memory and the list
	// cache and event streams are disabled.
	var (
		sessions  session.Store
		publisher *events.Publisher
		redis     *redisclient.Client
	)
	if cfg.RedisAddr != "" {
		redis, err = redisclient.NewClient(cfg.RedisAddr, "", cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redis.Close()
		sessions = session.NewRedisStore(redis.Client, cfg.SessionTTL)
		publisher = events.NewPublisher(redis.Client)
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	userRepo := repository.NewUserRepository(db)
	var txRepo *repository.TransactionRepository
	if redis != nil {
		txRepo = repository.NewTransactionRepository(db, redis.Client)
	} else {
		txRepo = repository.NewTransactionRepository(db, nil)
	}

	authSvc := service.NewAuthService(userRepo, sessions, publisher)
	txSvc := service.NewTransactionService(txRepo, publisher)

	authHandler := handler.NewAuthHandler(authSvc, cfg.SessionTTL)
	txHandler := handler.NewTransactionHandler(txSvc)

	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
	}

	authed := router.Group("/api/transactions", middleware.AuthMiddleware(authSvc))
	{
		authed.GET("", txHandler.ListTransactions)
		authed.POST("", txHandler.CreateTransaction)
		authed.DELETE("/:id", txHandler.DeleteTransaction)
	}

	log.Printf("Ledger service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
