package main

import (
	"log"
	"time"

	"pos_system/internal/config"
	"pos_system/internal/database"
	"pos_system/internal/handlers"
	"pos_system/internal/migrations"
	"pos_system/internal/redis"
	"pos_system/internal/repository"
	"pos_system/internal/services"
	"pos_system/pkg/mpesa"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations and seed default data
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL, time.Duration(cfg.SessionTimeout)*time.Second)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize the receipt notifier when a gateway is configured
	var notifier services.ReceiptNotifier
	if cfg.MpesaAPIURL != "" {
		notifier = mpesa.NewClient(cfg.MpesaAPIURL, cfg.MpesaUsername, cfg.MpesaPassword, cfg.MpesaShortCode)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, redisClient)
	orderService := services.NewOrderService(orderRepo, inventoryRepo, notifier)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, redisClient, cfg.SessionCookie, cfg.SessionTimeout)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	orderHandler := handlers.NewOrderHandler(orderService)
	auth := handlers.NewAuthMiddleware(redisClient, cfg.SessionCookie)

	// Setup routes
	router := gin.Default()

	router.POST("/api/login", authHandler.Login)
	router.POST("/api/logout", authHandler.Logout)

	api := router.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.GET("/inventory", inventoryHandler.ListItems)

		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/unfinished", orderHandler.ListUnfinished)
		api.GET("/orders/completed", orderHandler.ListCompleted)
		api.GET("/orders/:id", orderHandler.ResumeOrder)
		api.POST("/orders/:id/items/:inventory_id/toggle", orderHandler.ToggleItem)
		api.POST("/orders/:id/confirm", orderHandler.ConfirmOrder)
		api.PUT("/order-items/:id/quantity", orderHandler.UpdateQuantity)
		api.PUT("/payments/:id/type", orderHandler.UpdatePaymentType)

		admin := api.Group("")
		admin.Use(auth.RequireAdmin())
		{
			admin.POST("/users", authHandler.Register)
			admin.GET("/users", authHandler.ListUsers)
			admin.POST("/inventory", inventoryHandler.CreateItem)
			admin.DELETE("/inventory/:id", inventoryHandler.DeactivateItem)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
