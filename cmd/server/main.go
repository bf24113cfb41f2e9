package main

import (
	"log"
	"net/http"

	"storefront/internal/api/router"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/core/repository"
	"storefront/internal/core/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := config.LoadConfig()

	// Connect to MongoDB
	mongoConfig := config.NewMongoConfig()
	db, err := config.ConnectMongoDB(mongoConfig)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Optional product cache
	cache.Initialize(cfg.RedisURL)
	defer cache.Close()

	// Initialize repositories with MongoDB
	userRepo := repository.NewMongoUserRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	// Initialize services
	sessionService := service.NewSessionService(userRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo, cfg.BCryptCost, cfg.AdminEmail)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productService)

	// Initialize router
	r := router.NewRouter(userService, sessionService, productService, orderService)

	// Start server
	addr := cfg.Host + ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
