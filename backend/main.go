package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"institute/backend/chain"
	"institute/backend/config"
	"institute/backend/middleware"
	"institute/backend/routes"
	"institute/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Chain gateway is optional; without it completions stay off-chain.
	var gateway chain.Gateway
	if cfg.ChainAPIURL != "" {
		gateway = chain.NewClient(cfg.ChainAPIURL)
	} else {
		logger.Println("CHAIN_API_URL not set, on-chain effects disabled")
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, gateway, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
