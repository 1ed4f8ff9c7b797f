package main

import (
	"context"

	"hpquiz/config"
	"hpquiz/database"
	"hpquiz/handlers"
	"hpquiz/middleware"
	"hpquiz/pkg/logger"
	"hpquiz/routes"
	"hpquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Log.Sync()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	// Load configuration
	cfg := config.Load()

	// Connect to the document store
	client, err := config.InitDB(cfg)
	if err != nil {
		logger.Sugar.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Sugar.Errorf("Failed to disconnect from database: %v", err)
		}
	}()
	logger.Sugar.Info("Connected to database")

	db := database.New(client, cfg.DBName)

	// Initialize services
	formService := services.NewFormService(db)

	// Initialize handlers
	formHandler := handlers.NewFormHandler(formService)

	// Setup Gin router
	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.CORS(), gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, formHandler)

	// Start server
	logger.Sugar.Infof("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Sugar.Fatalf("Failed to start server: %v", err)
	}
}
