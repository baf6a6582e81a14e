package main

import (
	"log"
	"net/http"
	"os"

	"cafe-order-api/config"
	"cafe-order-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv("CAFE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.Load(configPath); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	gin.SetMode(config.App.Server.Mode)

	if err := config.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	if err := config.SeedAdmin(); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Cafe Order API",
			"version": "1.0.0",
		})
	})

	// Uploaded assets (menu and homepage images)
	r.Static(config.App.Storage.PublicURL, config.App.Storage.UploadDir)

	// Register all routes
	routes.SetupRoutes(r)

	log.Printf("🚀 Server running on http://localhost:%s", config.App.Server.Port)
	if err := r.Run(":" + config.App.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
