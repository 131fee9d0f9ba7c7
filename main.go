package main

import (
	"net/http"
	"os"

	"stellar-delivery-api/config"
	"stellar-delivery-api/logger"
	"stellar-delivery-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()
	config.LoadEnv()

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	config.InitDB()

	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogging())

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

	// Uploaded images are served statically
	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create upload directory")
	}
	r.Static("/uploads", config.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Stellar Delivery API",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to Stellar Delivery API",
			"docs":    "/state-machine",
			"health":  "/health",
			"roles":   []string{"requester", "deliverer", "store", "admin"},
		})
	})

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
