package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"maintenance-chatbot-backend/config"
	"maintenance-chatbot-backend/database"
	"maintenance-chatbot-backend/routes"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cfg := config.Get()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database. The bot stays useful without persistence, so
	// a connection failure only disables request history.
	if err := database.Connect(cfg); err != nil {
		log.Printf("WARNING: Running without request persistence: %v", err)
	} else {
		defer database.Disconnect()
	}

	// Verify Telegram configuration
	if cfg.Telegram.BotToken == "" {
		log.Println("WARNING: TELEGRAM_BOT_TOKEN not set, Telegram channel disabled")
	} else {
		log.Println("Telegram channel configured")
	}

	log.Printf("Classifier mode: %s", cfg.Triage.ClassifierMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(corsMiddleware(cfg.Security.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if err := database.HealthCheck(); err != nil {
			dbStatus = "unavailable"
		}
		c.JSON(200, gin.H{
			"status":              "ok",
			"timestamp":           time.Now(),
			"database":            dbStatus,
			"classifier_mode":     cfg.Triage.ClassifierMode,
			"telegram_configured": cfg.Telegram.BotToken != "",
		})
	})

	// Setup all routes
	if err := routes.SetupRoutes(router, cfg, database.GetMongoDB()); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Port)
		log.Printf("Telegram webhook URL: http://localhost:%s/api/telegram/webhook", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// corsMiddleware allows the configured frontend origins
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
