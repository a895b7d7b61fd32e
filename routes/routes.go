package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"maintenance-chatbot-backend/config"
	"maintenance-chatbot-backend/controllers"
	"maintenance-chatbot-backend/middleware"
	"maintenance-chatbot-backend/services"
	"maintenance-chatbot-backend/utils"
)

// SetupRoutes wires services and controllers onto the router. The
// classifier strategy is fixed here, at startup; requests cannot switch
// between the keyword and Gemini engines.
func SetupRoutes(router *gin.Engine, cfg *config.Config, db *mongo.Database) error {
	// Initialize services
	vendors := services.LoadVendorDirectory(cfg.Triage.VendorsFile)

	var classifier services.Classifier
	switch cfg.Triage.ClassifierMode {
	case "gemini":
		geminiClassifier, err := services.NewGeminiClassifier(cfg.AI)
		if err != nil {
			return fmt.Errorf("initialize gemini classifier: %w", err)
		}
		classifier = geminiClassifier
	default:
		classifier = utils.NewKeywordClassifier()
	}

	triageService := services.NewTriageService(classifier, vendors, cfg.Triage.ApprovalThreshold, db)
	telegramService := services.NewTelegramService(cfg.Telegram)

	// Initialize controllers
	chatbotController := controllers.NewChatbotController(triageService)
	wsController := controllers.NewWebSocketController(triageService)
	telegramController := controllers.NewTelegramController(telegramService, triageService)

	// Public routes
	public := router.Group("/api/v1")
	{
		// Chat intake
		public.POST("/chat", chatbotController.HandleChat)
		public.GET("/requests", chatbotController.GetRequestHistory)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)
	}

	// Telegram routes
	telegram := router.Group("/api/telegram")
	{
		telegram.POST("/webhook",
			middleware.VerifyTelegramSecret(cfg.Telegram.WebhookSecret),
			telegramController.HandleWebhook,
		)

		telegram.POST("/admin/send", telegramController.SendMessage)
		telegram.GET("/admin/status", telegramController.GetStatus)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	return nil
}
