package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"maintenance-chatbot-backend/models"
	"maintenance-chatbot-backend/services"
)

const welcomeMessage = `🏠 *Tenant Maintenance Assistant*

Welcome! I'm here to help with your maintenance requests.

Just describe your issue in plain text, for example:
• "Water leaking from the ceiling"
• "AC not cooling properly"
• "Door handle broken"

I'll analyze it and provide:
✓ Issue classification
✓ Priority level
✓ Cost estimate
✓ Assignment status

Go ahead and send me your maintenance issue!`

type TelegramController struct {
	telegramService *services.TelegramService
	triageService   *services.TriageService
}

func NewTelegramController(telegramService *services.TelegramService, triageService *services.TriageService) *TelegramController {
	return &TelegramController{
		telegramService: telegramService,
		triageService:   triageService,
	}
}

// HandleWebhook receives updates from the Telegram Bot API. It always
// answers 200 so Telegram doesn't queue retries for updates we chose to
// skip or failed to handle; failures are logged instead.
func (tc *TelegramController) HandleWebhook(c *gin.Context) {
	var update models.TelegramUpdate

	if err := c.ShouldBindJSON(&update); err != nil {
		log.Printf("Ignoring malformed Telegram update: %v", err)
		c.Status(http.StatusOK)
		return
	}

	msg := update.Message
	if msg == nil || msg.Text == "" || (msg.From != nil && msg.From.IsBot) {
		c.Status(http.StatusOK)
		return
	}

	tc.telegramService.RecordIncoming()
	ctx := c.Request.Context()

	if strings.HasPrefix(msg.Text, "/start") {
		if err := tc.telegramService.SendTextMessage(ctx, msg.Chat.ID, welcomeMessage); err != nil {
			log.Printf("Failed to send welcome message: %v", err)
		}
		c.Status(http.StatusOK)
		return
	}

	req := models.ChatRequest{
		Message:   msg.Text,
		SessionID: strconv.FormatInt(msg.Chat.ID, 10),
		Channel:   models.ChannelTelegram,
	}
	if msg.From != nil {
		req.UserID = strconv.FormatInt(msg.From.ID, 10)
	}

	response, err := tc.triageService.ProcessMessage(ctx, req)
	if err != nil {
		log.Printf("Failed to process Telegram message: %v", err)
		if sendErr := tc.telegramService.SendTextMessage(ctx, msg.Chat.ID,
			"⚠️ Sorry, something went wrong processing your request. Please try again."); sendErr != nil {
			log.Printf("Failed to send error reply: %v", sendErr)
		}
		c.Status(http.StatusOK)
		return
	}

	if err := tc.telegramService.SendTextMessage(ctx, msg.Chat.ID, response.Response); err != nil {
		log.Printf("Failed to send Telegram reply: %v", err)
	}

	c.Status(http.StatusOK)
}

// SendMessage lets an operator push a message to a chat
func (tc *TelegramController) SendMessage(c *gin.Context) {
	var req struct {
		ChatID  int64  `json:"chat_id" binding:"required"`
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if err := tc.telegramService.SendTextMessage(c.Request.Context(), req.ChatID, req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

// GetStatus reports Telegram channel health
func (tc *TelegramController) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, tc.telegramService.Status())
}
