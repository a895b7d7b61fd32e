package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"maintenance-chatbot-backend/models"
	"maintenance-chatbot-backend/services"
)

type ChatbotController struct {
	triageService *services.TriageService
}

func NewChatbotController(triageService *services.TriageService) *ChatbotController {
	return &ChatbotController{
		triageService: triageService,
	}
}

// HandleChat processes a tenant maintenance message
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if req.Channel == "" {
		req.Channel = models.ChannelWeb
	}

	response, err := cc.triageService.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRequestHistory retrieves recent maintenance requests for a session
func (cc *ChatbotController) GetRequestHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_id query parameter is required",
		})
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	history, err := cc.triageService.GetRequestHistory(c.Request.Context(), sessionID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve request history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": history,
		"count":    len(history),
	})
}
