package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"maintenance-chatbot-backend/models"
	"maintenance-chatbot-backend/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Configure properly for production
	},
}

type WebSocketController struct {
	triageService *services.TriageService
}

func NewWebSocketController(triageService *services.TriageService) *WebSocketController {
	return &WebSocketController{
		triageService: triageService,
	}
}

func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	for {
		var msg map[string]string
		err := conn.ReadJSON(&msg)
		if err != nil {
			log.Println("Read error:", err)
			break
		}

		req := models.ChatRequest{
			Message:   msg["message"],
			SessionID: sessionID,
			UserID:    msg["user_id"],
			Channel:   models.ChannelWeb,
		}

		response, err := wc.triageService.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			conn.WriteJSON(map[string]interface{}{
				"error": "Failed to process message",
			})
			continue
		}

		conn.WriteJSON(response)
	}
}
