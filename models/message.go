package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageChannel represents the communication channel
type MessageChannel string

const (
	ChannelWeb      MessageChannel = "web"
	ChannelTelegram MessageChannel = "telegram"
)

// ChatRequest is an incoming tenant message from any channel
type ChatRequest struct {
	Message   string                 `json:"message" binding:"required"`
	SessionID string                 `json:"session_id" binding:"required"`
	UserID    string                 `json:"user_id,omitempty"`
	Channel   MessageChannel         `json:"channel,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// ChatResponse carries the formatted reply plus the structured decision
// so API consumers don't have to re-parse the display text
type ChatResponse struct {
	Response  string    `json:"response"`
	Decision  *Decision `json:"decision,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// MaintenanceRequest is the persisted record of one processed intake
type MaintenanceRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID   string             `bson:"request_id" json:"request_id"`
	SessionID   string             `bson:"session_id" json:"session_id"`
	UserID      string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Channel     MessageChannel     `bson:"channel,omitempty" json:"channel,omitempty"`
	Description string             `bson:"description" json:"description"`
	Decision    Decision           `bson:"decision" json:"decision"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Telegram Bot API webhook models

type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message,omitempty"`
}

type TelegramMessage struct {
	MessageID int64         `json:"message_id"`
	From      *TelegramUser `json:"from,omitempty"`
	Chat      TelegramChat  `json:"chat"`
	Date      int64         `json:"date"`
	Text      string        `json:"text,omitempty"`
}

type TelegramUser struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

type TelegramChat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// TelegramSendMessage is the sendMessage request payload
type TelegramSendMessage struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// TelegramAPIResponse is the generic Bot API response envelope
type TelegramAPIResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// TelegramServiceStatus reports channel health for the admin endpoint
type TelegramServiceStatus struct {
	Enabled             bool      `json:"enabled"`
	LastMessageReceived time.Time `json:"last_message_received"`
	MessageCountToday   int       `json:"message_count_today"`
}
