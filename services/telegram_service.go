package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"maintenance-chatbot-backend/config"
	"maintenance-chatbot-backend/models"
)

// TelegramService sends replies through the Telegram Bot API and tracks
// basic channel activity for the status endpoint.
type TelegramService struct {
	apiURL        string
	botToken      string
	webhookSecret string
	httpClient    *http.Client

	// Status tracking
	statusMu        sync.RWMutex
	lastMessageTime time.Time
	dailyCount      map[string]int
}

func NewTelegramService(cfg config.TelegramConfig) *TelegramService {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}

	return &TelegramService{
		apiURL:        apiURL,
		botToken:      cfg.BotToken,
		webhookSecret: cfg.WebhookSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		dailyCount: make(map[string]int),
	}
}

// Enabled reports whether a bot token is configured. The server runs
// without the Telegram channel when it isn't.
func (ts *TelegramService) Enabled() bool {
	return ts.botToken != ""
}

// WebhookSecret returns the secret token Telegram echoes back in the
// X-Telegram-Bot-Api-Secret-Token header.
func (ts *TelegramService) WebhookSecret() string {
	return ts.webhookSecret
}

// SendTextMessage sends a Markdown-formatted message to a chat
func (ts *TelegramService) SendTextMessage(ctx context.Context, chatID int64, text string) error {
	if !ts.Enabled() {
		return fmt.Errorf("telegram bot token not configured")
	}

	payload := models.TelegramSendMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sendMessage payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", ts.apiURL, ts.botToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read sendMessage response: %w", err)
	}

	var apiResp models.TelegramAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("decode sendMessage response: %w", err)
	}

	if !apiResp.OK {
		return fmt.Errorf("telegram api error %d: %s", apiResp.ErrorCode, apiResp.Description)
	}

	return nil
}

// RecordIncoming updates channel activity counters
func (ts *TelegramService) RecordIncoming() {
	ts.statusMu.Lock()
	defer ts.statusMu.Unlock()

	ts.lastMessageTime = time.Now()
	ts.dailyCount[time.Now().Format("2006-01-02")]++
}

// Status reports channel health for the admin endpoint
func (ts *TelegramService) Status() models.TelegramServiceStatus {
	ts.statusMu.RLock()
	defer ts.statusMu.RUnlock()

	return models.TelegramServiceStatus{
		Enabled:             ts.Enabled(),
		LastMessageReceived: ts.lastMessageTime,
		MessageCountToday:   ts.dailyCount[time.Now().Format("2006-01-02")],
	}
}
