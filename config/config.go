package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	Database DatabaseConfig

	// AI Service
	AI AIConfig

	// Telegram channel
	Telegram TelegramConfig

	// Triage pipeline
	Triage TriageConfig

	// Security
	Security SecurityConfig
}

type DatabaseConfig struct {
	Type     string // "mongodb" or "none"
	URI      string
	Name     string
	Host     string
	Port     string
	Username string
	Password string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
}

type AIConfig struct {
	Provider  string // "gemini"
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type TelegramConfig struct {
	BotToken      string
	WebhookSecret string
	APIURL        string
}

type TriageConfig struct {
	// ClassifierMode selects the classifier strategy at startup:
	// "keyword" or "gemini". Not switchable per request.
	ClassifierMode string

	// ApprovalThreshold is the cost (AED) above which a request always
	// waits for human approval.
	ApprovalThreshold float64

	VendorsFile string
}

type SecurityConfig struct {
	AllowedOrigins []string
}

var cfg *Config

// Load initializes the configuration
func Load() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg = &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		Database: DatabaseConfig{
			Type:     getEnv("DB_TYPE", "mongodb"),
			URI:      getEnv("DATABASE_URL", ""),
			Name:     getEnv("DB_NAME", "maintenance_chatbot"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),

			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
			MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),
		},

		AI: AIConfig{
			Provider:  getEnv("AI_PROVIDER", "gemini"),
			APIKey:    getEnv("GEMINI_API_KEY", ""),
			Model:     getEnv("AI_MODEL", "gemini-1.5-flash"),
			MaxTokens: getEnvAsInt("AI_MAX_TOKENS", 1000),
			Timeout:   getEnvAsDuration("AI_TIMEOUT", "30s"),
		},

		Telegram: TelegramConfig{
			BotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
			WebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
			APIURL:        getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		},

		Triage: TriageConfig{
			ClassifierMode:    getEnv("CLASSIFIER_MODE", "keyword"),
			ApprovalThreshold: getEnvAsFloat("APPROVAL_THRESHOLD", 1000),
			VendorsFile:       getEnv("VENDORS_FILE", "vendors.json"),
		},

		Security: SecurityConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
	}

	// Validate configuration
	if err := validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		log.Fatal("Configuration not loaded. Call Load() first")
	}
	return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	// Simple comma-separated parsing
	return strings.Split(value, ",")
}

func validate() error {
	switch cfg.Triage.ClassifierMode {
	case "keyword", "gemini":
	default:
		return fmt.Errorf("unsupported classifier mode: %s", cfg.Triage.ClassifierMode)
	}

	// The Gemini key is only required when the AI classifier is selected
	if cfg.Triage.ClassifierMode == "gemini" && cfg.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when CLASSIFIER_MODE=gemini")
	}

	if cfg.Database.Type == "mongodb" && cfg.Database.URI == "" {
		if cfg.Database.Host == "" || cfg.Database.Port == "" {
			return fmt.Errorf("database URI or host/port must be provided")
		}
	}

	if cfg.Triage.ApprovalThreshold < 0 {
		return fmt.Errorf("approval threshold must be non-negative")
	}

	return nil
}

// BuildDatabaseURI constructs the database URI if not provided
func (c *Config) BuildDatabaseURI() string {
	if c.Database.URI != "" {
		return c.Database.URI
	}

	switch c.Database.Type {
	case "mongodb":
		if c.Database.Username != "" && c.Database.Password != "" {
			return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
				c.Database.Username,
				c.Database.Password,
				c.Database.Host,
				c.Database.Port,
				c.Database.Name,
			)
		}
		return fmt.Sprintf("mongodb://%s:%s/%s",
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	default:
		return ""
	}
}
