package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/expiryguard/backend/internal/logger"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	OCR       OCRConfig
	LLM       LLMConfig
	Redis     RedisConfig
	Gate      GateConfig
	Scheduler SchedulerConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Addr string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type AuthConfig struct {
	JWTSecret   string
	TokenTTLHrs int
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

type OCRConfig struct {
	APIKey   string
	Endpoint string
}

type LLMConfig struct {
	Provider     string // "gemini" or "openai"; empty disables the LLM path
	GeminiAPIKey string
	OpenAIAPIKey string
	GeminiModel  string
	OpenAIModel  string
}

type RedisConfig struct {
	Addr string // empty means the notification gate falls back to a marker file
}

type GateConfig struct {
	FlagPath string
}

type SchedulerConfig struct {
	// Default notification time applied at signup when the user picks none.
	DefaultHour   int
	DefaultMinute int
	// The dispatcher's own fallback when a stored config is unreadable.
	// Historically 20:11, distinct from the signup default; kept as-is.
	FallbackHour   int
	FallbackMinute int
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	if os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Server: ServerConfig{
			Addr: getEnvOrDefault("SERVER_ADDR", ":8000"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "expiryguard"),
		},
		Auth: AuthConfig{
			JWTSecret:   os.Getenv("JWT_SECRET"),
			TokenTTLHrs: getEnvAsInt("JWT_TTL_HOURS", 24),
		},
		SMTP: SMTPConfig{
			Host:     getEnvOrDefault("SMTP_SERVER", "smtp.gmail.com"),
			Port:     getEnvOrDefault("SMTP_PORT", "587"),
			User:     os.Getenv("EMAIL_USER"),
			Password: os.Getenv("EMAIL_PASSWORD"),
		},
		OCR: OCRConfig{
			APIKey:   os.Getenv("OCR_SPACE_API_KEY"),
			Endpoint: getEnvOrDefault("OCR_SPACE_ENDPOINT", "https://api.ocr.space/parse/image"),
		},
		LLM: LLMConfig{
			Provider:     getEnvOrDefault("LLM_PROVIDER", "gemini"),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
			GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-pro"),
			OpenAIModel:  getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Gate: GateConfig{
			FlagPath: getEnvOrDefault("NOTIFICATIONS_FLAG_PATH", "notifications_on.flag"),
		},
		Scheduler: SchedulerConfig{
			DefaultHour:    getEnvAsInt("ALERT_DEFAULT_HOUR", 6),
			DefaultMinute:  getEnvAsInt("ALERT_DEFAULT_MINUTE", 0),
			FallbackHour:   getEnvAsInt("ALERT_FALLBACK_HOUR", 20),
			FallbackMinute: getEnvAsInt("ALERT_FALLBACK_MINUTE", 11),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
