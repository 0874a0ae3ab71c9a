package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/expiryguard/backend/internal/config"
)

func main() {
	fmt.Println("Validating configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration is valid.")
	fmt.Printf("  - Server Addr: %s\n", cfg.Server.Addr)
	fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
	fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
	fmt.Printf("  - DB User: %s\n", cfg.DB.User)
	fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	fmt.Printf("  - JWT Secret: %s\n", maskToken(cfg.Auth.JWTSecret))
	fmt.Printf("  - Token TTL: %dh\n", cfg.Auth.TokenTTLHrs)
	fmt.Printf("  - SMTP Host: %s\n", cfg.SMTP.Host)
	fmt.Printf("  - SMTP User: %s\n", cfg.SMTP.User)
	fmt.Printf("  - OCR API Key: %s\n", maskToken(cfg.OCR.APIKey))
	fmt.Printf("  - LLM Provider: %s\n", cfg.LLM.Provider)
	fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.LLM.GeminiAPIKey))
	fmt.Printf("  - OpenAI API Key: %s\n", maskToken(cfg.LLM.OpenAIAPIKey))
	fmt.Printf("  - Redis Addr: %s\n", cfg.Redis.Addr)
	fmt.Printf("  - Gate Flag Path: %s\n", cfg.Gate.FlagPath)
	fmt.Printf("  - Default Alert Time: %02d:%02d\n", cfg.Scheduler.DefaultHour, cfg.Scheduler.DefaultMinute)
	fmt.Printf("  - Fallback Alert Time: %02d:%02d\n", cfg.Scheduler.FallbackHour, cfg.Scheduler.FallbackMinute)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
