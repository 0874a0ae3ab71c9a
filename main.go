package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/expiryguard/backend/internal/config"
	"github.com/expiryguard/backend/internal/database"
	"github.com/expiryguard/backend/internal/gate"
	"github.com/expiryguard/backend/internal/logger"
	"github.com/expiryguard/backend/internal/mailer"
	"github.com/expiryguard/backend/internal/ocr"
	"github.com/expiryguard/backend/internal/repository"
	"github.com/expiryguard/backend/internal/scheduler"
	"github.com/expiryguard/backend/internal/server"
	"github.com/expiryguard/backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting ExpiryGuard backend...")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connection established and migrations completed")

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)

	gateStore := newGateStore(cfg)

	ocrClient := ocr.NewClient(cfg.OCR.APIKey, cfg.OCR.Endpoint)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)

	userService := services.NewUserService(userRepo, cfg.Scheduler.DefaultHour, cfg.Scheduler.DefaultMinute)
	inventoryService := services.NewInventoryService(itemRepo, ocrClient)
	barcodeService := services.NewBarcodeService(itemRepo)

	voiceService, err := services.NewVoiceService(context.Background(), services.VoiceConfig{
		Provider:     cfg.LLM.Provider,
		GeminiAPIKey: cfg.LLM.GeminiAPIKey,
		OpenAIAPIKey: cfg.LLM.OpenAIAPIKey,
		GeminiModel:  cfg.LLM.GeminiModel,
		OpenAIModel:  cfg.LLM.OpenAIModel,
	})
	if err != nil {
		logger.Fatal("Failed to initialize voice service", "error", err)
	}
	logger.Info("Services initialized successfully")

	alertScheduler := scheduler.New(userRepo, inventoryService, gateStore, smtpMailer, scheduler.Config{
		FallbackHour:   cfg.Scheduler.FallbackHour,
		FallbackMinute: cfg.Scheduler.FallbackMinute,
	})
	if err := alertScheduler.Start(context.Background()); err != nil {
		logger.Error("Failed to start alert scheduler", "error", err)
	}

	issuer := server.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHrs)
	api := server.New(userService, inventoryService, voiceService, barcodeService, alertScheduler, gateStore, issuer)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	alertScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Stopped")
}

// newGateStore prefers Redis when an address is configured and falls back to
// a marker file otherwise. Either way missing state reads as off.
func newGateStore(cfg *config.Config) gate.Store {
	if cfg.Redis.Addr != "" {
		store, err := gate.NewRedisStore(cfg.Redis.Addr)
		if err == nil {
			logger.Info("Notification gate using Redis", "addr", cfg.Redis.Addr)
			return store
		}
		logger.Error("Redis unavailable, notification gate falling back to file", "error", err)
	}
	return gate.NewFileStore(cfg.Gate.FlagPath)
}
