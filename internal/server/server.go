// Package server exposes the HTTP API: auth, inventory, extraction endpoints
// and the notification controls.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/expiryguard/backend/internal/errors"
	"github.com/expiryguard/backend/internal/gate"
	"github.com/expiryguard/backend/internal/scheduler"
	"github.com/expiryguard/backend/internal/services"
)

type Server struct {
	users     *services.UserService
	inventory *services.InventoryService
	voice     *services.VoiceService
	barcode   *services.BarcodeService
	scheduler *scheduler.Scheduler
	gate      gate.Store
	issuer    *TokenIssuer
}

func New(
	users *services.UserService,
	inventory *services.InventoryService,
	voice *services.VoiceService,
	barcode *services.BarcodeService,
	sched *scheduler.Scheduler,
	gateStore gate.Store,
	issuer *TokenIssuer,
) *Server {
	return &Server{
		users:     users,
		inventory: inventory,
		voice:     voice,
		barcode:   barcode,
		scheduler: sched,
		gate:      gateStore,
		issuer:    issuer,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/signup", s.handleSignup())
	r.POST("/login", s.handleLogin())

	authed := r.Group("/", RequireAuth(s.issuer))
	authed.GET("/users/me", s.handleMe())
	authed.POST("/upload-image", s.handleUploadImage())
	authed.POST("/add-item", s.handleAddItem())
	authed.GET("/get-items", s.handleGetItems())
	authed.DELETE("/delete-item/:id", s.handleDeleteItem())
	authed.GET("/statistics", s.handleStatistics())
	authed.POST("/send-expiry-alerts", s.handleSendAlerts())
	authed.GET("/product-by-barcode/:barcode", s.handleBarcode())
	authed.POST("/parse-voice", s.handleParseVoice())
	authed.POST("/scheduler/time", s.handleSchedulerTime())
	authed.POST("/notifications/on", s.handleNotificationsOn())
	authed.POST("/notifications/off", s.handleNotificationsOff())

	return r
}

// respondError maps application errors to HTTP statuses. Duplicate signups
// deliberately map to 400 rather than 409.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeConflict:
			c.JSON(http.StatusBadRequest, gin.H{"detail": appErr.Message})
		case apperrors.ErrorTypeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"detail": appErr.Message})
		case apperrors.ErrorTypePermission:
			c.JSON(http.StatusUnauthorized, gin.H{"detail": appErr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": appErr.Message})
		}
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
