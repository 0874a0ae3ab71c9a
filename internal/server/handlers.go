package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expiryguard/backend/internal/domain"
	"github.com/expiryguard/backend/internal/expiry"
	"github.com/expiryguard/backend/internal/logger"
)

type signupRequest struct {
	Username           string `json:"username" binding:"required"`
	Email              string `json:"email"`
	Password           string `json:"password" binding:"required"`
	NotificationHour   *int   `json:"notification_hour"`
	NotificationMinute *int   `json:"notification_minute"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type addItemRequest struct {
	ProductName string `json:"product_name" binding:"required"`
	ExpiryDate  string `json:"expiry_date"`
	ImageURL    string `json:"image_url"`
	Barcode     string `json:"barcode"`
}

type parseVoiceRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

type schedulerTimeRequest struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func userPayload(u *domain.User) gin.H {
	return gin.H{
		"id":                  u.ID,
		"username":            u.Username,
		"email":               u.Email,
		"notification_hour":   u.NotificationHour,
		"notification_minute": u.NotificationMinute,
	}
}

func itemPayload(item domain.InventoryItem) gin.H {
	return gin.H{
		"id":           item.ID,
		"product_name": item.ProductName,
		"expiry_date":  item.ExpiryDate,
		"image_url":    item.ImageURL,
		"barcode":      item.Barcode,
		"status":       item.Status,
		"created_at":   item.CreatedAt,
	}
}

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.NotificationHour, req.NotificationMinute)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := s.issuer.Issue(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
			"user":         userPayload(user),
		})
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := s.issuer.Issue(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
	}
}

func (s *Server) handleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.users.GetByID(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, userPayload(user))
	}
}

// handleUploadImage never fails on OCR trouble: an empty scan result lets the
// client fall back to manual entry.
func (s *Server) handleUploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
			return
		}

		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read file"})
			return
		}
		defer f.Close()

		image, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read file"})
			return
		}

		result := s.inventory.ScanImage(c.Request.Context(), image)
		c.JSON(http.StatusOK, gin.H{
			"expiry_date":        result.ExpiryDate,
			"extracted_text":     result.ExtractedText,
			"product_name":       result.ProductName,
			"best_before_months": result.BestBeforeMonths,
		})
	}
}

func (s *Server) handleAddItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		item, err := s.inventory.AddItem(c.Request.Context(), currentUserID(c), req.ProductName, req.ExpiryDate, req.ImageURL, req.Barcode)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, itemPayload(*item))
	}
}

func (s *Server) handleGetItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.inventory.ListItems(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		payload := make([]gin.H, 0, len(items))
		for _, item := range items {
			payload = append(payload, itemPayload(item))
		}
		c.JSON(http.StatusOK, payload)
	}
}

func (s *Server) handleDeleteItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid item id"})
			return
		}

		if err := s.inventory.DeleteItem(c.Request.Context(), currentUserID(c), itemID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
	}
}

func (s *Server) handleStatistics() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.inventory.Statistics(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total_items":        stats.TotalItems,
			"expiring_this_week": stats.ExpiringThisWeek,
			"expired_items":      stats.ExpiredItems,
			"status_breakdown":   stats.StatusBreakdown,
		})
	}
}

// handleSendAlerts runs the 3-day dispatch pass for the current user only.
func (s *Server) handleSendAlerts() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		user, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if user.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "no email address on account"})
			return
		}

		count, err := s.scheduler.DispatchUser(c.Request.Context(), userID, user.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":        "Expiry alerts processed",
			"products_count": count,
		})
	}
}

func (s *Server) handleBarcode() gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := s.barcode.Lookup(c.Request.Context(), currentUserID(c), c.Param("barcode"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product_name": product.ProductName,
			"barcode":      product.Barcode,
			"source":       product.Source,
		})
	}
}

func (s *Server) handleParseVoice() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req parseVoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		result, err := s.voice.ExtractFromTranscript(c.Request.Context(), req.Transcript)
		if err != nil {
			if errors.Is(err, expiry.ErrNothingExtracted) {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "could not extract a product or date from the transcript"})
				return
			}
			respondError(c, err)
			return
		}

		payload := gin.H{"product_name": nil, "expiry_date": nil}
		if result.ProductName != "" {
			payload["product_name"] = result.ProductName
		}
		if result.ExpiryDate != "" {
			payload["expiry_date"] = result.ExpiryDate
		}
		c.JSON(http.StatusOK, payload)
	}
}

func (s *Server) handleSchedulerTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req schedulerTimeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		if err := s.users.UpdateNotificationTime(c.Request.Context(), currentUserID(c), req.Hour, req.Minute); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Notification time updated",
			"hour":    req.Hour,
			"minute":  req.Minute,
		})
	}
}

// handleNotificationsOn flips the gate and (re)starts the scheduler; starting
// twice never duplicates per-user tasks.
func (s *Server) handleNotificationsOn() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := s.gate.Enable(ctx); err != nil {
			respondError(c, err)
			return
		}
		if err := s.scheduler.Start(ctx); err != nil {
			logger.Error("failed to start scheduler", "error", err)
		}
		c.JSON(http.StatusOK, gin.H{"status": "notifications enabled"})
	}
}

// handleNotificationsOff flips the gate only. Sleeping tasks stay alive and
// observe the gate on their next wake.
func (s *Server) handleNotificationsOff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.gate.Disable(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "notifications disabled"})
	}
}
