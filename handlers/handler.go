package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/middleware"
	"github.com/NeuraX-HQ/neurax-web-app/services"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

type Handler struct {
	Auth      *services.AuthService
	Stores    *services.StoreRegistry
	Hub       *services.ChallengeHub
	Reminders *services.ReminderService

	JWTSecret []byte
	TokenTTL  time.Duration
}

func New(auth *services.AuthService, stores *services.StoreRegistry, hub *services.ChallengeHub,
	reminders *services.ReminderService, jwtSecret []byte, ttl time.Duration) *Handler {
	return &Handler{
		Auth:      auth,
		Stores:    stores,
		Hub:       hub,
		Reminders: reminders,
		JWTSecret: jwtSecret,
		TokenTTL:  ttl,
	}
}

// store resolves the caller's AppStore; it writes the error response itself.
func (h *Handler) store(c *gin.Context) (*services.AppStore, string, bool) {
	deviceID, err := middleware.DeviceID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, "", false
	}
	return h.Stores.For(deviceID), deviceID, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.Logger.Warn("invalid_request_body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, services.ErrInvalidServing), errors.Is(err, services.ErrInvalidStep):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFoodNotFound),
		errors.Is(err, services.ErrMealNotFound),
		errors.Is(err, services.ErrFridgeItemNotFound),
		errors.Is(err, services.ErrChallengeNotFound),
		errors.Is(err, services.ErrNoProfile):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		utils.ErrorCount.WithLabelValues(c.FullPath(), "internal").Inc()
		utils.Logger.Error("request_failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
