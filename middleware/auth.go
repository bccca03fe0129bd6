package middleware

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

const (
	DeviceHeader = "X-Device-ID"

	ctxDeviceID = "device_id"
	ctxProvider = "provider"
)

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// SessionChecker confirms a device still holds its auth token.
type SessionChecker interface {
	HasSession(ctx context.Context, deviceID string) (bool, error)
}

// DeviceMiddleware requires a well-formed X-Device-ID on public auth routes.
func DeviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(DeviceHeader))
		if !deviceIDPattern.MatchString(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing or invalid " + DeviceHeader})
			return
		}
		c.Set(ctxDeviceID, id)
		c.Next()
	}
}

// AuthMiddleware accepts a bearer JWT and rejects tokens whose device has signed out.
func AuthMiddleware(secret []byte, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := utils.ParseToken(secret, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if sessions != nil {
			ok, err := sessions.HasSession(c.Request.Context(), claims.DeviceID)
			if err != nil {
				utils.Logger.Error("session_lookup_failed", zap.String("device_id", claims.DeviceID), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session storage unavailable"})
				return
			}
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session ended"})
				return
			}
		}

		c.Set(ctxDeviceID, claims.DeviceID)
		c.Set(ctxProvider, claims.Provider)
		c.Next()
	}
}

var ErrNoDevice = errors.New("no device in request context")

func DeviceID(c *gin.Context) (string, error) {
	id := c.GetString(ctxDeviceID)
	if id == "" {
		return "", ErrNoDevice
	}
	return id, nil
}

func Provider(c *gin.Context) string {
	return c.GetString(ctxProvider)
}
