package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NeuraX-HQ/neurax-web-app/middleware"
	"github.com/NeuraX-HQ/neurax-web-app/services"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

type sessionResponse struct {
	Token  string              `json:"token,omitempty"`
	Status services.AuthStatus `json:"status"`
}

func (h *Handler) AuthStatus(c *gin.Context) {
	deviceID, err := middleware.DeviceID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := h.Auth.CheckStatus(c.Request.Context(), deviceID)
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"isLoading": h.Auth.IsBusy(deviceID),
	})
}

func (h *Handler) SignInWithApple(c *gin.Context) {
	h.signIn(c, h.Auth.SignInWithApple)
}

func (h *Handler) SignInWithGoogle(c *gin.Context) {
	h.signIn(c, h.Auth.SignInWithGoogle)
}

func (h *Handler) ContinueAsGuest(c *gin.Context) {
	h.signIn(c, h.Auth.ContinueAsGuest)
}

func (h *Handler) signIn(c *gin.Context, fn func(ctx context.Context, deviceID string) (services.AuthStatus, error)) {
	deviceID, err := middleware.DeviceID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := fn(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := utils.GenerateToken(h.JWTSecret, deviceID, string(status.Provider), h.TokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Token: token, Status: status})
}

func (h *Handler) SignOut(c *gin.Context) {
	deviceID, err := middleware.DeviceID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.Auth.SignOut(c.Request.Context(), deviceID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
