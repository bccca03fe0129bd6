package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/services"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

const pingInterval = 25 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type postMessageRequest struct {
	Sender  models.Sender `json:"sender" validate:"omitempty,oneof=user opponent bao"`
	Message string        `json:"message" validate:"required,max=1000"`
}

func (h *Handler) userName(c *gin.Context, deviceID string) string {
	profile, err := h.Auth.Profile(c.Request.Context(), deviceID)
	if err != nil {
		return ""
	}
	return profile.Name
}

func (h *Handler) ListChallenges(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, store.Challenges(h.userName(c, deviceID)))
}

func (h *Handler) GetChallenge(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	view, err := store.Challenge(c.Param("id"), h.userName(c, deviceID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) CreateChallenge(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	var ch models.Challenge
	if err := c.ShouldBindJSON(&ch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ch.ID = utils.NewID("challenge")
	ch.Messages = nil
	if err := store.Dispatch(services.AddChallenge{Challenge: ch}); err != nil {
		respondError(c, err)
		return
	}
	view, err := store.Challenge(ch.ID, h.userName(c, deviceID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) PostChallengeMessage(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	var req postMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	challengeID := c.Param("id")
	msg := models.ChatMessage{ID: utils.NewID("msg"), Sender: req.Sender, Message: req.Message}
	if err := store.Dispatch(services.PostMessage{ChallengeID: challengeID, Message: msg}); err != nil {
		respondError(c, err)
		return
	}

	view, err := store.Challenge(challengeID, h.userName(c, deviceID))
	if err != nil {
		respondError(c, err)
		return
	}
	var posted models.ChatMessage
	for _, m := range view.Messages {
		if m.ID == msg.ID {
			posted = m
			break
		}
	}
	h.Hub.Broadcast(services.ChallengeTopic(deviceID, challengeID), gin.H{
		"type":        "message",
		"challengeId": challengeID,
		"message":     posted,
	})
	c.JSON(http.StatusCreated, posted)
}

// ChallengeWS streams new chat messages of one challenge to the client.
func (h *Handler) ChallengeWS(c *gin.Context) {
	store, deviceID, ok := h.store(c)
	if !ok {
		return
	}
	challengeID := c.Param("id")
	if _, err := store.Challenge(challengeID, ""); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Logger.Warn("ws_upgrade_failed", zap.Error(err))
		return
	}
	client := &services.WSClient{Topic: services.ChallengeTopic(deviceID, challengeID), Conn: conn}
	h.Hub.Register(client)
	utils.Logger.Info("ws_subscribed", zap.String("device_id", deviceID), zap.String("challenge_id", challengeID))

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := client.Write(websocket.PingMessage, nil); err != nil {
					h.Hub.Unregister(client)
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.Hub.Unregister(client)
			return
		}
	}
}
