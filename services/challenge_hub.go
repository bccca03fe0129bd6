package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

const writeWait = 10 * time.Second

// WSClient is one websocket subscriber of a challenge thread.
type WSClient struct {
	Topic string
	Conn  *websocket.Conn

	writeMu sync.Mutex
}

func (c *WSClient) Write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

// ChallengeHub fans chat messages out to subscribers, keyed by device and challenge.
type ChallengeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewChallengeHub() *ChallengeHub {
	return &ChallengeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func ChallengeTopic(deviceID, challengeID string) string {
	return deviceID + ":" + challengeID
}

func (h *ChallengeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.Topic] == nil {
		h.clients[c.Topic] = make(map[*WSClient]struct{})
	}
	h.clients[c.Topic][c] = struct{}{}
	h.mu.Unlock()
}

func (h *ChallengeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.Topic]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.Topic)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *ChallengeHub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}

func (h *ChallengeHub) Broadcast(topic string, payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		utils.Logger.Error("broadcast_marshal_failed", zap.Error(err))
		return
	}
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[topic]))
	for c := range h.clients[topic] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Write(websocket.TextMessage, msg); err != nil {
			utils.Logger.Warn("broadcast_write_failed", zap.String("topic", topic), zap.Error(err))
			h.Unregister(c)
		}
	}
}
