// Package ws pushes ingest events to connected dashboard clients over
// WebSockets. The feed is one-way: clients only listen.
package ws

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"faultwatch/internal/models"
	"faultwatch/internal/report"
)

// BatchEvent is broadcast after every successful ingest.
type BatchEvent struct {
	UploadID  string                    `json:"upload_id"`
	Filename  string                    `json:"filename"`
	Rows      int                       `json:"rows"`
	Summary   report.Summary            `json:"summary"`
	Criticals []models.ClassifiedRecord `json:"criticals,omitempty"`
}

// Hub tracks dashboard connections and fans events out to them.
type Hub struct {
	mu           sync.RWMutex
	clients      map[string]*Client
	logger       *zap.Logger
	pingInterval time.Duration
}

// NewHub builds connection hub.
func NewHub(pingInterval time.Duration, logger *zap.Logger) *Hub {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Hub{
		clients:      make(map[string]*Client),
		logger:       logger,
		pingInterval: pingInterval,
	}
}

// Add registers a client.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID()] = c
}

// Remove drops a client.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Broadcast sends the event to every connected client. Slow clients are
// disconnected rather than allowed to block the ingest path.
func (h *Hub) Broadcast(event BatchEvent) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.Send(event) {
			h.logger.Warn("dropping slow websocket client", zap.String("client_id", c.ID()))
			c.Close()
			h.Remove(c.ID())
		}
	}
}

// Run keeps connections alive with periodic pings until ctx is done,
// then closes everything.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, c := range h.clients {
				c.Close()
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return
		case <-ticker.C:
			h.mu.RLock()
			for _, c := range h.clients {
				_ = c.Ping()
			}
			h.mu.RUnlock()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
