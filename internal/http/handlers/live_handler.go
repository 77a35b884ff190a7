package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"faultwatch/internal/ws"
)

// LiveHandler upgrades dashboard clients onto the batch event feed.
type LiveHandler struct {
	hub      *ws.Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewLiveHandler returns handler.
func NewLiveHandler(hub *ws.Hub, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP handles GET /api/v1/live.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(uuid.NewString(), conn, 8, 0)
	h.hub.Add(client)
	h.logger.Info("dashboard client connected", zap.String("client_id", client.ID()))

	go client.WritePump(func(id string) {
		h.hub.Remove(id)
		h.logger.Info("dashboard client disconnected", zap.String("client_id", id))
	})
	go client.ReadPump()
}
