package ws

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mentiroso/internal/app"
)

// Handler handles WebSocket connections
type Handler struct {
	controller *app.Controller
	hub        *app.Hub
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(controller *app.Controller, hub *app.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		hub:        hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Screens on the local network load the UI from anywhere
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, h.controller, h.hub, uuid.NewString(), h.logger)
	h.hub.RegisterClient(client)

	h.logger.Info("websocket connected",
		"clientID", client.GetID(),
		"remote", r.RemoteAddr,
	)

	client.sendConnected()
	client.Run()
}
