package app

import (
	"log/slog"
	"sync"

	"mentiroso/internal/domain"
)

// eventQueueSize bounds the number of undelivered state events
const eventQueueSize = 100

// ClientConnection represents a connected display or controller screen
type ClientConnection interface {
	Notify(event *domain.GameEvent) error
	GetID() string
	Close() error
}

// Publisher receives every state event the controller emits
type Publisher interface {
	Publish(event *domain.GameEvent)
}

// Hub fans controller events out to the connected screens
type Hub struct {
	clients   map[string]ClientConnection // connection ID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates a hub and starts its broadcaster
func NewHub(logger *slog.Logger) *Hub {
	hub := &Hub{
		clients: make(map[string]ClientConnection),
		logger:  logger,
		events:  make(chan *domain.GameEvent, eventQueueSize),
		done:    make(chan struct{}),
	}

	go hub.eventLoop()

	return hub
}

// RegisterClient registers a screen connection
func (h *Hub) RegisterClient(client ClientConnection) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	h.clients[client.GetID()] = client
	h.logger.Debug("client registered", "clientID", client.GetID(), "clients", len(h.clients))
}

// UnregisterClient removes a screen connection
func (h *Hub) UnregisterClient(clientID string) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	delete(h.clients, clientID)
}

// ClientCount returns the number of connected screens
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Publish adds an event to the broadcast queue without blocking the caller
func (h *Hub) Publish(event *domain.GameEvent) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.events <- event:
	default:
		h.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop delivers queued events in order
func (h *Hub) eventLoop() {
	for {
		select {
		case <-h.done:
			return
		case event := <-h.events:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) broadcastEvent(event *domain.GameEvent) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for clientID, client := range h.clients {
		if err := client.Notify(event); err != nil {
			h.logger.Debug("failed to send to client", "clientID", clientID, "error", err)
		}
	}
}

// Close stops the broadcaster and closes every connection
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)

		h.clientsMu.Lock()
		for _, client := range h.clients {
			client.Close()
		}
		h.clients = make(map[string]ClientConnection)
		h.clientsMu.Unlock()
	})
}
