package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mentiroso/internal/app"
	"mentiroso/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client is one connected screen. Every screen sees the same game; any of
// them may send intents on behalf of the players holding the device.
type Client struct {
	conn       *websocket.Conn
	controller *app.Controller
	hub        *app.Hub
	id         string
	send       chan []byte
	done       chan struct{}
	logger     *slog.Logger
	mu         sync.Mutex
	closed     bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, controller *app.Controller, hub *app.Hub, id string, logger *slog.Logger) *Client {
	return &Client{
		conn:       conn,
		controller: controller,
		hub:        hub,
		id:         id,
		send:       make(chan []byte, sendBufferSize),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// GetID returns the connection ID
func (c *Client) GetID() string {
	return c.id
}

// Notify implements app.ClientConnection
func (c *Client) Notify(event *domain.GameEvent) error {
	return c.Send(NewServerMessage(MsgState, &StatePayload{
		Event: event.Type,
		View:  event.Payload,
	}))
}

// Send queues a message for the write pump
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "clientID", c.id)
		return nil
	}
}

// Close implements app.ClientConnection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c.id)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			// One JSON document per frame
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client. State
// changes reach this client through the hub like every other screen.
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(app.ErrCodeInvalidMessage, "Mensaje inválido")
		return
	}

	switch msg.Type {
	case MsgStartGame:
		c.handleStartGame(msg.Payload)
	case MsgRevealNext:
		c.controller.AdvanceReveal()
	case MsgSubmitVote:
		c.handleSubmitVote(msg.Payload)
	case MsgContinueRound:
		c.controller.ContinueSameSecret()
	case MsgBeginVote:
		c.controller.BeginVoteAfterReady()
	case MsgFinishGame:
		c.controller.ForceGameOver()
	case MsgResetGame:
		c.controller.Reset()
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(app.ErrCodeInvalidMessage, "Tipo de mensaje desconocido")
	}
}

// handleStartGame handles a start_game message. The secret fetch can take
// a while, so it runs off the read loop.
func (c *Client) handleStartGame(payload json.RawMessage) {
	var req StartGamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.sendError(app.ErrCodeInvalidMessage, "Datos de partida inválidos")
		return
	}

	players, err := req.Lineup()
	if err != nil {
		c.sendFailure(err)
		return
	}

	go func() {
		if _, err := c.controller.Start(context.Background(), players, req.Category, req.Liars); err != nil {
			c.sendFailure(err)
		}
	}()
}

// handleSubmitVote handles a submit_vote message
func (c *Client) handleSubmitVote(payload json.RawMessage) {
	var req SubmitVotePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.VoterID == "" || req.TargetID == "" {
		c.sendError(app.ErrCodeInvalidMessage, "Se necesita votante y votado")
		return
	}

	if _, err := c.controller.SubmitVote(req.VoterID, req.TargetID); err != nil {
		c.sendFailure(err)
	}
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		ClientID: c.id,
		View:     c.controller.View(),
	}

	c.Send(NewServerMessage(MsgConnected, payload))
}

// sendFailure reports an error returned by the controller
func (c *Client) sendFailure(err error) {
	c.logger.Debug("intent failed", "clientID", c.id, "error", err)
	payload := app.DescribeError(err)
	c.sendError(payload.Code, payload.Message)
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	c.Send(NewServerMessage(MsgError, &ErrorPayload{
		Code:    code,
		Message: message,
	}))
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	c.Send(NewServerMessage(MsgPong, nil))
}
