package ws

import (
	"encoding/json"
	"time"

	"mentiroso/internal/app"
	"mentiroso/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgStartGame     MessageType = "start_game"
	MsgRevealNext    MessageType = "reveal_next"
	MsgSubmitVote    MessageType = "submit_vote"
	MsgContinueRound MessageType = "continue_round"
	MsgBeginVote     MessageType = "begin_vote"
	MsgFinishGame    MessageType = "finish_game"
	MsgResetGame     MessageType = "reset_game"
	MsgPing          MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected MessageType = "connected"
	MsgState     MessageType = "state"
	MsgError     MessageType = "error"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// StartGamePayload is the payload for start_game message
type StartGamePayload = app.StartRequest

// SubmitVotePayload is the payload for submit_vote message
type SubmitVotePayload struct {
	VoterID  string `json:"voterId"`
	TargetID string `json:"targetId"`
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	ClientID string      `json:"clientId"`
	View     domain.View `json:"view"`
}

// StatePayload is the payload for state message
type StatePayload struct {
	Event domain.EventType `json:"event"`
	View  interface{}      `json:"view"`
}

// ErrorPayload is the payload for error message
type ErrorPayload = domain.ErrorPayload
