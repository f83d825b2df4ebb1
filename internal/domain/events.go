package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventGameStarting  EventType = "GAME_STARTING"
	EventGameStarted   EventType = "GAME_STARTED"
	EventStartFailed   EventType = "START_FAILED"
	EventRevealAdvance EventType = "REVEAL_ADVANCED"
	EventVotingStarted EventType = "VOTING_STARTED"
	EventVoteCast      EventType = "VOTE_CAST"
	EventRoundEnded    EventType = "ROUND_ENDED"
	EventRoundReady    EventType = "ROUND_READY"
	EventGameEnded     EventType = "GAME_ENDED"
	EventGameReset     EventType = "GAME_RESET"
)

// GameEvent represents a state change pushed to displays
type GameEvent struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new game event
func NewEvent(eventType EventType, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// EventFor picks the event type that describes a transition into next
func EventFor(prev Phase, next Phase) EventType {
	switch next {
	case PhaseReveal:
		if prev == PhaseLobby {
			return EventGameStarted
		}
		return EventRevealAdvance
	case PhaseVote:
		if prev == PhaseVote {
			return EventVoteCast
		}
		return EventVotingStarted
	case PhaseOutcome:
		return EventRoundEnded
	case PhaseReady:
		return EventRoundReady
	case PhaseGameOver:
		return EventGameEnded
	default:
		return EventGameReset
	}
}

// ErrorPayload is sent when an action fails
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
