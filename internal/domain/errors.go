package domain

import "errors"

// Domain errors
var (
	ErrNotEnoughPlayers  = errors.New("not enough players to start")
	ErrDuplicatePlayer   = errors.New("duplicate player id")
	ErrEmptyPlayerName   = errors.New("player name cannot be empty")
	ErrEmptyCategory     = errors.New("category cannot be empty")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrEmptySecret       = errors.New("secret word cannot be empty")
	ErrInvalidTransition = errors.New("invalid action for current phase")
	ErrCannotVoteSelf    = errors.New("cannot vote for yourself")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrStartInProgress   = errors.New("game start already in progress")
)
