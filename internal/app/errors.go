package app

import (
	"errors"

	"mentiroso/internal/domain"
	"mentiroso/internal/provider"
)

// Error codes shared by every transport
const (
	ErrCodeInvalidMessage  = "INVALID_MESSAGE"
	ErrCodeInvalidPlayers  = "INVALID_PLAYERS"
	ErrCodeInvalidCategory = "INVALID_CATEGORY"
	ErrCodeUnknownCategory = "UNKNOWN_CATEGORY"
	ErrCodePlayerNotFound  = "PLAYER_NOT_FOUND"
	ErrCodeStartInProgress = "START_IN_PROGRESS"
	ErrCodeProviderError   = "PROVIDER_ERROR"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DescribeError maps an error to a code and the message shown to players
func DescribeError(err error) domain.ErrorPayload {
	switch {
	case errors.Is(err, domain.ErrUnknownCategory):
		return domain.ErrorPayload{Code: ErrCodeUnknownCategory, Message: "La categoría elegida no existe."}
	case errors.Is(err, provider.ErrProvider):
		return domain.ErrorPayload{Code: ErrCodeProviderError, Message: "No se pudo obtener la palabra secreta. Intenta de nuevo."}
	case errors.Is(err, domain.ErrNotEnoughPlayers):
		return domain.ErrorPayload{Code: ErrCodeInvalidPlayers, Message: "Se necesitan al menos 3 jugadores."}
	case errors.Is(err, domain.ErrDuplicatePlayer):
		return domain.ErrorPayload{Code: ErrCodeInvalidPlayers, Message: "Hay jugadores repetidos."}
	case errors.Is(err, domain.ErrEmptyPlayerName):
		return domain.ErrorPayload{Code: ErrCodeInvalidPlayers, Message: "Todos los jugadores necesitan un nombre."}
	case errors.Is(err, domain.ErrEmptyCategory):
		return domain.ErrorPayload{Code: ErrCodeInvalidCategory, Message: "Elige una categoría."}
	case errors.Is(err, domain.ErrPlayerNotFound):
		return domain.ErrorPayload{Code: ErrCodePlayerNotFound, Message: "Jugador no encontrado."}
	case errors.Is(err, domain.ErrStartInProgress):
		return domain.ErrorPayload{Code: ErrCodeStartInProgress, Message: "La partida ya se está preparando."}
	default:
		return domain.ErrorPayload{Code: ErrCodeInternalError, Message: "Algo salió mal."}
	}
}
