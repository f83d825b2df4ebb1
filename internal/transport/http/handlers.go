package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/skip2/go-qrcode"

	"mentiroso/internal/app"
	"mentiroso/internal/domain"
)

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
	maxBodyBytes  = 1 << 16
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status  string `json:"status"`
	Screens int    `json:"screens"`
}

// CategoriesResponse is the response for the category list
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Fallback   bool     `json:"fallback"`
}

// SessionResponse is the response for the device session token
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// VoteRequest is the body of a vote
type VoteRequest struct {
	VoterID  string `json:"voterId"`
	TargetID string `json:"targetId"`
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status:  "ok",
		Screens: s.hub.ClientCount(),
	})
}

// handleCategories handles GET /api/categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, fallback := s.controller.Categories(r.Context())
	s.sendSuccess(w, &CategoriesResponse{
		Categories: categories,
		Fallback:   fallback,
	})
}

// handleGetSession handles GET /api/session
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	token, err := s.controller.SessionToken(r.Context())
	if err != nil {
		s.logger.Error("failed to load session token", "error", err)
		s.sendFailure(w, err)
		return
	}

	s.sendSuccess(w, &SessionResponse{SessionID: token})
}

// handleResetSession handles DELETE /api/session
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.ResetSessionToken(r.Context()); err != nil {
		s.logger.Error("failed to reset session token", "error", err)
		s.sendFailure(w, err)
		return
	}

	s.sendSuccess(w, nil)
}

// handleGetGame handles GET /api/game
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.controller.View())
}

// handleStartGame handles POST /api/game
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req app.StartRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	players, err := req.Lineup()
	if err != nil {
		s.sendFailure(w, err)
		return
	}

	view, err := s.controller.Start(r.Context(), players, req.Category, req.Liars)
	if err != nil {
		s.sendFailure(w, err)
		return
	}

	s.sendSuccess(w, view)
}

// handleRevealNext handles POST /api/game/reveal/next
func (s *Server) handleRevealNext(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.controller.AdvanceReveal())
}

// handleRevealCard handles GET /api/game/reveal
func (s *Server) handleRevealCard(w http.ResponseWriter, r *http.Request) {
	card, ok := s.controller.RevealCard()
	if !ok {
		s.sendError(w, http.StatusConflict, "NO_REVEAL", "No hay ninguna carta para mostrar.")
		return
	}

	s.sendSuccess(w, card)
}

// handleSubmitVote handles POST /api/game/votes
func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if req.VoterID == "" || req.TargetID == "" {
		s.sendError(w, http.StatusBadRequest, app.ErrCodeInvalidMessage, "Se necesita votante y votado.")
		return
	}

	view, err := s.controller.SubmitVote(req.VoterID, req.TargetID)
	if err != nil {
		s.sendFailure(w, err)
		return
	}

	s.sendSuccess(w, view)
}

// handleContinue handles POST /api/game/continue
func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.controller.ContinueSameSecret())
}

// handleReady handles POST /api/game/ready
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.controller.BeginVoteAfterReady())
}

// handleFinish handles POST /api/game/finish
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.controller.ForceGameOver())
}

// handleReset handles DELETE /api/game
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.controller.Reset())
}

// handleDisplayQR handles GET /api/display/qr. The code points a second
// screen at the WebSocket endpoint of this server.
func (s *Server) handleDisplayQR(w http.ResponseWriter, r *http.Request) {
	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.sendError(w, http.StatusBadRequest, app.ErrCodeInvalidMessage, "Tamaño inválido.")
			return
		}
		size = max(minQRSize, min(n, maxQRSize))
	}

	png, err := qrcode.Encode(displayURL(r), qrcode.Medium, size)
	if err != nil {
		s.logger.Error("failed to encode qr code", "error", err)
		s.sendFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// displayURL builds the WebSocket URL a display should connect to
func displayURL(r *http.Request) string {
	scheme := "ws"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "wss"
	}
	return scheme + "://" + r.Host + "/ws"
}

// decodeBody reads a JSON request body, answering 400 on failure
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.sendError(w, http.StatusBadRequest, app.ErrCodeInvalidMessage, "Solicitud inválida.")
		return false
	}
	return true
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendFailure maps a controller error to a status and an error response
func (s *Server) sendFailure(w http.ResponseWriter, err error) {
	info := app.DescribeError(err)
	s.sendError(w, statusFor(err), info.Code, info.Message)
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrStartInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrNotEnoughPlayers),
		errors.Is(err, domain.ErrDuplicatePlayer),
		errors.Is(err, domain.ErrEmptyPlayerName),
		errors.Is(err, domain.ErrEmptyCategory):
		return http.StatusBadRequest
	case app.DescribeError(err).Code == app.ErrCodeProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
