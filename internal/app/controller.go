package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"mentiroso/internal/domain"
	"mentiroso/internal/provider"
)

// SessionTokens persists the device session token sent to the word provider
type SessionTokens interface {
	SessionToken(ctx context.Context) (string, error)
	ResetSessionToken(ctx context.Context) error
}

// ControllerConfig holds the controller's tunables
type ControllerConfig struct {
	DefaultCategories []string
	DefaultLiars      int // Used when Start is asked for no liars
	FetchTimeout      time.Duration
}

// Controller owns the one game on this device. Every entry point is
// serialised by mu; the secret fetch in Start is the only call made
// without holding it.
type Controller struct {
	mu      sync.Mutex
	state   *domain.RoundState // nil while in the lobby
	loading bool

	provider  provider.Provider
	tokens    SessionTokens
	shuffler  domain.Shuffler
	publisher Publisher
	config    ControllerConfig
	logger    *slog.Logger
}

// NewController creates a controller in the lobby
func NewController(p provider.Provider, tokens SessionTokens, shuffler domain.Shuffler, publisher Publisher, cfg ControllerConfig, logger *slog.Logger) *Controller {
	return &Controller{
		provider:  p,
		tokens:    tokens,
		shuffler:  shuffler,
		publisher: publisher,
		config:    cfg,
		logger:    logger,
	}
}

// View returns what the screens should render right now
func (c *Controller) View() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Loading reports whether a Start is waiting on the word provider
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// State returns a copy of the current game state, if a game exists
func (c *Controller) State() (domain.RoundState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return domain.RoundState{}, false
	}
	return *c.state, true
}

// RevealCard returns the private card of the player holding the device
func (c *Controller) RevealCard() (domain.RevealCard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return domain.RevealCard{}, false
	}
	return c.state.RevealCard()
}

// Categories lists the playable categories. The second result reports
// whether the configured defaults were used instead of the provider's list.
func (c *Controller) Categories(ctx context.Context) ([]string, bool) {
	categories, fallback := provider.CategoriesOrDefault(ctx, c.provider, c.config.DefaultCategories)
	if fallback {
		c.logger.Warn("category list unavailable, using defaults", "categories", categories)
	}
	return categories, fallback
}

// SessionToken returns the device session token
func (c *Controller) SessionToken(ctx context.Context) (string, error) {
	return c.tokens.SessionToken(ctx)
}

// ResetSessionToken forgets the device session token
func (c *Controller) ResetSessionToken(ctx context.Context) error {
	return c.tokens.ResetSessionToken(ctx)
}

// Start validates the lineup, fetches a secret for the category and deals
// the roles. On any error the lobby is left as it was. Calling Start while
// a game exists is ignored.
func (c *Controller) Start(ctx context.Context, players []domain.Player, category string, liars int) (domain.View, error) {
	if err := domain.ValidateLineup(players, category); err != nil {
		return c.View(), err
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return c.View(), domain.ErrStartInProgress
	}
	if c.state != nil {
		c.logger.Debug("start ignored, game in progress", "phase", c.state.Phase)
		view := c.viewLocked()
		c.mu.Unlock()
		return view, nil
	}
	c.loading = true
	c.publishLocked(domain.EventGameStarting, c.viewLocked())
	c.mu.Unlock()

	secret, err := c.fetchSecret(ctx, category)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if liars <= 0 {
		liars = c.config.DefaultLiars
	}

	var state domain.RoundState
	if err == nil {
		state, err = domain.NewRoundState(players, category, secret, liars, c.shuffler)
	}
	if err != nil {
		c.logger.Warn("game start failed", "category", category, "error", err)
		c.publishLocked(domain.EventStartFailed, c.viewLocked())
		return c.viewLocked(), err
	}

	c.state = &state
	c.logger.Info("game started",
		"category", category,
		"players", state.PlayerCount(),
		"liars", state.LiarCount(),
	)

	view := c.viewLocked()
	c.publishLocked(domain.EventGameStarted, view)
	return view, nil
}

// fetchSecret checks the category and asks the provider for a secret.
// It runs without the lock.
func (c *Controller) fetchSecret(ctx context.Context, category string) (domain.Secret, error) {
	if c.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.FetchTimeout)
		defer cancel()
	}

	categories, _ := c.Categories(ctx)
	if !slices.Contains(categories, category) {
		return domain.Secret{}, domain.ErrUnknownCategory
	}

	token, err := c.tokens.SessionToken(ctx)
	if err != nil {
		return domain.Secret{}, fmt.Errorf("session token: %w", err)
	}

	return c.provider.FetchSecret(ctx, category, token)
}

// AdvanceReveal hands the device to the next player
func (c *Controller) AdvanceReveal() domain.View {
	view, _ := c.apply("advance_reveal", domain.RoundState.AdvanceReveal)
	return view
}

// SubmitVote records a ballot. Self-votes and votes outside the voting
// phase are ignored; unknown player ids are reported.
func (c *Controller) SubmitVote(voterID, targetID string) (domain.View, error) {
	return c.apply("submit_vote", func(s domain.RoundState) (domain.RoundState, error) {
		return s.SubmitVote(voterID, targetID)
	})
}

// ContinueSameSecret applies the outcome and prepares the next round
func (c *Controller) ContinueSameSecret() domain.View {
	view, _ := c.apply("continue_same_secret", domain.RoundState.ContinueSameSecret)
	return view
}

// BeginVoteAfterReady starts the next voting round
func (c *Controller) BeginVoteAfterReady() domain.View {
	view, _ := c.apply("begin_vote", domain.RoundState.BeginVoteAfterReady)
	return view
}

// ForceGameOver ends the current game
func (c *Controller) ForceGameOver() domain.View {
	view, _ := c.apply("force_game_over", func(s domain.RoundState) (domain.RoundState, error) {
		return s.ForceGameOver(), nil
	})
	return view
}

// Reset discards the game and returns to the lobby
func (c *Controller) Reset() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != nil {
		c.logger.Info("game reset",
			"phase", c.state.Phase,
			"round", c.state.RoundNumber,
			"abandoned", c.state.Phase.IsActive(),
		)
	}
	c.state = nil

	view := c.viewLocked()
	c.publishLocked(domain.EventGameReset, view)
	return view
}

// apply runs one engine transition against the current state. Transitions
// that are not valid from the current phase leave the state untouched.
func (c *Controller) apply(action string, transition func(domain.RoundState) (domain.RoundState, error)) (domain.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		c.logger.Debug("intent ignored without a game", "action", action)
		return c.viewLocked(), nil
	}

	prev := *c.state
	next, err := transition(prev)
	if err != nil {
		if isIgnorable(err) {
			c.logger.Debug("intent ignored", "action", action, "phase", prev.Phase, "error", err)
			return prev.View(), nil
		}
		return prev.View(), err
	}

	if !prev.Phase.CanTransitionTo(next.Phase) {
		c.logger.Error("illegal transition refused", "action", action, "from", prev.Phase, "to", next.Phase)
		return prev.View(), domain.ErrInvalidTransition
	}

	c.state = &next
	c.logger.Info("game transition",
		"action", action,
		"from", prev.Phase,
		"phase", next.Phase,
		"round", next.RoundNumber,
	)

	view := next.View()
	c.publishLocked(domain.EventFor(prev.Phase, next.Phase), view)
	return view, nil
}

func isIgnorable(err error) bool {
	return errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrCannotVoteSelf)
}

func (c *Controller) viewLocked() domain.View {
	if c.state == nil {
		return domain.LobbyView(c.loading)
	}
	return c.state.View()
}

func (c *Controller) publishLocked(eventType domain.EventType, view domain.View) {
	if c.publisher == nil {
		return
	}
	c.publisher.Publish(domain.NewEvent(eventType, view))
}
