package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"mentiroso/internal/domain"
	"mentiroso/internal/provider"
)

type fakeProvider struct {
	mu         sync.Mutex
	categories []string
	catErr     error
	secret     domain.Secret
	secretErr  error
	block      chan struct{}
	started    chan struct{}
	tokens     []string
}

func (p *fakeProvider) ListCategories(ctx context.Context) ([]string, error) {
	if p.catErr != nil {
		return nil, p.catErr
	}
	return p.categories, nil
}

func (p *fakeProvider) FetchSecret(ctx context.Context, category, sessionToken string) (domain.Secret, error) {
	p.mu.Lock()
	p.tokens = append(p.tokens, sessionToken)
	p.mu.Unlock()

	if p.started != nil {
		close(p.started)
	}
	if p.block != nil {
		<-p.block
	}
	if p.secretErr != nil {
		return domain.Secret{}, &provider.ProviderError{Op: "fetch secret", Category: category, Err: p.secretErr}
	}
	return p.secret, nil
}

type fakeTokens struct {
	token string
	err   error
	reset int
}

func (t *fakeTokens) SessionToken(ctx context.Context) (string, error) {
	return t.token, t.err
}

func (t *fakeTokens) ResetSessionToken(ctx context.Context) error {
	t.reset++
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []*domain.GameEvent
}

func (r *recorder) Publish(event *domain.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// identityShuffler keeps the seating order, so the first players are liars
type identityShuffler struct{}

func (identityShuffler) Shuffle(n int, swap func(i, j int)) {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(p *fakeProvider) (*Controller, *recorder, *fakeTokens) {
	rec := &recorder{}
	tokens := &fakeTokens{token: "device-1"}
	c := NewController(p, tokens, identityShuffler{}, rec, ControllerConfig{
		DefaultCategories: []string{"peliculas", "famosos"},
		FetchTimeout:      time.Second,
	}, testLogger())
	return c, rec, tokens
}

func threePlayers() []domain.Player {
	return []domain.Player{
		{ID: "ana", Name: "Ana"},
		{ID: "beto", Name: "Beto"},
		{ID: "caro", Name: "Caro"},
	}
}

func okProvider() *fakeProvider {
	return &fakeProvider{
		categories: []string{"peliculas", "famosos"},
		secret:     domain.Secret{Text: "Titanic", Meta: map[string]any{"image": "titanic.jpg"}},
	}
}

func TestControllerStartsInLobby(t *testing.T) {
	c, _, _ := newTestController(okProvider())

	view := c.View()
	if view.Phase != domain.PhaseLobby {
		t.Errorf("Phase = %v, want lobby", view.Phase)
	}
	if _, ok := c.State(); ok {
		t.Error("State() should be empty in the lobby")
	}
	if _, ok := c.RevealCard(); ok {
		t.Error("RevealCard() should be empty in the lobby")
	}
}

func TestControllerStart(t *testing.T) {
	p := okProvider()
	c, rec, _ := newTestController(p)

	view, err := c.Start(context.Background(), threePlayers(), "peliculas", 5)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if view.Phase != domain.PhaseReveal || view.RoundNumber != 1 {
		t.Errorf("view = %v round %d, want reveal round 1", view.Phase, view.RoundNumber)
	}

	state, ok := c.State()
	if !ok {
		t.Fatal("State() empty after Start")
	}
	if state.LiarCount() != 1 {
		t.Errorf("LiarCount() = %d, want clamped to 1", state.LiarCount())
	}
	if state.SecretWord != "Titanic" || state.SecretImage() != "titanic.jpg" {
		t.Errorf("secret = %q/%q", state.SecretWord, state.SecretImage())
	}
	if len(p.tokens) != 1 || p.tokens[0] != "device-1" {
		t.Errorf("provider tokens = %v, want [device-1]", p.tokens)
	}

	types := rec.types()
	if len(types) != 2 || types[0] != domain.EventGameStarting || types[1] != domain.EventGameStarted {
		t.Errorf("events = %v, want [GAME_STARTING GAME_STARTED]", types)
	}
	if c.Loading() {
		t.Error("Loading() still true after Start")
	}
}

func TestControllerStartValidation(t *testing.T) {
	tests := []struct {
		name     string
		players  []domain.Player
		category string
		wantErr  error
	}{
		{"too few players", threePlayers()[:2], "peliculas", domain.ErrNotEnoughPlayers},
		{"empty category", threePlayers(), " ", domain.ErrEmptyCategory},
		{"unknown category", threePlayers(), "series", domain.ErrUnknownCategory},
		{"duplicate ids", append(threePlayers(), domain.Player{ID: "ana", Name: "Otra"}), "peliculas", domain.ErrDuplicatePlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := okProvider()
			c, _, _ := newTestController(p)

			view, err := c.Start(context.Background(), tt.players, tt.category, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Start() error = %v, want %v", err, tt.wantErr)
			}
			if view.Phase != domain.PhaseLobby {
				t.Errorf("Phase = %v, want lobby", view.Phase)
			}
			if len(p.tokens) != 0 {
				t.Error("secret fetched for an invalid start")
			}
		})
	}
}

func TestControllerStartUsesDefaultCategoriesWhenListFails(t *testing.T) {
	p := okProvider()
	p.catErr = provider.ErrCategoriesUnavailable
	c, _, _ := newTestController(p)

	if _, err := c.Start(context.Background(), threePlayers(), "famosos", 1); err != nil {
		t.Fatalf("Start() with default category error = %v", err)
	}

	categories, fallback := c.Categories(context.Background())
	if !fallback || len(categories) != 2 {
		t.Errorf("Categories() = %v, %v; want defaults", categories, fallback)
	}
}

func TestControllerStartProviderFailure(t *testing.T) {
	p := okProvider()
	p.secretErr = errors.New("status 503")
	c, rec, _ := newTestController(p)

	view, err := c.Start(context.Background(), threePlayers(), "peliculas", 1)
	if !errors.Is(err, provider.ErrProvider) {
		t.Fatalf("Start() error = %v, want ErrProvider", err)
	}
	if view.Phase != domain.PhaseLobby || view.Loading {
		t.Errorf("view = %+v, want idle lobby", view)
	}

	types := rec.types()
	if types[len(types)-1] != domain.EventStartFailed {
		t.Errorf("last event = %v, want START_FAILED", types[len(types)-1])
	}
}

func TestControllerStartTokenFailure(t *testing.T) {
	p := okProvider()
	c, _, tokens := newTestController(p)
	tokens.err = errors.New("disk full")

	if _, err := c.Start(context.Background(), threePlayers(), "peliculas", 1); err == nil {
		t.Fatal("Start() should fail without a session token")
	}
	if _, ok := c.State(); ok {
		t.Error("game created without a session token")
	}
}

func TestControllerRejectsConcurrentStart(t *testing.T) {
	p := okProvider()
	p.block = make(chan struct{})
	p.started = make(chan struct{})
	c, _, _ := newTestController(p)

	done := make(chan error, 1)
	go func() {
		_, err := c.Start(context.Background(), threePlayers(), "peliculas", 1)
		done <- err
	}()

	<-p.started
	if !c.Loading() || !c.View().Loading {
		t.Error("Loading() = false during fetch")
	}

	if _, err := c.Start(context.Background(), threePlayers(), "peliculas", 1); !errors.Is(err, domain.ErrStartInProgress) {
		t.Errorf("second Start() error = %v, want ErrStartInProgress", err)
	}

	// Entry points stay usable while loading
	if view := c.AdvanceReveal(); view.Phase != domain.PhaseLobby {
		t.Errorf("AdvanceReveal() while loading = %v, want lobby", view.Phase)
	}

	close(p.block)
	if err := <-done; err != nil {
		t.Fatalf("first Start() error = %v", err)
	}
	if c.View().Phase != domain.PhaseReveal {
		t.Errorf("Phase = %v, want reveal", c.View().Phase)
	}
}

func TestControllerStartIgnoredDuringGame(t *testing.T) {
	p := okProvider()
	c, _, _ := newTestController(p)

	if _, err := c.Start(context.Background(), threePlayers(), "peliculas", 1); err != nil {
		t.Fatal(err)
	}
	c.AdvanceReveal()

	view, err := c.Start(context.Background(), threePlayers(), "famosos", 1)
	if err != nil {
		t.Fatalf("Start() during game error = %v", err)
	}
	if view.Category != "peliculas" || view.CurrentIndex != 1 {
		t.Errorf("view = %+v, want the running game untouched", view)
	}
}

func TestControllerFullGameLiarCaught(t *testing.T) {
	c, rec, _ := newTestController(okProvider())

	if _, err := c.Start(context.Background(), threePlayers(), "peliculas", 1); err != nil {
		t.Fatal(err)
	}

	// ana is the liar with the identity shuffler
	card, ok := c.RevealCard()
	if !ok || card.Role != domain.RoleLiar || card.SecretWord != "" {
		t.Errorf("first card = %+v, want liar without secret", card)
	}

	for i := 0; i < 3; i++ {
		c.AdvanceReveal()
	}
	if c.View().Phase != domain.PhaseVote {
		t.Fatalf("Phase = %v, want vote", c.View().Phase)
	}

	for _, ballot := range [][2]string{{"ana", "beto"}, {"beto", "ana"}, {"caro", "ana"}} {
		if _, err := c.SubmitVote(ballot[0], ballot[1]); err != nil {
			t.Fatalf("SubmitVote(%v) error = %v", ballot, err)
		}
	}

	view := c.View()
	if view.Phase != domain.PhaseOutcome || view.Outcome == nil {
		t.Fatalf("view = %+v, want outcome", view)
	}
	if !view.Outcome.LiarFound || view.Outcome.RemainingLiars != 0 || !view.Outcome.CanFinish {
		t.Errorf("outcome = %+v, want liar found with none remaining", view.Outcome)
	}

	view = c.ContinueSameSecret()
	if view.Phase != domain.PhaseGameOver || view.GameOver == nil || !view.GameOver.LiarFound {
		t.Fatalf("view = %+v, want gameover with liar found", view)
	}
	if view.GameOver.Winner != domain.RoleNormal || view.GameOver.SecretWord != "Titanic" {
		t.Errorf("gameover = %+v", view.GameOver)
	}

	types := rec.types()
	if types[len(types)-1] != domain.EventGameEnded {
		t.Errorf("last event = %v, want GAME_ENDED", types[len(types)-1])
	}
}

func TestControllerIgnoresInvalidIntents(t *testing.T) {
	c, rec, _ := newTestController(okProvider())

	// No game yet
	c.AdvanceReveal()
	c.ContinueSameSecret()
	c.BeginVoteAfterReady()
	c.ForceGameOver()
	if _, err := c.SubmitVote("ana", "beto"); err != nil {
		t.Errorf("SubmitVote() without game error = %v", err)
	}
	if len(rec.types()) != 0 {
		t.Errorf("events = %v, want none", rec.types())
	}

	if _, err := c.Start(context.Background(), threePlayers(), "peliculas", 1); err != nil {
		t.Fatal(err)
	}
	before, _ := c.State()

	c.ContinueSameSecret()
	c.BeginVoteAfterReady()
	if _, err := c.SubmitVote("ana", "beto"); err != nil {
		t.Errorf("SubmitVote() in reveal error = %v", err)
	}

	after, _ := c.State()
	if after.Phase != before.Phase || after.CurrentIndex != before.CurrentIndex {
		t.Errorf("state changed by invalid intents: %+v", after)
	}
}

func TestControllerSelfVoteIgnored(t *testing.T) {
	c, _, _ := newTestController(okProvider())
	if _, err := c.Start(context.Background(), threePlayers(), "peliculas", 1); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		c.AdvanceReveal()
	}

	view, err := c.SubmitVote("beto", "beto")
	if err != nil {
		t.Fatalf("SubmitVote(self) error = %v", err)
	}
	if view.VotedCount != 0 || view.CurrentIndex != 0 {
		t.Errorf("self vote changed the view: %+v", view)
	}

	if _, err := c.SubmitVote("beto", "nadie"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Errorf("SubmitVote(unknown) error = %v, want ErrPlayerNotFound", err)
	}
}

func TestControllerForceGameOverAndReset(t *testing.T) {
	c, rec, _ := newTestController(okProvider())
	if _, err := c.Start(context.Background(), threePlayers(), "peliculas", 1); err != nil {
		t.Fatal(err)
	}

	view := c.ForceGameOver()
	if view.Phase != domain.PhaseGameOver || view.GameOver.Winner != domain.RoleLiar {
		t.Errorf("ForceGameOver() view = %+v, want liar win", view)
	}

	view = c.Reset()
	if view.Phase != domain.PhaseLobby {
		t.Errorf("Reset() Phase = %v, want lobby", view.Phase)
	}
	if _, ok := c.State(); ok {
		t.Error("state kept after Reset")
	}

	types := rec.types()
	if types[len(types)-1] != domain.EventGameReset {
		t.Errorf("last event = %v, want GAME_RESET", types[len(types)-1])
	}

	// A new game can start after a reset
	if _, err := c.Start(context.Background(), threePlayers(), "famosos", 1); err != nil {
		t.Errorf("Start() after Reset error = %v", err)
	}
}

func TestControllerSessionToken(t *testing.T) {
	c, _, tokens := newTestController(okProvider())

	token, err := c.SessionToken(context.Background())
	if err != nil || token != "device-1" {
		t.Errorf("SessionToken() = %q, %v", token, err)
	}
	if err := c.ResetSessionToken(context.Background()); err != nil {
		t.Fatal(err)
	}
	if tokens.reset != 1 {
		t.Errorf("reset calls = %d, want 1", tokens.reset)
	}
}

func TestControllerStartDefaultLiars(t *testing.T) {
	c := NewController(okProvider(), &fakeTokens{token: "t"}, identityShuffler{}, nil, ControllerConfig{
		DefaultLiars: 2,
	}, testLogger())

	players := append(threePlayers(), domain.Player{ID: "dani", Name: "Dani"}, domain.Player{ID: "eli", Name: "Eli"})
	if _, err := c.Start(context.Background(), players, "peliculas", 0); err != nil {
		t.Fatal(err)
	}

	state, _ := c.State()
	if state.LiarCount() != 2 {
		t.Errorf("LiarCount() = %d, want configured default 2", state.LiarCount())
	}
}
