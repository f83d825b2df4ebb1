package domain

// View is the read-only state the presentation layer renders. It never
// carries the secret or the liar set except at game over; the reveal card
// is fetched separately, one player at a time.
type View struct {
	Phase           Phase         `json:"phase"`
	Loading         bool          `json:"loading"`
	RoundNumber     int           `json:"roundNumber,omitempty"`
	UpcomingRound   int           `json:"upcomingRound,omitempty"`
	Category        string        `json:"category,omitempty"`
	Players         []PlayerInfo  `json:"players"`
	CurrentIndex    int           `json:"currentIndex"`
	CurrentPlayer   *PlayerInfo   `json:"currentPlayer,omitempty"`
	VotedCount      int           `json:"votedCount"`
	HasRevealedOnce bool          `json:"hasRevealedOnce"`
	Outcome         *OutcomeView  `json:"outcome,omitempty"`
	GameOver        *GameOverView `json:"gameOver,omitempty"`
}

// OutcomeView describes the result of the last vote
type OutcomeView struct {
	EliminatedID   string       `json:"eliminatedId,omitempty"`
	EliminatedName string       `json:"eliminatedName,omitempty"`
	Tied           bool         `json:"tied"`
	LiarFound      bool         `json:"liarFound"`
	RemainingLiars int          `json:"remainingLiars"`
	CanFinish      bool         `json:"canFinish"`
	Votes          []VoteResult `json:"votes"`
}

// GameOverView describes how the game ended
type GameOverView struct {
	LiarFound   bool         `json:"liarFound"`
	Winner      Role         `json:"winner"`
	SecretWord  string       `json:"secretWord"`
	SecretImage string       `json:"secretImage,omitempty"`
	Liars       []PlayerInfo `json:"liars"`
}

// LobbyView returns the view shown while no game exists
func LobbyView(loading bool) View {
	return View{
		Phase:   PhaseLobby,
		Loading: loading,
		Players: []PlayerInfo{},
	}
}

// View builds the presentation view of the state
func (s RoundState) View() View {
	players := make([]PlayerInfo, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p.ToInfo())
	}

	view := View{
		Phase:           s.Phase,
		RoundNumber:     s.RoundNumber,
		Category:        s.Category,
		Players:         players,
		CurrentIndex:    s.CurrentIndex,
		VotedCount:      s.VotedCount(),
		HasRevealedOnce: s.HasRevealedOnce,
	}

	if p, ok := s.CurrentPlayer(); ok && (s.Phase == PhaseReveal || s.Phase == PhaseVote) {
		info := p.ToInfo()
		view.CurrentPlayer = &info
	}

	switch s.Phase {
	case PhaseReady:
		view.UpcomingRound = s.UpcomingRound()
	case PhaseOutcome:
		outcome := &OutcomeView{
			Tied:           s.Tied,
			LiarFound:      s.LiarFound,
			RemainingLiars: s.RemainingLiars(),
			CanFinish:      s.CanFinish(),
			Votes:          s.VoteResults(),
		}
		if !s.Tied && s.EliminatedID != "" {
			outcome.EliminatedID = s.EliminatedID
			if p, err := s.GetPlayer(s.EliminatedID); err == nil {
				outcome.EliminatedName = p.Name
			}
		}
		view.Outcome = outcome
	case PhaseGameOver:
		all := s.AllLiars()
		liars := make([]PlayerInfo, 0, len(all))
		for _, p := range all {
			liars = append(liars, p.ToInfo())
		}
		view.GameOver = &GameOverView{
			LiarFound:   s.LiarFound,
			Winner:      s.Winner(),
			SecretWord:  s.SecretWord,
			SecretImage: s.SecretImage(),
			Liars:       liars,
		}
	}

	return view
}
