package domain

import (
	"regexp"
	"testing"
)

func TestMakePlayerID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"Iván", "ivan-"},
		{"María José", "maria-jose-"},
		{"  Lio!! ", "lio-"},
		{"???", "p-"},
	}

	for _, tt := range tests {
		id := MakePlayerID(tt.name)
		pattern := regexp.MustCompile("^" + regexp.QuoteMeta(tt.prefix) + "[0-9a-f]{4}$")
		if !pattern.MatchString(id) {
			t.Errorf("MakePlayerID(%q) = %q, want prefix %q and a 4-char suffix", tt.name, id, tt.prefix)
		}
	}

	if MakePlayerID("Cami") == MakePlayerID("Cami") {
		t.Error("MakePlayerID returned the same id twice")
	}
}

func TestRosterAddSkipsDuplicates(t *testing.T) {
	r := NewRoster()

	if _, ok := r.Add(Player{ID: "fausto", Name: "Fausto"}); !ok {
		t.Fatal("Add(fausto) = false, want true")
	}
	if _, ok := r.Add(Player{Name: "fausto"}); ok {
		t.Error("Add with duplicate name (different case) = true, want false")
	}
	if _, ok := r.Add(Player{ID: "fausto", Name: "Other"}); ok {
		t.Error("Add with duplicate id = true, want false")
	}
	if _, ok := r.Add(Player{Name: "   "}); ok {
		t.Error("Add with blank name = true, want false")
	}

	manual, ok := r.Add(Player{Name: " Naza "})
	if !ok {
		t.Fatal("Add(Naza) = false, want true")
	}
	if manual.Name != "Naza" || manual.ID == "" {
		t.Errorf("manual player = %+v, want trimmed name and generated id", manual)
	}

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRosterToggleAndLimits(t *testing.T) {
	r := NewRoster()
	for _, name := range []string{"Ulises", "Ivan", "Lio"} {
		r.Add(Player{ID: name, Name: name})
	}

	if !r.CanStart() {
		t.Error("CanStart() = false with 3 players")
	}
	if r.MaxLiars() != 1 {
		t.Errorf("MaxLiars() = %d, want 1", r.MaxLiars())
	}

	if r.Toggle(Player{ID: "Lio", Name: "Lio"}) {
		t.Error("Toggle on selected player = true, want false (removed)")
	}
	if r.CanStart() {
		t.Error("CanStart() = true with 2 players")
	}
	if r.MaxLiars() != 1 {
		t.Errorf("MaxLiars() with 2 players = %d, want 1", r.MaxLiars())
	}

	for _, name := range []string{"Lio", "Cami", "Emi", "Belu"} {
		r.Toggle(Player{ID: name, Name: name})
	}
	if r.MaxLiars() != 2 {
		t.Errorf("MaxLiars() with 6 players = %d, want 2", r.MaxLiars())
	}

	players := r.Players()
	players[0].Name = "changed"
	if r.Players()[0].Name == "changed" {
		t.Error("Players() exposes the internal slice")
	}
}

func TestClampLiars(t *testing.T) {
	tests := []struct {
		requested, n, want int
	}{
		{0, 3, 1},
		{5, 3, 1},
		{2, 5, 2},
		{3, 5, 2},
		{3, 7, 3},
		{-1, 10, 1},
	}

	for _, tt := range tests {
		if got := ClampLiars(tt.requested, tt.n); got != tt.want {
			t.Errorf("ClampLiars(%d, %d) = %d, want %d", tt.requested, tt.n, got, tt.want)
		}
	}
}
