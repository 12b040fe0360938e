package bot_test

import (
	"math/rand/v2"
	"testing"

	"hexhaven/internal/board"
	"hexhaven/internal/bot"
	"hexhaven/internal/engine"
	"hexhaven/internal/engine/omens"
)

func newGame(t *testing.T, seed uint64, withOmens bool) (*engine.Engine, *engine.State) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	b, err := board.Generate(board.DefaultGenConfig(), rng)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	e := engine.New(omens.NewRegistry(), rng)
	cfg := engine.DefaultConfig()
	cfg.Omens = withOmens
	var seats []engine.Player
	for _, id := range []string{"a", "b", "c"} {
		p := engine.NewPlayer(id, "Bot "+id)
		p.Bot = true
		seats = append(seats, p)
	}
	s, err := e.NewGame(b, seats, cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return e, s
}

func TestBotsPlayLegalGames(t *testing.T) {
	tests := []struct {
		seed  uint64
		omens bool
	}{
		{1, false},
		{2, false},
		{3, true},
		{4, true},
	}
	for _, tt := range tests {
		e, s := newGame(t, tt.seed, tt.omens)
		for step := 0; step < 3000 && s.Phase != engine.PhaseEnded; step++ {
			pid := s.Current().ID
			a, ok := bot.Decide(e, s, pid)
			if !ok {
				t.Fatalf("seed %d step %d: %s has no move in %s", tt.seed, step, pid, s.Phase)
			}
			next, _, err := e.Apply(s, pid, a)
			if err != nil {
				t.Fatalf("seed %d step %d: %s %+v: %v", tt.seed, step, pid, a, err)
			}
			s = next
		}
		if s.Phase == engine.PhaseRollOrder || s.Phase == engine.PhaseSetup {
			t.Fatalf("seed %d: stuck in %s", tt.seed, s.Phase)
		}
	}
}

func TestDecideOnlyOnOwnTurn(t *testing.T) {
	e, s := newGame(t, 9, false)
	if _, ok := bot.Decide(e, s, "b"); ok {
		t.Fatal("b should wait for a")
	}
	if _, ok := bot.Decide(e, s, "nobody"); ok {
		t.Fatal("unknown player should get no move")
	}
	a, ok := bot.Decide(e, s, "a")
	if !ok || a.Type != engine.ActionRollOrder {
		t.Fatalf("got %+v, %v", a, ok)
	}
}

func TestDecideDoesNotMutate(t *testing.T) {
	e, s := newGame(t, 5, false)
	for s.Phase != engine.PhasePlaying {
		a, _ := bot.Decide(e, s, s.Current().ID)
		next, _, err := e.Apply(s, s.Current().ID, a)
		if err != nil {
			t.Fatal(err)
		}
		s = next
	}
	before := s.Version
	snapshot := s.Clone()
	if _, ok := bot.Decide(e, s, s.Current().ID); !ok {
		t.Fatal("expected a move")
	}
	if s.Version != before || len(s.Vertices) != len(snapshot.Vertices) || s.HasRolled != snapshot.HasRolled {
		t.Fatal("Decide changed the state")
	}
}
