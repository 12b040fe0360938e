package lobby_test

import (
	"errors"
	"testing"

	"hexhaven/internal/lobby"
)

func TestStartNeedsReadyHumans(t *testing.T) {
	l := lobby.NewLobby("g")
	if err := l.Join("p1", "Ada"); err != nil {
		t.Fatal(err)
	}
	if err := l.CanStart(); !errors.Is(err, lobby.ErrNotEnough) {
		t.Fatalf("got %v, want ErrNotEnough", err)
	}
	if _, err := l.AddBot(""); err != nil {
		t.Fatal(err)
	}
	if err := l.CanStart(); !errors.Is(err, lobby.ErrNotAllReady) {
		t.Fatalf("got %v, want ErrNotAllReady", err)
	}
	if err := l.SetReady("p1", true); err != nil {
		t.Fatal(err)
	}
	seats, err := l.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(seats) != 2 || seats[0].ID != "p1" || !seats[1].Bot || seats[1].Name != "Bot 1" {
		t.Fatalf("unexpected seats %+v", seats)
	}
	if _, err := l.Start(); !errors.Is(err, lobby.ErrStarted) {
		t.Fatalf("got %v, want ErrStarted", err)
	}
}

func TestBotsOnlyCannotStart(t *testing.T) {
	l := lobby.NewLobby("g")
	l.AddBot("a")
	l.AddBot("b")
	if err := l.CanStart(); !errors.Is(err, lobby.ErrNoHumanSeats) {
		t.Fatalf("got %v, want ErrNoHumanSeats", err)
	}
}

func TestJoinLimits(t *testing.T) {
	l := lobby.NewLobby("g")
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := l.Join(id, id); err != nil {
			t.Fatalf("Join %s: %v", id, err)
		}
	}
	if err := l.Join("e", "e"); !errors.Is(err, lobby.ErrFull) {
		t.Fatalf("got %v, want ErrFull", err)
	}
	// A known id rejoins under a new name.
	if err := l.Join("a", "Ada"); err != nil {
		t.Fatal(err)
	}
	if got := l.GetPlayers()[0].Name; got != "Ada" {
		t.Fatalf("got name %q, want Ada", got)
	}
	l.Leave("b")
	if got := len(l.GetPlayers()); got != 3 {
		t.Fatalf("got %d players, want 3", got)
	}
	if err := l.SetReady("zz", true); !errors.Is(err, lobby.ErrUnknownSeat) {
		t.Fatalf("got %v, want ErrUnknownSeat", err)
	}
}

func TestManagerRestore(t *testing.T) {
	m := lobby.NewManager()
	id := m.Create()
	if m.Get(id) == nil {
		t.Fatal("created lobby not found")
	}
	l := m.Restore("old", []lobby.PlayerInfo{{ID: "a", Name: "A"}, {ID: "bot-1", Name: "B", Bot: true}})
	if !l.IsStarted() || len(l.GetPlayers()) != 2 {
		t.Fatalf("restored lobby: started=%v players=%d", l.IsStarted(), len(l.GetPlayers()))
	}
	if err := l.Join("new", "N"); !errors.Is(err, lobby.ErrStarted) {
		t.Fatalf("got %v, want ErrStarted", err)
	}
	m.Remove(id)
	if m.Get(id) != nil {
		t.Fatal("lobby still present after Remove")
	}
}
