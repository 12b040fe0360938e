package lobby

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrStarted      = errors.New("game already started")
	ErrFull         = errors.New("lobby is full")
	ErrNotEnough    = errors.New("not enough players")
	ErrNotAllReady  = errors.New("not all players ready")
	ErrUnknownSeat  = errors.New("no such player in lobby")
	ErrNoHumanSeats = errors.New("a game needs at least one human player")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
	Bot   bool
}

// Lobby collects seats for one game until it starts.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Started    bool
	bots       int
}

// NewLobby creates a new lobby.
func NewLobby(id string) *Lobby {
	return &Lobby{
		ID:         id,
		MaxPlayers: 4,
		MinPlayers: 2,
	}
}

// Join adds a player to the lobby. Joining again with a known id only
// renames the seat, so reconnecting phones keep their place.
func (l *Lobby) Join(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Name = name
			return nil
		}
	}
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return ErrFull
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// AddBot seats a computer player. Bots are always ready.
func (l *Lobby) AddBot(name string) (PlayerInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return PlayerInfo{}, ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return PlayerInfo{}, ErrFull
	}
	l.bots++
	if name == "" {
		name = fmt.Sprintf("Bot %d", l.bots)
	}
	p := &PlayerInfo{ID: fmt.Sprintf("bot-%d", l.bots), Name: name, Ready: true, Bot: true}
	l.Players = append(l.Players, p)
	return *p, nil
}

// Leave removes a player from the lobby. Seats are kept once the game runs.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady sets a player's ready flag.
func (l *Lobby) SetReady(id string, ready bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return nil
		}
	}
	return ErrUnknownSeat
}

// CanStart reports why the lobby cannot start yet, or nil.
func (l *Lobby) CanStart() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canStart()
}

func (l *Lobby) canStart() error {
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) < l.MinPlayers {
		return ErrNotEnough
	}
	humans := 0
	for _, p := range l.Players {
		if !p.Ready {
			return ErrNotAllReady
		}
		if !p.Bot {
			humans++
		}
	}
	if humans == 0 {
		return ErrNoHumanSeats
	}
	return nil
}

// Start marks the lobby as started and returns the seats in join order.
func (l *Lobby) Start() ([]PlayerInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.canStart(); err != nil {
		return nil, err
	}
	l.Started = true
	return l.players(), nil
}

// IsStarted reports whether the game is running.
func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.players()
}

func (l *Lobby) players() []PlayerInfo {
	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}
