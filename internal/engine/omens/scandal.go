package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// Scandal costs the drawer one victory point.
type Scandal struct{ untargeted }

func (Scandal) ID() string       { return "scandal" }
func (Scandal) Name() string     { return "Scandal" }
func (Scandal) Beneficial() bool { return false }

func (c Scandal) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	p := s.GetPlayer(playerID)
	if p == nil {
		return nil, engine.ErrPlayerNotFound
	}
	if p.VictoryPoints == 0 {
		return nil, nil
	}
	p.VictoryPoints--
	return []engine.Event{
		{Type: engine.EventOmenEffect, Player: playerID, Data: map[string]any{
			"card": c.ID(), "victory_points": -1,
		}},
	}, nil
}
