package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// HeraldsAcclaim is worth one victory point.
type HeraldsAcclaim struct{ untargeted }

func (HeraldsAcclaim) ID() string       { return "heralds_acclaim" }
func (HeraldsAcclaim) Name() string     { return "Herald's Acclaim" }
func (HeraldsAcclaim) Beneficial() bool { return true }

func (c HeraldsAcclaim) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	p := s.GetPlayer(playerID)
	if p == nil {
		return nil, engine.ErrPlayerNotFound
	}
	p.VictoryPoints++
	return []engine.Event{
		{Type: engine.EventOmenEffect, Player: playerID, Data: map[string]any{
			"card": c.ID(), "victory_points": 1,
		}},
	}, nil
}
