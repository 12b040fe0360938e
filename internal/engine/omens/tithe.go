package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// Tithe: take one random unit from another player.
type Tithe struct{}

func (Tithe) ID() string        { return "tithe" }
func (Tithe) Name() string      { return "Tithe" }
func (Tithe) Beneficial() bool  { return true }
func (Tithe) NeedsTarget() bool { return true }

func (Tithe) ValidTargets(s *engine.State, playerID string) []string {
	var targets []string
	for _, id := range otherPlayers(s, playerID) {
		if s.GetPlayer(id).Resources.Total() > 0 {
			targets = append(targets, id)
		}
	}
	return targets
}

func (c Tithe) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	p, victim := s.GetPlayer(playerID), s.GetPlayer(target)
	if p == nil || victim == nil || target == playerID {
		return nil, engine.ErrInvalidTarget
	}
	taken, events := engine.LoseResources(s, target, randomUnits(rng, 1))
	if events != nil {
		return events, nil
	}
	p.Resources.Add(taken)
	return []engine.Event{
		{Type: engine.EventStolen, Player: playerID, Data: map[string]any{
			"card": c.ID(), "from": target, "taken": taken,
		}},
	}, nil
}
