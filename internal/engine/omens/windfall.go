package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// Windfall: take two units of a resource of the player's choice.
type Windfall struct{}

func (Windfall) ID() string        { return "windfall" }
func (Windfall) Name() string      { return "Windfall" }
func (Windfall) Beneficial() bool  { return true }
func (Windfall) NeedsTarget() bool { return true }

func (Windfall) ValidTargets(s *engine.State, playerID string) []string {
	var targets []string
	for _, t := range board.Resources() {
		targets = append(targets, string(t))
	}
	return targets
}

func (c Windfall) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	t := board.Terrain(target)
	if !t.IsResource() {
		return nil, engine.ErrInvalidTarget
	}
	p := s.GetPlayer(playerID)
	if p == nil {
		return nil, engine.ErrPlayerNotFound
	}
	gained := engine.ResourceSet{t: 2}
	p.Resources.Add(gained)
	return []engine.Event{
		{Type: engine.EventOmenEffect, Player: playerID, Data: map[string]any{
			"card": c.ID(), "gained": gained,
		}},
	}, nil
}
