package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// Highwaymen: nothing reaches the drawer on the next roll.
type Highwaymen struct{ untargeted }

func (Highwaymen) ID() string       { return "highwaymen" }
func (Highwaymen) Name() string     { return "Highwaymen" }
func (Highwaymen) Beneficial() bool { return false }

func (c Highwaymen) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.ProductionHalt{}, 0, 1)
}
