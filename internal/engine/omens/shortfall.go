package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// Murrain: one sheep less per producing structure for two rolls.
type Murrain struct{ untargeted }

func (Murrain) ID() string       { return "murrain" }
func (Murrain) Name() string     { return "Murrain" }
func (Murrain) Beneficial() bool { return false }

func (c Murrain) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.ProductionDelta{Terrain: board.Sheep, Delta: -1}, 0, harvestRolls)
}

// Wildfire: one wood less per producing structure for two rolls.
type Wildfire struct{ untargeted }

func (Wildfire) ID() string       { return "wildfire" }
func (Wildfire) Name() string     { return "Wildfire" }
func (Wildfire) Beneficial() bool { return false }

func (c Wildfire) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.ProductionDelta{Terrain: board.Wood, Delta: -1}, 0, harvestRolls)
}
