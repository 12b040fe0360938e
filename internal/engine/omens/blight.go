package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// Blight: the drawer's wheat fields produce nothing for two rolls.
type Blight struct{ untargeted }

func (Blight) ID() string       { return "blight" }
func (Blight) Name() string     { return "Blight" }
func (Blight) Beneficial() bool { return false }

func (c Blight) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.ProductionHalt{Terrain: board.Wheat}, 0, harvestRolls)
}
