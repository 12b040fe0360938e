package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// CaveIn: the drawer's mountains produce nothing for two rolls.
type CaveIn struct{ untargeted }

func (CaveIn) ID() string       { return "cave_in" }
func (CaveIn) Name() string     { return "Cave-in" }
func (CaveIn) Beneficial() bool { return false }

func (c CaveIn) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.ProductionHalt{Terrain: board.Ore}, 0, harvestRolls)
}
