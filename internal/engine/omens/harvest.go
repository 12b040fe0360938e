package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// harvestRolls is how many dice rolls a production boon lasts.
const harvestRolls = 2

// FertileFields: +1 wheat per producing structure for two rolls.
type FertileFields struct{ untargeted }

func (FertileFields) ID() string       { return "fertile_fields" }
func (FertileFields) Name() string     { return "Fertile Fields" }
func (FertileFields) Beneficial() bool { return true }

func (c FertileFields) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.ProductionDelta{Terrain: board.Wheat, Delta: 1}, 0, harvestRolls)
}

// RichVeins: +1 ore per producing structure for two rolls.
type RichVeins struct{ untargeted }

func (RichVeins) ID() string       { return "rich_veins" }
func (RichVeins) Name() string     { return "Rich Veins" }
func (RichVeins) Beneficial() bool { return true }

func (c RichVeins) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.ProductionDelta{Terrain: board.Ore, Delta: 1}, 0, harvestRolls)
}

// ShepherdsLuck: +1 sheep per producing structure for two rolls.
type ShepherdsLuck struct{ untargeted }

func (ShepherdsLuck) ID() string       { return "shepherds_luck" }
func (ShepherdsLuck) Name() string     { return "Shepherd's Luck" }
func (ShepherdsLuck) Beneficial() bool { return true }

func (c ShepherdsLuck) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.ProductionDelta{Terrain: board.Sheep, Delta: 1}, 0, harvestRolls)
}
