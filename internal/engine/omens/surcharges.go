package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// surchargeTurns is how long a cost or trade penalty lasts, counted in the
// drawer's turn starts.
const surchargeTurns = 2

// Mudslide: roads cost an extra brick.
type Mudslide struct{ untargeted }

func (Mudslide) ID() string       { return "mudslide" }
func (Mudslide) Name() string     { return "Mudslide" }
func (Mudslide) Beneficial() bool { return false }

func (c Mudslide) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	eff := engine.CostDelta{Piece: engine.PieceRoad, Delta: engine.ResourceSet{board.Brick: 1}}
	return grant(s, playerID, c.ID(), eff, surchargeTurns, 0)
}

// Inflation: settlements cost an extra wheat.
type Inflation struct{ untargeted }

func (Inflation) ID() string       { return "inflation" }
func (Inflation) Name() string     { return "Inflation" }
func (Inflation) Beneficial() bool { return false }

func (c Inflation) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	eff := engine.CostDelta{Piece: engine.PieceSettlement, Delta: engine.ResourceSet{board.Wheat: 1}}
	return grant(s, playerID, c.ID(), eff, surchargeTurns, 0)
}

// LaborStrike: cities cost an extra wheat.
type LaborStrike struct{ untargeted }

func (LaborStrike) ID() string       { return "labor_strike" }
func (LaborStrike) Name() string     { return "Labor Strike" }
func (LaborStrike) Beneficial() bool { return false }

func (c LaborStrike) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	eff := engine.CostDelta{Piece: engine.PieceCity, Delta: engine.ResourceSet{board.Wheat: 1}}
	return grant(s, playerID, c.ID(), eff, surchargeTurns, 0)
}

// Embargo: every bank trade costs five.
type Embargo struct{ untargeted }

func (Embargo) ID() string       { return "embargo" }
func (Embargo) Name() string     { return "Embargo" }
func (Embargo) Beneficial() bool { return false }

func (c Embargo) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.TradeRateOverride{Rate: 5}, surchargeTurns, 0)
}
