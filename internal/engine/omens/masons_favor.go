package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// MasonsFavor: the next city costs one ore less.
type MasonsFavor struct{ untargeted }

func (MasonsFavor) ID() string       { return "masons_favor" }
func (MasonsFavor) Name() string     { return "Mason's Favor" }
func (MasonsFavor) Beneficial() bool { return true }

func (c MasonsFavor) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	eff := engine.CostDelta{
		Piece:   engine.PieceCity,
		Delta:   engine.ResourceSet{board.Ore: -1},
		OneTime: true,
	}
	return grant(s, playerID, c.ID(), eff, 0, 0)
}
