package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// BuildersBlessing: the next two roads cost nothing.
type BuildersBlessing struct{ untargeted }

func (BuildersBlessing) ID() string       { return "builders_blessing" }
func (BuildersBlessing) Name() string     { return "Builder's Blessing" }
func (BuildersBlessing) Beneficial() bool { return true }

func (c BuildersBlessing) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.FreeBuild{Piece: engine.PieceRoad, Credits: 2}, 0, 0)
}
