package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// Pathfinder: roads may be placed anywhere for the rest of this turn.
type Pathfinder struct{ untargeted }

func (Pathfinder) ID() string       { return "pathfinder" }
func (Pathfinder) Name() string     { return "Pathfinder" }
func (Pathfinder) Beneficial() bool { return true }

func (c Pathfinder) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.AdjacencyWaiver{Piece: engine.PieceRoad}, 1, 0)
}
