package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// HomesteadGrant: the next settlement costs nothing.
type HomesteadGrant struct{ untargeted }

func (HomesteadGrant) ID() string       { return "homestead_grant" }
func (HomesteadGrant) Name() string     { return "Homestead Grant" }
func (HomesteadGrant) Beneficial() bool { return true }

func (c HomesteadGrant) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.FreeBuild{Piece: engine.PieceSettlement, Credits: 1}, 0, 0)
}
