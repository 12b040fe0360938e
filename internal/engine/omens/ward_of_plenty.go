package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// WardOfPlenty cancels the next resource loss.
type WardOfPlenty struct{ untargeted }

func (WardOfPlenty) ID() string       { return "ward_of_plenty" }
func (WardOfPlenty) Name() string     { return "Ward of Plenty" }
func (WardOfPlenty) Beneficial() bool { return true }

func (c WardOfPlenty) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.NegateNextLoss{}, 0, 0)
}
