package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// SurveyorsStake: roads need no brick until the start of the player's
// second turn from now.
type SurveyorsStake struct{ untargeted }

func (SurveyorsStake) ID() string       { return "surveyors_stake" }
func (SurveyorsStake) Name() string     { return "Surveyor's Stake" }
func (SurveyorsStake) Beneficial() bool { return true }

func (c SurveyorsStake) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	eff := engine.CostDelta{Piece: engine.PieceRoad, Delta: engine.ResourceSet{board.Brick: -1}}
	return grant(s, playerID, c.ID(), eff, 2, 0)
}
