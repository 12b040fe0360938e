package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// GuildPricing: settlements cost 1 wood, 1 brick and 1 wheat until the start
// of the player's second turn from now.
type GuildPricing struct{ untargeted }

func (GuildPricing) ID() string       { return "guild_pricing" }
func (GuildPricing) Name() string     { return "Guild Pricing" }
func (GuildPricing) Beneficial() bool { return true }

func (c GuildPricing) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	eff := engine.CostOverride{
		Piece: engine.PieceSettlement,
		Cost:  engine.ResourceSet{board.Wood: 1, board.Brick: 1, board.Wheat: 1},
	}
	return grant(s, playerID, c.ID(), eff, 2, 0)
}
