package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// MerchantsCharter: the next bank trade of any resource goes at 2:1.
type MerchantsCharter struct{ untargeted }

func (MerchantsCharter) ID() string       { return "merchants_charter" }
func (MerchantsCharter) Name() string     { return "Merchant's Charter" }
func (MerchantsCharter) Beneficial() bool { return true }

func (c MerchantsCharter) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return grant(s, playerID, c.ID(), engine.TradeRateOverride{Rate: 2, OneTime: true}, 0, 0)
}
