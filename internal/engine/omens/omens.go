// Package omens holds the Omen deck: one type per card.
package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// Register adds every Omen card to reg.
func Register(reg *engine.OmenRegistry) {
	// Beneficial: two copies each in the deck.
	reg.Register(BuildersBlessing{})
	reg.Register(HomesteadGrant{})
	reg.Register(MasonsFavor{})
	reg.Register(SurveyorsStake{})
	reg.Register(FertileFields{})
	reg.Register(RichVeins{})
	reg.Register(ShepherdsLuck{})
	reg.Register(BlessedHex{})
	reg.Register(MerchantsCharter{})
	reg.Register(WardOfPlenty{})
	reg.Register(Pathfinder{})
	reg.Register(Windfall{})
	reg.Register(Tithe{})
	reg.Register(HeraldsAcclaim{})
	reg.Register(GuildPricing{})

	// Detrimental: one copy each, resolved on draw.
	reg.Register(Blight{})
	reg.Register(Murrain{})
	reg.Register(CaveIn{})
	reg.Register(Termites{})
	reg.Register(Flood{})
	reg.Register(TaxCollector{})
	reg.Register(Mudslide{})
	reg.Register(Inflation{})
	reg.Register(LaborStrike{})
	reg.Register(Embargo{})
	reg.Register(Scandal{})
	reg.Register(Highwaymen{})
	reg.Register(Wildfire{})
	reg.Register(Earthquake{})
	reg.Register(Plague{})
}

// NewRegistry returns a registry holding the full deck.
func NewRegistry() *engine.OmenRegistry {
	reg := engine.NewOmenRegistry()
	Register(reg)
	return reg
}

// untargeted supplies the target methods for cards that take none.
type untargeted struct{}

func (untargeted) NeedsTarget() bool { return false }

func (untargeted) ValidTargets(s *engine.State, playerID string) []string { return nil }

// grant puts eff into play for playerID and reports it.
func grant(s *engine.State, playerID, card string, eff engine.Effect, turns, rolls int) ([]engine.Event, error) {
	if s.Omens == nil {
		return nil, engine.ErrOmensDisabled
	}
	id := s.Omens.AddEffect(playerID, card, eff, turns, rolls)
	return []engine.Event{
		{Type: engine.EventOmenEffect, Player: playerID, Data: map[string]any{
			"card": card, "effect": id, "kind": eff.Kind(), "turns": turns, "rolls": rolls,
		}},
	}, nil
}

// lose removes what pick selects from playerID, honouring a negate guard.
func lose(s *engine.State, playerID, card string, pick func(engine.ResourceSet) engine.ResourceSet) []engine.Event {
	lost, events := engine.LoseResources(s, playerID, pick)
	if events != nil {
		return events
	}
	return []engine.Event{
		{Type: engine.EventOmenEffect, Player: playerID, Data: map[string]any{
			"card": card, "lost": lost,
		}},
	}
}

// allOf picks every unit of t.
func allOf(t board.Terrain) func(engine.ResourceSet) engine.ResourceSet {
	return func(have engine.ResourceSet) engine.ResourceSet {
		return engine.ResourceSet{t: have[t]}
	}
}

// randomUnits picks n units uniformly without replacement.
func randomUnits(rng *rand.Rand, n int) func(engine.ResourceSet) engine.ResourceSet {
	return func(have engine.ResourceSet) engine.ResourceSet {
		units := have.Units()
		rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })
		picked := engine.ResourceSet{}
		for _, t := range units[:min(n, len(units))] {
			picked[t]++
		}
		return picked
	}
}

func otherPlayers(s *engine.State, playerID string) []string {
	var out []string
	for _, p := range s.Players {
		if p.ID != playerID {
			out = append(out, p.ID)
		}
	}
	return out
}
