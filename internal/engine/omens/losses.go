package omens

import (
	"math/rand/v2"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// Termites eat all of the drawer's wood.
type Termites struct{ untargeted }

func (Termites) ID() string       { return "termites" }
func (Termites) Name() string     { return "Termites" }
func (Termites) Beneficial() bool { return false }

func (c Termites) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return lose(s, playerID, c.ID(), allOf(board.Wood)), nil
}

// Plague takes all of the drawer's sheep.
type Plague struct{ untargeted }

func (Plague) ID() string       { return "plague" }
func (Plague) Name() string     { return "Plague" }
func (Plague) Beneficial() bool { return false }

func (c Plague) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return lose(s, playerID, c.ID(), allOf(board.Sheep)), nil
}

// Flood washes away two random units.
type Flood struct{ untargeted }

func (Flood) ID() string       { return "flood" }
func (Flood) Name() string     { return "Flood" }
func (Flood) Beneficial() bool { return false }

func (c Flood) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	return lose(s, playerID, c.ID(), randomUnits(rng, 2)), nil
}

// TaxCollector takes half of the drawer's units, rounded down, at random.
type TaxCollector struct{ untargeted }

func (TaxCollector) ID() string       { return "tax_collector" }
func (TaxCollector) Name() string     { return "Tax Collector" }
func (TaxCollector) Beneficial() bool { return false }

func (c TaxCollector) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	half := func(have engine.ResourceSet) engine.ResourceSet {
		return randomUnits(rng, have.Total()/2)(have)
	}
	return lose(s, playerID, c.ID(), half), nil
}
