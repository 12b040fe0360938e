package omens

import (
	"math/rand/v2"
	"slices"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// BlessedHex: one chosen hex the player builds on yields one extra unit per
// structure for three rolls.
type BlessedHex struct{}

func (BlessedHex) ID() string        { return "blessed_hex" }
func (BlessedHex) Name() string      { return "Blessed Hex" }
func (BlessedHex) Beneficial() bool  { return true }
func (BlessedHex) NeedsTarget() bool { return true }

func (BlessedHex) ValidTargets(s *engine.State, playerID string) []string {
	var targets []string
	for _, h := range s.Hexes {
		if !h.Terrain.IsResource() {
			continue
		}
		for _, v := range s.Vertices {
			if v.Structure != nil && v.Structure.Owner == playerID && slices.Contains(v.Hexes, h.ID) {
				targets = append(targets, string(h.ID))
				break
			}
		}
	}
	return targets
}

func (c BlessedHex) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	if !slices.Contains(c.ValidTargets(s, playerID), target) {
		return nil, engine.ErrInvalidTarget
	}
	return grant(s, playerID, c.ID(), engine.ProductionDelta{Hex: board.HexID(target), Delta: 1}, 0, 3)
}
