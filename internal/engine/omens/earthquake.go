package omens

import (
	"math/rand/v2"

	"hexhaven/internal/engine"
)

// Earthquake reduces one of the drawer's cities, chosen at random, to a
// settlement. Nothing happens without a city or a spare settlement piece.
type Earthquake struct{ untargeted }

func (Earthquake) ID() string       { return "earthquake" }
func (Earthquake) Name() string     { return "Earthquake" }
func (Earthquake) Beneficial() bool { return false }

func (c Earthquake) Apply(s *engine.State, playerID, target string, rng *rand.Rand) ([]engine.Event, error) {
	p := s.GetPlayer(playerID)
	if p == nil {
		return nil, engine.ErrPlayerNotFound
	}
	var cities []int
	for _, id := range s.VertexIDs() {
		if st := s.Vertices[id].Structure; st != nil && st.Owner == playerID && st.Kind == engine.City {
			cities = append(cities, id)
		}
	}
	if len(cities) == 0 || p.Settlements == 0 {
		return nil, nil
	}
	id := cities[rng.IntN(len(cities))]
	v := s.Vertices[id]
	v.Structure = &engine.Structure{Owner: playerID, Kind: engine.Settlement}
	s.Vertices[id] = v
	p.Cities++
	p.Settlements--
	p.VictoryPoints--
	return []engine.Event{
		{Type: engine.EventOmenEffect, Player: playerID, Data: map[string]any{
			"card": c.ID(), "vertex": id, "victory_points": -1,
		}},
	}, nil
}
