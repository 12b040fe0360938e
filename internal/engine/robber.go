package engine

import (
	"math/rand/v2"

	"hexhaven/internal/board"
)

// StealResource moves one resource unit, chosen uniformly among all units
// target holds, from target to robber. ok is false when target has nothing
// to take or either player is unknown.
func StealResource(s *State, rng *rand.Rand, robber, target string) (*State, board.Terrain, bool) {
	next := s.Clone()
	t, ok := next.steal(rng, robber, target)
	if !ok {
		return s, "", false
	}
	return next, t, true
}

func (s *State) steal(rng *rand.Rand, robber, target string) (board.Terrain, bool) {
	from, to := s.GetPlayer(target), s.GetPlayer(robber)
	if from == nil || to == nil || from.ID == to.ID {
		return "", false
	}
	units := from.resourceUnits()
	if len(units) == 0 {
		return "", false
	}
	t := units[rng.IntN(len(units))]
	from.Resources[t]--
	to.Resources[t]++
	return t, true
}

// RobberTargets returns, in seat order, the players other than robber that
// own a structure on hex.
func RobberTargets(s *State, hex board.HexID, robber string) []string {
	owners := map[string]bool{}
	for _, v := range s.hexVertices(hex) {
		if st := s.Vertices[v].Structure; st != nil && st.Owner != robber {
			owners[st.Owner] = true
		}
	}
	var out []string
	for _, p := range s.Players {
		if owners[p.ID] {
			out = append(out, p.ID)
		}
	}
	return out
}
