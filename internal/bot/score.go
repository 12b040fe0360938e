package bot

import (
	"slices"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// pips is the number of two-dice combinations that roll n.
func pips(n int) int {
	if n < 2 || n > 12 || n == 7 {
		return 0
	}
	return 6 - abs(7-n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// vertexScore rates a vertex by the production of its hexes, with a bonus
// for each terrain not yet seen there.
func vertexScore(s *engine.State, v int) int {
	score := 0
	var seen []board.Terrain
	for _, id := range s.Vertices[v].Hexes {
		h, ok := s.Hex(id)
		if !ok || !h.Terrain.IsResource() || id == s.Robber {
			continue
		}
		score += pips(h.Number)
		if !slices.Contains(seen, h.Terrain) {
			seen = append(seen, h.Terrain)
			score++
		}
	}
	return score
}

// bestVertex returns the highest scoring candidate; ties go to the lowest id.
func bestVertex(s *engine.State, candidates []int) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	best, bestScore := candidates[0], -1
	for _, v := range candidates {
		if sc := vertexScore(s, v); sc > bestScore {
			best, bestScore = v, sc
		}
	}
	return best, true
}

// bestRoad prefers the road whose far end is the best open settlement spot.
func bestRoad(s *engine.State, candidates []int) int {
	best, bestScore := candidates[0], -1
	for _, id := range candidates {
		e := s.Edges[id]
		for _, v := range e.Vertices {
			if !engine.CanPlaceSettlement(s, v, "") {
				continue
			}
			if sc := vertexScore(s, v); sc > bestScore {
				best, bestScore = id, sc
			}
		}
	}
	return best
}

func owns(s *engine.State, hex board.HexID, playerID string) bool {
	for _, v := range s.Vertices {
		if v.Structure != nil && v.Structure.Owner == playerID && slices.Contains(v.Hexes, hex) {
			return true
		}
	}
	return false
}
