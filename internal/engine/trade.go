package engine

import "hexhaven/internal/board"

const bankRate = 4

// TradeRate returns how many units of give player must hand the bank for
// one unit of anything else: 2 through a matching 2:1 harbor, else 3
// through a generic harbor, else 4. Harbors never stack; trade-rate effects
// adjust the result.
func TradeRate(s *State, player string, give board.Terrain) int {
	rate, _ := s.tradeOverride(player, give, harborRate(s, player, give))
	return rate
}

func harborRate(s *State, player string, give board.Terrain) int {
	rate := bankRate
	for _, h := range s.Harbors {
		if !ownsOneOf(s, player, h.Vertices) {
			continue
		}
		switch h.Type {
		case board.HarborType(give):
			return 2
		case board.Generic:
			rate = 3
		}
	}
	return rate
}

func ownsOneOf(s *State, player string, vertices [2]int) bool {
	for _, v := range vertices {
		if st := s.Vertices[v].Structure; st != nil && st.Owner == player {
			return true
		}
	}
	return false
}

// TradeRates returns the player's current rate for every resource.
func TradeRates(s *State, player string) map[board.Terrain]int {
	out := make(map[board.Terrain]int)
	for _, t := range board.Resources() {
		out[t] = TradeRate(s, player, t)
	}
	return out
}
