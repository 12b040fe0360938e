package engine

import "hexhaven/internal/board"

// DistributeResources pays out a dice roll: every resource hex numbered
// diceSum, except the one under the robber, gives each adjacent settlement
// 1 and each adjacent city 2 units of its terrain, adjusted by the owner's
// production effects. It returns the new state and, per player, the
// distinct terrains gained in the order they were first paid.
func DistributeResources(s *State, diceSum int) (*State, map[string][]board.Terrain) {
	next := s.Clone()
	gains := next.distribute(diceSum)
	return next, gains
}

func (s *State) distribute(diceSum int) map[string][]board.Terrain {
	gains := map[string][]board.Terrain{}
	for _, h := range s.Hexes {
		if !h.Terrain.IsResource() || h.Number != diceSum || h.ID == s.Robber {
			continue
		}
		for _, v := range s.hexVertices(h.ID) {
			st := s.Vertices[v].Structure
			if st == nil {
				continue
			}
			p := s.GetPlayer(st.Owner)
			if p == nil {
				continue
			}
			base := 1
			if st.Kind == City {
				base = 2
			}
			n := s.productionFor(st.Owner, h, base)
			if n == 0 {
				continue
			}
			p.Resources[h.Terrain] += n
			gains[st.Owner] = appendTerrain(gains[st.Owner], h.Terrain)
		}
	}
	return gains
}

// grantStarting gives player one unit per resource hex touching v, for the
// second setup settlement.
func (s *State) grantStarting(player string, v int) ResourceSet {
	p := s.GetPlayer(player)
	granted := ResourceSet{}
	for _, id := range s.Vertices[v].Hexes {
		h, ok := s.Hex(id)
		if !ok || !h.Terrain.IsResource() {
			continue
		}
		granted[h.Terrain]++
	}
	if p != nil {
		p.Resources.Add(granted)
	}
	return granted
}

func appendTerrain(ts []board.Terrain, t board.Terrain) []board.Terrain {
	for _, x := range ts {
		if x == t {
			return ts
		}
	}
	return append(ts, t)
}
