package engine

// CanPlaceSettlement reports whether a settlement may go on vertex v. The
// vertex must be empty and no structure of any player may stand within
// Config.SettlementSpacing edge hops. In main play the placing player must
// also own a road ending at v; player may be "" to check the distance rule
// alone.
func CanPlaceSettlement(s *State, v int, player string) bool {
	vert, ok := s.Vertices[v]
	if !ok || vert.Structure != nil {
		return false
	}
	adj := s.incidentEdges()
	if s.structureWithin(adj, v, s.Config.SettlementSpacing) {
		return false
	}
	if s.Phase != PhasePlaying || player == "" || s.waived(player, PieceSettlement) {
		return true
	}
	for _, id := range adj[v] {
		if s.Edges[id].Road == player {
			return true
		}
	}
	return false
}

// structureWithin reports whether any vertex within hops of v, other than
// v itself, holds a structure.
func (s *State) structureWithin(adj map[int][]int, v, hops int) bool {
	seen := map[int]bool{v: true}
	frontier := []int{v}
	for range hops {
		var next []int
		for _, at := range frontier {
			for _, id := range adj[at] {
				n := s.Edges[id].Other(at)
				if seen[n] {
					continue
				}
				seen[n] = true
				if s.Vertices[n].Structure != nil {
					return true
				}
				next = append(next, n)
			}
		}
		frontier = next
	}
	return false
}

// CanPlaceRoad reports whether player may put a road on edge e. In setup
// the edge must touch the settlement just placed; in main play it must touch
// one of the player's structures or roads.
func CanPlaceRoad(s *State, e int, player string) bool {
	edge, ok := s.Edges[e]
	if !ok || edge.Road != "" || s.PlayerIndex(player) < 0 {
		return false
	}
	switch s.Phase {
	case PhaseSetup:
		if s.SetupVertex != nil {
			return edge.Touches(*s.SetupVertex)
		}
		for _, v := range edge.Vertices {
			if st := s.Vertices[v].Structure; st != nil && st.Owner == player {
				return true
			}
		}
		return false
	case PhasePlaying:
		if s.waived(player, PieceRoad) {
			return true
		}
		adj := s.incidentEdges()
		for _, v := range edge.Vertices {
			if st := s.Vertices[v].Structure; st != nil && st.Owner == player {
				return true
			}
			for _, id := range adj[v] {
				if id != e && s.Edges[id].Road == player {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

// PlaceableVertices returns every vertex where player could place a
// settlement now, ascending.
func PlaceableVertices(s *State, player string) []int {
	var out []int
	for _, id := range s.VertexIDs() {
		if CanPlaceSettlement(s, id, player) {
			out = append(out, id)
		}
	}
	return out
}

// PlaceableRoads returns every edge where player could place a road now,
// ascending.
func PlaceableRoads(s *State, player string) []int {
	var out []int
	for _, id := range s.EdgeIDs() {
		if CanPlaceRoad(s, id, player) {
			out = append(out, id)
		}
	}
	return out
}

// UpgradeableVertices returns the player's settlements, which are the
// vertices a city may go on.
func UpgradeableVertices(s *State, player string) []int {
	var out []int
	for _, id := range s.VertexIDs() {
		if st := s.Vertices[id].Structure; st != nil && st.Owner == player && st.Kind == Settlement {
			out = append(out, id)
		}
	}
	return out
}
