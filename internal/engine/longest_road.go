package engine

import "fmt"

// LongestRoad returns the length of player's longest edge-simple road: a
// walk that never reuses a road but may pass through a vertex more than
// once.
//
// The search runs per connected component with an explicit stack. Every
// vertex has at most three incident edges, so each step branches at most
// twice; with the 15-road supply that bounds a single start at 2^15 partial
// paths.
func LongestRoad(s *State, player string) int {
	// Local dense index for the player's roads, so a path fits in a bitmask.
	var roads []Edge
	for _, id := range s.EdgeIDs() {
		if e := s.Edges[id]; e.Road == player {
			roads = append(roads, e)
		}
	}
	if len(roads) == 0 {
		return 0
	}
	if len(roads) > 64 {
		panic(fmt.Sprintf("longest road: %d roads exceed the path mask", len(roads)))
	}
	atVertex := make(map[int][]int)
	for i, e := range roads {
		atVertex[e.Vertices[0]] = append(atVertex[e.Vertices[0]], i)
		atVertex[e.Vertices[1]] = append(atVertex[e.Vertices[1]], i)
	}

	best := 0
	for _, component := range roadComponents(roads, atVertex) {
		for _, start := range component {
			e := roads[start]
			for _, from := range e.Vertices {
				best = max(best, longestFrom(roads, atVertex, start, e.Other(from)))
			}
		}
	}
	return best
}

type pathStep struct {
	at   int
	used uint64
	n    int
}

func longestFrom(roads []Edge, atVertex map[int][]int, start, at int) int {
	best := 0
	stack := []pathStep{{at: at, used: 1 << start, n: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		best = max(best, top.n)
		for _, i := range atVertex[top.at] {
			if top.used&(1<<i) != 0 {
				continue
			}
			stack = append(stack, pathStep{
				at:   roads[i].Other(top.at),
				used: top.used | 1<<i,
				n:    top.n + 1,
			})
		}
	}
	return best
}

// roadComponents groups road indices into connected components.
func roadComponents(roads []Edge, atVertex map[int][]int) [][]int {
	seen := make([]bool, len(roads))
	var out [][]int
	for i := range roads {
		if seen[i] {
			continue
		}
		var comp []int
		queue := []int{i}
		seen[i] = true
		for len(queue) > 0 {
			r := queue[0]
			queue = queue[1:]
			comp = append(comp, r)
			for _, v := range roads[r].Vertices {
				for _, n := range atVertex[v] {
					if !seen[n] {
						seen[n] = true
						queue = append(queue, n)
					}
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// UpdateLongestRoad recomputes every player's longest road and moves the
// bonus when it changes hands. The holder keeps it on a tie; it passes only
// when someone strictly exceeds the holder's length and reaches
// Config.LongestRoadMin. Among several players sharing a new best length,
// the earliest seat wins.
func UpdateLongestRoad(s *State) *State {
	next := s.Clone()
	next.updateLongestRoad()
	return next
}

func (s *State) updateLongestRoad() []Event {
	lengths := make([]int, len(s.Players))
	bestSeat, bestLen := -1, 0
	for i, p := range s.Players {
		lengths[i] = LongestRoad(s, p.ID)
		if lengths[i] > bestLen {
			bestSeat, bestLen = i, lengths[i]
		}
	}

	holder := s.PlayerIndex(s.LongestRoadHolder)
	newHolder := holder
	switch {
	case holder >= 0 && lengths[holder] < s.Config.LongestRoadMin:
		newHolder = -1
		if bestLen >= s.Config.LongestRoadMin {
			newHolder = bestSeat
		}
	case holder >= 0:
		if bestLen > lengths[holder] {
			newHolder = bestSeat
		}
	case bestLen >= s.Config.LongestRoadMin:
		newHolder = bestSeat
	}
	if newHolder == holder {
		return nil
	}

	data := map[string]any{}
	if holder >= 0 {
		old := &s.Players[holder]
		old.VictoryPoints = max(old.VictoryPoints-s.Config.LongestRoadBonus, 0)
		data["from"] = old.ID
	}
	s.LongestRoadHolder = ""
	if newHolder >= 0 {
		p := &s.Players[newHolder]
		p.VictoryPoints += s.Config.LongestRoadBonus
		s.LongestRoadHolder = p.ID
		data["length"] = lengths[newHolder]
	}
	return []Event{{Type: EventLongestRoad, Player: s.LongestRoadHolder, Data: data}}
}
