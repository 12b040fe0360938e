package board

import (
	"math"
	"math/rand/v2"
	"sort"
)

// HarborType is the trade offered by a harbor: a resource terrain for a 2:1
// harbor, or Generic for 3:1.
type HarborType string

// Generic is the 3:1 any-resource harbor type.
const Generic HarborType = "generic"

// MinHarborSpacing is the minimum distance, in hex-size units, between the
// midpoints of two harbors placed in the sector pass.
const MinHarborSpacing = 2.5

// Harbor is a coastal edge offering an improved trade rate to the owners of
// structures on its two vertices.
type Harbor struct {
	ID       int        `json:"id"`
	EdgeID   int        `json:"edge_id"`
	Vertices [2]int     `json:"vertices"`
	Type     HarborType `json:"type"`
}

// Rate returns the trade rate this harbor grants.
func (h Harbor) Rate() int {
	if h.Type == Generic {
		return 3
	}
	return 2
}

// HarborTypes returns the standard nine harbor types: four generic and one
// per resource.
func HarborTypes() []HarborType {
	types := []HarborType{Generic, Generic, Generic, Generic}
	for _, r := range Resources() {
		types = append(types, HarborType(r))
	}
	return types
}

type candidate struct {
	edge  Edge
	mid   Point
	angle float64
}

// PlaceHarbors picks coastal edges for the standard harbor types. water
// lists the off-board hexes surrounding the land. Fewer harbors than types
// are returned when the coast has too few disjoint slots.
func PlaceHarbors(land []Hex, topo Topology, water []Coord, rng *rand.Rand) []Harbor {
	types := HarborTypes()
	rng.Shuffle(len(types), func(i, j int) { types[i], types[j] = types[j], types[i] })

	wet := make(map[pointKey]bool)
	for _, c := range water {
		for _, p := range Corners(c) {
			wet[keyOf(p)] = true
		}
	}
	coastal := func(id int) bool {
		v := topo.Vertices[id]
		return len(v.Hexes) >= 1 && len(v.Hexes) <= 2 && wet[keyOf(Point{X: v.X, Y: v.Y})]
	}

	var center Point
	for _, h := range land {
		c := Center(h.Coord())
		center.X += c.X
		center.Y += c.Y
	}
	if len(land) > 0 {
		center.X /= float64(len(land))
		center.Y /= float64(len(land))
	}

	var cands []candidate
	for _, e := range topo.Edges {
		if !coastal(e.Vertices[0]) || !coastal(e.Vertices[1]) {
			continue
		}
		mid := topo.Midpoint(e)
		cands = append(cands, candidate{edge: e, mid: mid, angle: angleAround(center, mid)})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].angle < cands[j].angle })

	usedVertex := make(map[int]bool)
	usedEdge := make(map[int]bool)
	var placed []candidate
	var harbors []Harbor
	free := func(c candidate) bool {
		return !usedEdge[c.edge.ID] && !usedVertex[c.edge.Vertices[0]] && !usedVertex[c.edge.Vertices[1]]
	}
	spaced := func(c candidate) bool {
		for _, p := range placed {
			if math.Hypot(p.mid.X-c.mid.X, p.mid.Y-c.mid.Y) < MinHarborSpacing {
				return false
			}
		}
		return true
	}
	place := func(c candidate, t HarborType) {
		usedEdge[c.edge.ID] = true
		usedVertex[c.edge.Vertices[0]] = true
		usedVertex[c.edge.Vertices[1]] = true
		placed = append(placed, c)
		harbors = append(harbors, Harbor{
			ID:       len(harbors),
			EdgeID:   c.edge.ID,
			Vertices: c.edge.Vertices,
			Type:     t,
		})
	}

	sector := 2 * math.Pi / float64(len(types))
	var leftover []HarborType
	for i, t := range types {
		target := float64(i) * sector
		best := -1
		bestDist := math.Inf(1)
		for ci, c := range cands {
			if !free(c) || !spaced(c) {
				continue
			}
			if d := angularDistance(c.angle, target); d < bestDist {
				best, bestDist = ci, d
			}
		}
		if best < 0 {
			leftover = append(leftover, t)
			continue
		}
		place(cands[best], t)
	}

	for _, t := range leftover {
		for _, c := range cands {
			if free(c) {
				place(c, t)
				break
			}
		}
	}
	return harbors
}

func angleAround(center, p Point) float64 {
	a := math.Atan2(p.Y-center.Y, p.X-center.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func angularDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
