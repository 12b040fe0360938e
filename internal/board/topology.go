package board

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrMalformedBoard is returned when a hex list does not form a valid
// planar board.
var ErrMalformedBoard = errors.New("malformed board")

const (
	// CanonicalHexes is the hex count of the standard board.
	CanonicalHexes = 19
	// CanonicalVertices is the vertex count of the standard board.
	CanonicalVertices = 54
	// CanonicalEdges is the edge count of the standard board.
	CanonicalEdges = 72

	keyPrecision = 1000.0
)

// Point is a planar position in hex-size units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center returns the pixel position of an axial coordinate on a pointy-top
// grid with unit hex size.
func Center(c Coord) Point {
	return Point{
		X: math.Sqrt(3) * (float64(c.Q) + float64(c.R)/2),
		Y: 1.5 * float64(c.R),
	}
}

// Corners returns the six corner points of the hex at c, clockwise (screen
// coordinates) starting from the upper-right corner.
func Corners(c Coord) [6]Point {
	center := Center(c)
	var out [6]Point
	for i := range 6 {
		angle := math.Pi / 180 * float64(60*i-30)
		out[i] = Point{
			X: center.X + math.Cos(angle),
			Y: center.Y + math.Sin(angle),
		}
	}
	return out
}

type pointKey struct{ x, y int64 }

func keyOf(p Point) pointKey {
	return pointKey{
		x: int64(math.Round(p.X * keyPrecision)),
		y: int64(math.Round(p.Y * keyPrecision)),
	}
}

// Vertex is a hex corner shared by one to three hexes.
type Vertex struct {
	ID    int     `json:"id"`
	Hexes []HexID `json:"hexes"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Edge joins two vertices and borders one or two hexes.
type Edge struct {
	ID       int     `json:"id"`
	Vertices [2]int  `json:"vertices"`
	Hexes    []HexID `json:"hexes"`
}

// Topology is the vertex/edge graph derived from a hex list. Vertex and
// edge ids equal their slice index.
type Topology struct {
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

type rawVertex struct {
	point Point
	hexes []HexID
}

// BuildTopology merges coincident hex corners into shared vertices and
// coincident sides into shared edges.
func BuildTopology(hexes []Hex) (Topology, error) {
	byKey := make(map[pointKey]int)
	var raw []rawVertex
	corners := make([][6]int, len(hexes))

	for hi, h := range hexes {
		for ci, p := range Corners(h.Coord()) {
			k := keyOf(p)
			idx, ok := byKey[k]
			if !ok {
				idx = len(raw)
				byKey[k] = idx
				raw = append(raw, rawVertex{point: p})
			}
			raw[idx].hexes = appendUnique(raw[idx].hexes, h.ID)
			corners[hi][ci] = idx
		}
	}

	// Stable ordering: top to bottom, then left to right.
	order := make([]int, len(raw))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keyOf(raw[order[a]].point), keyOf(raw[order[b]].point)
		if ka.y != kb.y {
			return ka.y < kb.y
		}
		return ka.x < kb.x
	})
	remap := make([]int, len(raw))
	topo := Topology{Vertices: make([]Vertex, len(raw))}
	for newID, oldID := range order {
		remap[oldID] = newID
		rv := raw[oldID]
		topo.Vertices[newID] = Vertex{
			ID:    newID,
			Hexes: rv.hexes,
			X:     round(rv.point.X),
			Y:     round(rv.point.Y),
		}
	}

	type pair struct{ a, b int }
	edgeHexes := make(map[pair][]HexID)
	var pairs []pair
	for hi, h := range hexes {
		for ci := range 6 {
			a, b := remap[corners[hi][ci]], remap[corners[hi][(ci+1)%6]]
			if a > b {
				a, b = b, a
			}
			p := pair{a, b}
			if _, ok := edgeHexes[p]; !ok {
				pairs = append(pairs, p)
			}
			edgeHexes[p] = appendUnique(edgeHexes[p], h.ID)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	topo.Edges = make([]Edge, len(pairs))
	for id, p := range pairs {
		topo.Edges[id] = Edge{ID: id, Vertices: [2]int{p.a, p.b}, Hexes: edgeHexes[p]}
	}

	if err := topo.validate(len(hexes)); err != nil {
		return Topology{}, err
	}
	return topo, nil
}

func (t Topology) validate(hexCount int) error {
	for _, v := range t.Vertices {
		if len(v.Hexes) < 1 || len(v.Hexes) > 3 {
			return fmt.Errorf("%w: vertex %d touches %d hexes", ErrMalformedBoard, v.ID, len(v.Hexes))
		}
	}
	for _, e := range t.Edges {
		if len(e.Hexes) < 1 || len(e.Hexes) > 2 {
			return fmt.Errorf("%w: edge %d borders %d hexes", ErrMalformedBoard, e.ID, len(e.Hexes))
		}
	}
	if hexCount == CanonicalHexes {
		if len(t.Vertices) != CanonicalVertices || len(t.Edges) != CanonicalEdges {
			return fmt.Errorf("%w: %d hexes gave %d vertices and %d edges, want %d and %d",
				ErrMalformedBoard, hexCount, len(t.Vertices), len(t.Edges),
				CanonicalVertices, CanonicalEdges)
		}
	}
	return nil
}

// Midpoint returns the planar midpoint of edge e.
func (t Topology) Midpoint(e Edge) Point {
	a, b := t.Vertices[e.Vertices[0]], t.Vertices[e.Vertices[1]]
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func appendUnique(ids []HexID, id HexID) []HexID {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}

func round(f float64) float64 {
	return math.Round(f*keyPrecision) / keyPrecision
}
