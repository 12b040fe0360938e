package engine

import (
	"fmt"
	"strings"

	"hexhaven/internal/board"
)

// Piece is something a player can build.
type Piece string

const (
	PieceRoad       Piece = "road"
	PieceSettlement Piece = "settlement"
	PieceCity       Piece = "city"
)

// ResourceSet counts units per resource terrain. Missing keys count as zero.
type ResourceSet map[board.Terrain]int

// Clone returns an independent copy of r.
func (r ResourceSet) Clone() ResourceSet {
	out := make(ResourceSet, len(r))
	for t, n := range r {
		if n != 0 {
			out[t] = n
		}
	}
	return out
}

// Total returns the number of units in r.
func (r ResourceSet) Total() int {
	n := 0
	for _, v := range r {
		n += v
	}
	return n
}

// Add adds other into r and returns r.
func (r ResourceSet) Add(other ResourceSet) ResourceSet {
	for t, n := range other {
		r[t] += n
	}
	return r
}

// Sub removes other from r, clamping every count at zero, and returns r.
func (r ResourceSet) Sub(other ResourceSet) ResourceSet {
	for t, n := range other {
		r[t] = max(r[t]-n, 0)
	}
	return r
}

// Covers reports whether r holds at least cost of every resource.
func (r ResourceSet) Covers(cost ResourceSet) bool {
	for t, n := range cost {
		if r[t] < n {
			return false
		}
	}
	return true
}

// Units flattens r into one entry per unit, in resource order.
func (r ResourceSet) Units() []board.Terrain {
	var units []board.Terrain
	for _, t := range board.Resources() {
		for range r[t] {
			units = append(units, t)
		}
	}
	return units
}

// String renders r as "1 wood, 2 ore" in resource order.
func (r ResourceSet) String() string {
	var parts []string
	for _, t := range board.Resources() {
		if n := r[t]; n != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, t))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// BuildCost returns the base cost of a piece.
func BuildCost(p Piece) ResourceSet {
	switch p {
	case PieceRoad:
		return ResourceSet{board.Wood: 1, board.Brick: 1}
	case PieceSettlement:
		return ResourceSet{board.Wood: 1, board.Brick: 1, board.Sheep: 1, board.Wheat: 1}
	case PieceCity:
		return ResourceSet{board.Wheat: 2, board.Ore: 3}
	default:
		return ResourceSet{}
	}
}

// OmenDrawCost is the price of drawing one Omen card.
func OmenDrawCost() ResourceSet {
	return ResourceSet{board.Wheat: 1, board.Sheep: 1, board.Ore: 1}
}

// CanAfford reports whether have covers cost.
func CanAfford(have, cost ResourceSet) bool {
	return have.Covers(cost)
}

// MissingResources returns the per-resource shortfall of have against cost.
// The result is empty when cost is affordable.
func MissingResources(have, cost ResourceSet) ResourceSet {
	missing := ResourceSet{}
	for t, n := range cost {
		if d := n - have[t]; d > 0 {
			missing[t] = d
		}
	}
	return missing
}
