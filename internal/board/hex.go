// Package board builds the hex board: terrain tiles, the shared
// vertex/edge graph and the harbors around its coast.
package board

import "fmt"

// Terrain is the land type of a hex. The five producing terrains double as
// the resource kinds held by players.
type Terrain string

const (
	Wood   Terrain = "wood"
	Brick  Terrain = "brick"
	Sheep  Terrain = "sheep"
	Wheat  Terrain = "wheat"
	Ore    Terrain = "ore"
	Desert Terrain = "desert"
)

// Resources returns the five producing terrains in display order.
func Resources() []Terrain {
	return []Terrain{Wood, Brick, Sheep, Wheat, Ore}
}

// IsResource reports whether t produces a resource.
func (t Terrain) IsResource() bool {
	switch t {
	case Wood, Brick, Sheep, Wheat, Ore:
		return true
	}
	return false
}

// Coord is an axial hex coordinate.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Coord) int {
	return max(abs(a.Q-b.Q), abs(a.R-b.R), abs(a.S()-b.S()))
}

// Ring returns all coordinates at exactly radius from the origin.
func Ring(radius int) []Coord {
	var out []Coord
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := Coord{Q: q, R: r}
			if Distance(c, Coord{}) == radius {
				out = append(out, c)
			}
		}
	}
	return out
}

// Disc returns all coordinates within radius of the origin, row by row.
func Disc(radius int) []Coord {
	var out []Coord
	for r := -radius; r <= radius; r++ {
		for q := -radius; q <= radius; q++ {
			c := Coord{Q: q, R: r}
			if Distance(c, Coord{}) <= radius {
				out = append(out, c)
			}
		}
	}
	return out
}

// HexID identifies a hex, formatted "h<q>,<r>".
type HexID string

// IDFor returns the canonical id of the hex at c.
func IDFor(c Coord) HexID {
	return HexID(fmt.Sprintf("h%d,%d", c.Q, c.R))
}

// Hex is a single land tile. Number is the production number (2-12), or 0
// for the desert.
type Hex struct {
	ID      HexID   `json:"id"`
	Q       int     `json:"q"`
	R       int     `json:"r"`
	Terrain Terrain `json:"terrain"`
	Number  int     `json:"number,omitempty"`
}

// NewHex creates a hex at c with its canonical id.
func NewHex(c Coord, terrain Terrain, number int) Hex {
	return Hex{ID: IDFor(c), Q: c.Q, R: c.R, Terrain: terrain, Number: number}
}

// Coord returns the axial position of h.
func (h Hex) Coord() Coord {
	return Coord{Q: h.Q, R: h.R}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
