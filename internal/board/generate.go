package board

import (
	"fmt"
	"math/rand/v2"
)

// GenConfig holds board generation parameters.
type GenConfig struct {
	Radius   int       // land radius; 2 gives the 19-hex board
	Terrains []Terrain // one entry per land hex, shuffled
	Numbers  []int     // one entry per non-desert hex, shuffled
	Harbors  bool      // place harbors on the coast
}

// DefaultGenConfig returns the standard 19-hex board configuration.
func DefaultGenConfig() GenConfig {
	var terrains []Terrain
	add := func(n int, t Terrain) {
		for range n {
			terrains = append(terrains, t)
		}
	}
	add(4, Wood)
	add(4, Sheep)
	add(4, Wheat)
	add(3, Brick)
	add(3, Ore)
	add(1, Desert)

	return GenConfig{
		Radius:   2,
		Terrains: terrains,
		Numbers:  []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12},
		Harbors:  true,
	}
}

// Board is a generated board: land hexes, their graph and harbors.
type Board struct {
	Hexes    []Hex    `json:"hexes"`
	Water    []Coord  `json:"water"`
	Topology Topology `json:"topology"`
	Harbors  []Harbor `json:"harbors"`
}

// Desert returns the id of the first desert hex, or "" if there is none.
func (b Board) Desert() HexID {
	for _, h := range b.Hexes {
		if h.Terrain == Desert {
			return h.ID
		}
	}
	return ""
}

// Generate shuffles terrains and numbers onto a hex disc and derives its
// topology and harbors.
func Generate(cfg GenConfig, rng *rand.Rand) (Board, error) {
	coords := Disc(cfg.Radius)
	if len(cfg.Terrains) != len(coords) {
		return Board{}, fmt.Errorf("%w: %d terrains for %d hexes", ErrMalformedBoard, len(cfg.Terrains), len(coords))
	}

	terrains := append([]Terrain(nil), cfg.Terrains...)
	rng.Shuffle(len(terrains), func(i, j int) { terrains[i], terrains[j] = terrains[j], terrains[i] })
	numbers := append([]int(nil), cfg.Numbers...)
	rng.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })

	hexes := make([]Hex, len(coords))
	next := 0
	for i, c := range coords {
		n := 0
		if terrains[i].IsResource() {
			if next >= len(numbers) {
				return Board{}, fmt.Errorf("%w: not enough production numbers", ErrMalformedBoard)
			}
			n = numbers[next]
			next++
		}
		hexes[i] = NewHex(c, terrains[i], n)
	}
	return Assemble(hexes, Ring(cfg.Radius+1), cfg.Harbors, rng)
}

// Assemble builds a board from fixed hexes, for scenario setups and tests.
func Assemble(hexes []Hex, water []Coord, harbors bool, rng *rand.Rand) (Board, error) {
	topo, err := BuildTopology(hexes)
	if err != nil {
		return Board{}, err
	}
	b := Board{Hexes: hexes, Water: water, Topology: topo}
	if harbors {
		b.Harbors = PlaceHarbors(hexes, topo, water, rng)
	}
	return b, nil
}
