package engine

import (
	"fmt"
	"sort"

	"hexhaven/internal/board"
)

// StructureKind is the building standing on a vertex.
type StructureKind string

const (
	Settlement StructureKind = "settlement"
	City       StructureKind = "city"
)

// Structure is a settlement or city owned by a player.
type Structure struct {
	Owner string        `json:"owner"`
	Kind  StructureKind `json:"kind"`
}

// Vertex is a board corner that can hold a structure.
type Vertex struct {
	ID        int           `json:"id"`
	Hexes     []board.HexID `json:"hexes"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Structure *Structure    `json:"structure"`
}

// Edge is a board side that can hold a road. Road is the owner's id, or ""
// while empty.
type Edge struct {
	ID       int           `json:"id"`
	Vertices [2]int        `json:"vertices"`
	Hexes    []board.HexID `json:"hexes"`
	Road     string        `json:"road,omitempty"`
}

// Touches reports whether the edge ends at vertex v.
func (e Edge) Touches(v int) bool {
	return e.Vertices[0] == v || e.Vertices[1] == v
}

// Other returns the end of the edge opposite v.
func (e Edge) Other(v int) int {
	if e.Vertices[0] == v {
		return e.Vertices[1]
	}
	return e.Vertices[0]
}

// Roll is a pair of dice.
type Roll struct {
	Dice [2]int `json:"dice"`
	Sum  int    `json:"sum"`
}

// State is the complete, serialisable game state. Engine commands never
// modify a State they are given; they return a changed copy.
type State struct {
	Version int    `json:"version"`
	Config  Config `json:"config"`

	Hexes    []board.Hex    `json:"hexes"`
	Vertices map[int]Vertex `json:"vertices"`
	Edges    map[int]Edge   `json:"edges"`
	Harbors  []board.Harbor `json:"harbors"`
	Players  []Player       `json:"players"`

	Phase         GamePhase `json:"phase"`
	CurrentPlayer int       `json:"current_player"` // seat index into Players
	TurnOrder     []int     `json:"turn_order"`     // seat indices, fixed after roll_order

	// Turn-order roll: groups of seats still tied, best first.
	OrderGroups [][]int        `json:"order_groups,omitempty"`
	OrderRolls  map[string]int `json:"order_rolls"`

	// Setup: placement step 0..2N-1 and the settlement awaiting its road.
	SetupStep   int  `json:"setup_step"`
	SetupVertex *int `json:"setup_vertex"`

	LastRoll      *Roll       `json:"last_roll"`
	HasRolled     bool        `json:"has_rolled"`
	RobberPending bool        `json:"robber_pending"`
	Robber        board.HexID `json:"robber"`

	LongestRoadHolder string `json:"longest_road_holder,omitempty"`
	Winner            string `json:"winner,omitempty"`

	Omens *OmenState `json:"omens"`
}

// NewState lays out a fresh game on b. Seats are given in seat order; the
// robber starts on the desert.
func NewState(b board.Board, seats []Player, cfg Config) (*State, error) {
	if len(seats) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidAction, len(seats))
	}
	s := &State{
		Config:     cfg,
		Hexes:      append([]board.Hex(nil), b.Hexes...),
		Vertices:   make(map[int]Vertex, len(b.Topology.Vertices)),
		Edges:      make(map[int]Edge, len(b.Topology.Edges)),
		Harbors:    append([]board.Harbor(nil), b.Harbors...),
		Players:    make([]Player, len(seats)),
		Phase:      PhaseRollOrder,
		OrderRolls: map[string]int{},
		Robber:     b.Desert(),
	}
	for _, v := range b.Topology.Vertices {
		s.Vertices[v.ID] = Vertex{ID: v.ID, Hexes: v.Hexes, X: v.X, Y: v.Y}
	}
	for _, e := range b.Topology.Edges {
		s.Edges[e.ID] = Edge{ID: e.ID, Vertices: e.Vertices, Hexes: e.Hexes}
	}
	seen := map[string]bool{}
	everyone := make([]int, len(seats))
	for i, p := range seats {
		if p.ID == "" || seen[p.ID] {
			return nil, fmt.Errorf("%w: bad or duplicate player id %q", ErrInvalidAction, p.ID)
		}
		seen[p.ID] = true
		s.Players[i] = p.clone()
		everyone[i] = i
	}
	s.OrderGroups = [][]int{everyone}
	return s, nil
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := *s
	c.Hexes = append([]board.Hex(nil), s.Hexes...)
	c.Harbors = append([]board.Harbor(nil), s.Harbors...)
	c.Vertices = make(map[int]Vertex, len(s.Vertices))
	for id, v := range s.Vertices {
		if v.Structure != nil {
			st := *v.Structure
			v.Structure = &st
		}
		c.Vertices[id] = v
	}
	c.Edges = make(map[int]Edge, len(s.Edges))
	for id, e := range s.Edges {
		c.Edges[id] = e
	}
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.TurnOrder = append([]int(nil), s.TurnOrder...)
	if s.OrderGroups != nil {
		c.OrderGroups = make([][]int, len(s.OrderGroups))
		for i, g := range s.OrderGroups {
			c.OrderGroups[i] = append([]int(nil), g...)
		}
	}
	if s.OrderRolls != nil {
		c.OrderRolls = make(map[string]int, len(s.OrderRolls))
		for k, v := range s.OrderRolls {
			c.OrderRolls[k] = v
		}
	}
	if s.SetupVertex != nil {
		v := *s.SetupVertex
		c.SetupVertex = &v
	}
	if s.LastRoll != nil {
		r := *s.LastRoll
		c.LastRoll = &r
	}
	if s.Omens != nil {
		c.Omens = s.Omens.clone()
	}
	return &c
}

// PlayerIndex returns the seat of the player with the given id, or -1.
func (s *State) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// GetPlayer finds a player by ID.
func (s *State) GetPlayer(id string) *Player {
	if i := s.PlayerIndex(id); i >= 0 {
		return &s.Players[i]
	}
	return nil
}

// Current returns the player whose turn it is.
func (s *State) Current() *Player {
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= len(s.Players) {
		return nil
	}
	return &s.Players[s.CurrentPlayer]
}

// Hex returns the hex with the given id.
func (s *State) Hex(id board.HexID) (board.Hex, bool) {
	for _, h := range s.Hexes {
		if h.ID == id {
			return h, true
		}
	}
	return board.Hex{}, false
}

// VertexIDs returns all vertex ids in ascending order.
func (s *State) VertexIDs() []int {
	ids := make([]int, 0, len(s.Vertices))
	for id := range s.Vertices {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// EdgeIDs returns all edge ids in ascending order.
func (s *State) EdgeIDs() []int {
	ids := make([]int, 0, len(s.Edges))
	for id := range s.Edges {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// incidentEdges maps each vertex to the ids of the edges ending there.
func (s *State) incidentEdges() map[int][]int {
	adj := make(map[int][]int, len(s.Vertices))
	for _, id := range s.EdgeIDs() {
		e := s.Edges[id]
		adj[e.Vertices[0]] = append(adj[e.Vertices[0]], id)
		adj[e.Vertices[1]] = append(adj[e.Vertices[1]], id)
	}
	return adj
}

// hexVertices returns the ids of the vertices touching hex, ascending.
func (s *State) hexVertices(hex board.HexID) []int {
	var out []int
	for _, id := range s.VertexIDs() {
		for _, h := range s.Vertices[id].Hexes {
			if h == hex {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

func (s *State) setStructure(v int, st *Structure) {
	vert := s.Vertices[v]
	vert.Structure = st
	s.Vertices[v] = vert
}

func (s *State) setRoad(e int, owner string) {
	edge := s.Edges[e]
	edge.Road = owner
	s.Edges[e] = edge
}
