package engine

import "hexhaven/internal/board"

const (
	startSettlements = 5
	startCities      = 4
	startRoads       = 15
)

// Player holds one seat's state.
type Player struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Bot           bool        `json:"bot,omitempty"`
	Resources     ResourceSet `json:"resources"`
	Settlements   int         `json:"settlements"` // pieces left in supply
	Cities        int         `json:"cities"`
	Roads         int         `json:"roads"`
	VictoryPoints int         `json:"victory_points"`

	// Omens
	Hand       []string `json:"hand,omitempty"`
	DrewOmen   bool     `json:"drew_omen,omitempty"`   // drew a card this turn
	PlayedOmen bool     `json:"played_omen,omitempty"` // played a card this turn
}

func NewPlayer(id, name string) Player {
	return Player{
		ID:          id,
		Name:        name,
		Resources:   ResourceSet{},
		Settlements: startSettlements,
		Cities:      startCities,
		Roads:       startRoads,
	}
}

func (p Player) clone() Player {
	p.Resources = p.Resources.Clone()
	p.Hand = append([]string(nil), p.Hand...)
	return p
}

// HandHas returns true if the player holds the given card.
func (p *Player) HandHas(card string) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// RemoveFromHand removes the first copy of card from hand, returns true if found.
func (p *Player) RemoveFromHand(card string) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// resourceUnits flattens the player's resources into one entry per unit.
func (p *Player) resourceUnits() []board.Terrain {
	return p.Resources.Units()
}
