package engine

import (
	"fmt"
	"math/rand/v2"
)

// OmenCard defines one card type of the Omen deck.
type OmenCard interface {
	ID() string
	Name() string
	// Beneficial cards go to the drawer's hand; the rest resolve on draw.
	Beneficial() bool
	// NeedsTarget returns true if playing the card requires a target.
	NeedsTarget() bool
	// ValidTargets returns valid target identifiers, given game state.
	ValidTargets(s *State, playerID string) []string
	// Apply resolves the card against s, which the engine has already
	// copied. Returns events and error; on error s is discarded.
	Apply(s *State, playerID, target string, rng *rand.Rand) ([]Event, error)
}

// OmenRegistry maps card ids to their definitions.
type OmenRegistry struct {
	cards map[string]OmenCard
	order []string
}

func NewOmenRegistry() *OmenRegistry {
	return &OmenRegistry{cards: make(map[string]OmenCard)}
}

func (r *OmenRegistry) Register(c OmenCard) {
	if _, ok := r.cards[c.ID()]; !ok {
		r.order = append(r.order, c.ID())
	}
	r.cards[c.ID()] = c
}

func (r *OmenRegistry) Get(id string) (OmenCard, error) {
	c, ok := r.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	return c, nil
}

// Cards returns every registered card in registration order.
func (r *OmenRegistry) Cards() []OmenCard {
	out := make([]OmenCard, len(r.order))
	for i, id := range r.order {
		out[i] = r.cards[id]
	}
	return out
}

// DeckList returns the unshuffled deck: two copies of every beneficial card
// and one of every detrimental card.
func (r *OmenRegistry) DeckList() []string {
	var deck []string
	for _, c := range r.Cards() {
		deck = append(deck, c.ID())
		if c.Beneficial() {
			deck = append(deck, c.ID())
		}
	}
	return deck
}
