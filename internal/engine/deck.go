package engine

import "math/rand/v2"

// OmenState is the modifier subsystem's share of the game state: the draw
// pile, the discard pile and every effect currently in play.
type OmenState struct {
	Deck         []string       `json:"deck"`
	Discard      []string       `json:"discard"`
	Active       []ActiveEffect `json:"active"`
	NextEffectID int            `json:"next_effect_id"`
}

// NewOmenState creates a shuffled deck from the given cards.
func NewOmenState(cards []string, rng *rand.Rand) *OmenState {
	o := &OmenState{Deck: make([]string, len(cards)), NextEffectID: 1}
	copy(o.Deck, cards)
	o.Shuffle(rng)
	return o
}

func (o *OmenState) clone() *OmenState {
	c := *o
	c.Deck = append([]string(nil), o.Deck...)
	c.Discard = append([]string(nil), o.Discard...)
	c.Active = append([]ActiveEffect(nil), o.Active...)
	return &c
}

func (o *OmenState) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(o.Deck), func(i, j int) {
		o.Deck[i], o.Deck[j] = o.Deck[j], o.Deck[i]
	})
}

// Draw removes and returns the top card. An empty deck is refilled from
// the shuffled discard pile first; reshuffled reports when that happened.
func (o *OmenState) Draw(rng *rand.Rand) (card string, reshuffled, ok bool) {
	if len(o.Deck) == 0 {
		if len(o.Discard) == 0 {
			return "", false, false
		}
		o.Deck, o.Discard = o.Discard, nil
		o.Shuffle(rng)
		reshuffled = true
	}
	card = o.Deck[0]
	o.Deck = o.Deck[1:]
	return card, reshuffled, true
}

// Len returns the number of cards left to draw before a reshuffle.
func (o *OmenState) Len() int {
	return len(o.Deck)
}

// CanDraw reports whether a card can be drawn, possibly after a reshuffle.
func (o *OmenState) CanDraw() bool {
	return len(o.Deck) > 0 || len(o.Discard) > 0
}

// AddEffect puts a new effect into play and returns its id.
func (o *OmenState) AddEffect(owner, card string, eff Effect, turns, rolls int) int {
	id := o.NextEffectID
	o.NextEffectID++
	o.Active = append(o.Active, ActiveEffect{
		ID:        id,
		Owner:     owner,
		Card:      card,
		TurnsLeft: turns,
		RollsLeft: rolls,
		Effect:    eff,
	})
	return id
}

// EffectsOf returns the active effects owned by player, in play order.
func (o *OmenState) EffectsOf(player string) []ActiveEffect {
	var out []ActiveEffect
	for _, a := range o.Active {
		if a.Owner == player {
			out = append(out, a)
		}
	}
	return out
}

func (o *OmenState) remove(id int) {
	for i, a := range o.Active {
		if a.ID == id {
			o.Active = append(o.Active[:i], o.Active[i+1:]...)
			return
		}
	}
}

func (o *OmenState) replace(id int, eff Effect) {
	for i := range o.Active {
		if o.Active[i].ID == id {
			o.Active[i].Effect = eff
			return
		}
	}
}
