package engine

import "hexhaven/internal/board"

// activeFor returns the effects owned by player, or nil when Omens are off.
func (s *State) activeFor(player string) []ActiveEffect {
	if s.Omens == nil {
		return nil
	}
	return s.Omens.EffectsOf(player)
}

// EffectiveCost returns what player currently pays for piece: the base cost
// with every matching override applied first, then every delta in play
// order. A remaining free-build credit makes the cost zero.
func EffectiveCost(s *State, player string, piece Piece) ResourceSet {
	effects := s.activeFor(player)
	cost := BuildCost(piece)
	for _, a := range effects {
		if o, ok := a.Effect.(CostOverride); ok && o.Piece == piece {
			cost = o.Cost.Clone()
		}
	}
	for _, a := range effects {
		if d, ok := a.Effect.(CostDelta); ok && d.Piece == piece {
			cost.Add(d.Delta)
		}
	}
	for t, n := range cost {
		if n <= 0 {
			delete(cost, t)
		}
	}
	for _, a := range effects {
		if f, ok := a.Effect.(FreeBuild); ok && f.Piece == piece && f.Credits > 0 {
			return ResourceSet{}
		}
	}
	return cost
}

// consumeBuildEffects uses up the one-time effects a build of piece relied
// on: the first free-build credit if there is one, otherwise every one-time
// cost delta for that piece.
func (s *State) consumeBuildEffects(player string, piece Piece) {
	effects := s.activeFor(player)
	for _, a := range effects {
		f, ok := a.Effect.(FreeBuild)
		if !ok || f.Piece != piece || f.Credits <= 0 {
			continue
		}
		f.Credits--
		if f.Credits == 0 {
			s.Omens.remove(a.ID)
		} else {
			s.Omens.replace(a.ID, f)
		}
		return
	}
	for _, a := range effects {
		if d, ok := a.Effect.(CostDelta); ok && d.Piece == piece && d.OneTime {
			s.Omens.remove(a.ID)
		}
	}
}

// productionFor returns what player receives from hex given the unmodified
// yield base.
func (s *State) productionFor(player string, hex board.Hex, base int) int {
	amount := base
	for _, a := range s.activeFor(player) {
		switch e := a.Effect.(type) {
		case ProductionHalt:
			if e.Terrain == "" || e.Terrain == hex.Terrain {
				return 0
			}
		case ProductionDelta:
			if (e.Hex != "" && e.Hex == hex.ID) || (e.Hex == "" && e.Terrain == hex.Terrain) {
				amount += e.Delta
			}
		}
	}
	return max(amount, 0)
}

// tradeOverride applies trade-rate effects to base, the last one in play
// wins, and returns the rate along with the one-time effect to spend. A
// one-time override is spent only when it set the rate and beat what the
// player would have paid without it.
func (s *State) tradeOverride(player string, give board.Terrain, base int) (int, []int) {
	rate, prev := base, base
	var setter TradeRateOverride
	setterID := -1
	for _, a := range s.activeFor(player) {
		o, ok := a.Effect.(TradeRateOverride)
		if !ok || (o.Resource != "" && o.Resource != give) {
			continue
		}
		prev, rate = rate, o.Rate
		setter, setterID = o, a.ID
	}
	rate = max(rate, 1)
	if setterID < 0 || !setter.OneTime || rate >= max(prev, 1) {
		return rate, nil
	}
	return rate, []int{setterID}
}

// waived reports whether player may ignore the road-adjacency rule for piece.
func (s *State) waived(player string, piece Piece) bool {
	for _, a := range s.activeFor(player) {
		if w, ok := a.Effect.(AdjacencyWaiver); ok && (w.Piece == "" || w.Piece == piece) {
			return true
		}
	}
	return false
}

// tickTurn counts down the turn-timed effects of player at the start of
// their turn.
func (s *State) tickTurn(player string) []Event {
	if s.Omens == nil {
		return nil
	}
	var events []Event
	kept := s.Omens.Active[:0:0]
	for _, a := range s.Omens.Active {
		if a.Owner == player && a.TurnsLeft > 0 {
			a.TurnsLeft--
			if a.TurnsLeft == 0 {
				events = append(events, expired(a))
				continue
			}
		}
		kept = append(kept, a)
	}
	s.Omens.Active = kept
	return events
}

// tickRoll counts down roll-timed effects after a dice roll.
func (s *State) tickRoll() []Event {
	if s.Omens == nil {
		return nil
	}
	var events []Event
	kept := s.Omens.Active[:0:0]
	for _, a := range s.Omens.Active {
		if a.RollsLeft > 0 {
			a.RollsLeft--
			if a.RollsLeft == 0 {
				events = append(events, expired(a))
				continue
			}
		}
		kept = append(kept, a)
	}
	s.Omens.Active = kept
	return events
}

func expired(a ActiveEffect) Event {
	return Event{Type: EventEffectExpired, Player: a.Owner, Data: map[string]any{
		"effect": a.ID, "card": a.Card, "kind": a.Effect.Kind(),
	}}
}

// LoseResources removes what pick selects from player's resources, unless
// player holds a NegateNextLoss guard: then exactly one guard is spent and
// nothing is lost. s must be a copy owned by the caller.
func LoseResources(s *State, player string, pick func(have ResourceSet) ResourceSet) (ResourceSet, []Event) {
	p := s.GetPlayer(player)
	if p == nil {
		return ResourceSet{}, nil
	}
	for _, a := range s.activeFor(player) {
		if _, ok := a.Effect.(NegateNextLoss); ok {
			s.Omens.remove(a.ID)
			return ResourceSet{}, []Event{{Type: EventLossNegated, Player: player, Data: map[string]any{
				"effect": a.ID,
			}}}
		}
	}
	loss := pick(p.Resources.Clone())
	lost := ResourceSet{}
	for t, n := range loss {
		if k := min(n, p.Resources[t]); k > 0 {
			lost[t] = k
		}
	}
	p.Resources.Sub(lost)
	return lost, nil
}
