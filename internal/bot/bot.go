// Package bot picks moves for computer-controlled seats. It only reads the
// state it is given and returns one action for the engine to apply.
package bot

import (
	"hexhaven/internal/board"
	"hexhaven/internal/engine"
)

// Decide returns the next action for playerID, or false when the bot has
// nothing to do: not its turn, or no legal move in reach.
func Decide(e *engine.Engine, s *engine.State, playerID string) (engine.Action, bool) {
	cur := s.Current()
	p := s.GetPlayer(playerID)
	if cur == nil || p == nil || cur.ID != playerID {
		return engine.Action{}, false
	}

	switch s.Phase {
	case engine.PhaseRollOrder:
		return engine.Action{Type: engine.ActionRollOrder}, true
	case engine.PhaseSetup:
		return setupMove(s, playerID)
	case engine.PhasePlaying:
		return playMove(e, s, p)
	default:
		return engine.Action{}, false
	}
}

func setupMove(s *engine.State, playerID string) (engine.Action, bool) {
	if s.SetupVertex == nil {
		v, ok := bestVertex(s, engine.PlaceableVertices(s, playerID))
		if !ok {
			return engine.Action{}, false
		}
		return engine.Action{Type: engine.ActionBuildSettlement, Vertex: v}, true
	}
	roads := engine.PlaceableRoads(s, playerID)
	if len(roads) == 0 {
		return engine.Action{}, false
	}
	return engine.Action{Type: engine.ActionBuildRoad, Edge: bestRoad(s, roads)}, true
}

func playMove(e *engine.Engine, s *engine.State, p *engine.Player) (engine.Action, bool) {
	if !s.HasRolled {
		return engine.Action{Type: engine.ActionRoll}, true
	}
	if s.RobberPending {
		return robberMove(s, p.ID), true
	}

	view := e.ViewFor(s, p.ID)
	afford := func(piece engine.Piece) bool {
		return p.Resources.Covers(view.Costs[piece])
	}

	if len(view.Upgrades) > 0 && afford(engine.PieceCity) {
		v, _ := bestVertex(s, view.Upgrades)
		return engine.Action{Type: engine.ActionBuildCity, Vertex: v}, true
	}
	if len(view.Settlements) > 0 && afford(engine.PieceSettlement) {
		v, _ := bestVertex(s, view.Settlements)
		return engine.Action{Type: engine.ActionBuildSettlement, Vertex: v}, true
	}
	if len(view.Settlements) == 0 && len(view.Roads) > 0 && afford(engine.PieceRoad) {
		return engine.Action{Type: engine.ActionBuildRoad, Edge: bestRoad(s, view.Roads)}, true
	}
	if a, ok := omenMove(view, p); ok {
		return a, true
	}
	if a, ok := tradeMove(s, view, p); ok {
		return a, true
	}
	return engine.Action{Type: engine.ActionEndTurn}, true
}

func omenMove(view engine.PlayerViewData, p *engine.Player) (engine.Action, bool) {
	if !p.PlayedOmen {
		for _, c := range view.Hand {
			switch {
			case !c.NeedsTarget:
				return engine.Action{Type: engine.ActionPlayOmen, Card: c.ID}, true
			case len(c.Targets) > 0:
				return engine.Action{Type: engine.ActionPlayOmen, Card: c.ID, Target: c.Targets[0]}, true
			}
		}
	}
	if view.CanDrawOmen {
		return engine.Action{Type: engine.ActionDrawOmen}, true
	}
	return engine.Action{}, false
}

// tradeMove trades surplus toward the most valuable piece the bot could place.
func tradeMove(s *engine.State, view engine.PlayerViewData, p *engine.Player) (engine.Action, bool) {
	var goal engine.Piece
	switch {
	case len(view.Upgrades) > 0 && p.Cities > 0:
		goal = engine.PieceCity
	case len(view.Settlements) > 0 && p.Settlements > 0:
		goal = engine.PieceSettlement
	case len(view.Roads) > 0 && p.Roads > 0:
		goal = engine.PieceRoad
	default:
		return engine.Action{}, false
	}
	cost := view.Costs[goal]
	missing := engine.MissingResources(p.Resources, cost)
	if len(missing) == 0 {
		return engine.Action{}, false
	}
	var want board.Terrain
	for _, t := range board.Resources() {
		if missing[t] > 0 {
			want = t
			break
		}
	}
	for _, give := range board.Resources() {
		if p.Resources[give]-cost[give] >= engine.TradeRate(s, p.ID, give) {
			return engine.Action{Type: engine.ActionTrade, Give: give, Get: want}, true
		}
	}
	return engine.Action{}, false
}

// robberMove blocks the most productive hex the bot does not build on and
// robs the richest player there.
func robberMove(s *engine.State, playerID string) engine.Action {
	hexes := engine.RobberHexes(s)
	best, bestScore := hexes[0], -1
	for _, id := range hexes {
		if owns(s, id, playerID) {
			continue
		}
		h, _ := s.Hex(id)
		score := 0
		for _, victim := range engine.RobberTargets(s, id, playerID) {
			score += pips(h.Number) + s.GetPlayer(victim).Resources.Total()
		}
		if score > bestScore {
			best, bestScore = id, score
		}
	}
	a := engine.Action{Type: engine.ActionMoveRobber, Hex: best}
	richest := 0
	for _, id := range engine.RobberTargets(s, best, playerID) {
		if n := s.GetPlayer(id).Resources.Total(); n > richest {
			a.Target, richest = id, n
		}
	}
	return a
}
