package engine

import "hexhaven/internal/board"

// PublicViewData is the game as every seat and the shared screen see it.
type PublicViewData struct {
	Version           int                `json:"version"`
	Phase             string             `json:"phase"`
	Hexes             []board.Hex        `json:"hexes"`
	Vertices          map[int]Vertex     `json:"vertices"`
	Edges             map[int]Edge       `json:"edges"`
	Harbors           []board.Harbor     `json:"harbors"`
	Players           []PublicPlayerData `json:"players"`
	CurrentTurn       string             `json:"current_turn,omitempty"`
	TurnOrder         []string           `json:"turn_order,omitempty"`
	OrderRolls        map[string]int     `json:"order_rolls,omitempty"`
	LastRoll          *Roll              `json:"last_roll,omitempty"`
	RobberPending     bool               `json:"robber_pending"`
	Robber            board.HexID        `json:"robber"`
	LongestRoadHolder string             `json:"longest_road_holder,omitempty"`
	Winner            string             `json:"winner,omitempty"`
	Scores            []ScoreEntry       `json:"scores"`
	DeckSize          int                `json:"deck_size"`
	Effects           []ActiveEffect     `json:"effects,omitempty"`
}

type PublicPlayerData struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Bot           bool   `json:"bot"`
	ResourceCount int    `json:"resource_count"`
	HandSize      int    `json:"hand_size"`
	Settlements   int    `json:"settlements"`
	Cities        int    `json:"cities"`
	Roads         int    `json:"roads"`
	VictoryPoints int    `json:"victory_points"`
	RoadLength    int    `json:"road_length"`
}

func (s *State) PublicView() PublicViewData {
	pv := PublicViewData{
		Version:           s.Version,
		Phase:             s.Phase.String(),
		Hexes:             s.Hexes,
		Vertices:          s.Vertices,
		Edges:             s.Edges,
		Harbors:           s.Harbors,
		OrderRolls:        s.OrderRolls,
		LastRoll:          s.LastRoll,
		RobberPending:     s.RobberPending,
		Robber:            s.Robber,
		LongestRoadHolder: s.LongestRoadHolder,
		Winner:            s.Winner,
		Scores:            Standings(s),
	}
	if cur := s.Current(); cur != nil {
		pv.CurrentTurn = cur.ID
	}
	if len(s.TurnOrder) > 0 {
		pv.TurnOrder = s.seatIDs(s.TurnOrder)
	}
	if s.Omens != nil {
		pv.DeckSize = s.Omens.Len()
		pv.Effects = s.Omens.Active
	}
	for _, p := range s.Players {
		pv.Players = append(pv.Players, PublicPlayerData{
			ID:            p.ID,
			Name:          p.Name,
			Bot:           p.Bot,
			ResourceCount: p.Resources.Total(),
			HandSize:      len(p.Hand),
			Settlements:   p.Settlements,
			Cities:        p.Cities,
			Roads:         p.Roads,
			VictoryPoints: p.VictoryPoints,
			RoadLength:    LongestRoad(s, p.ID),
		})
	}
	return pv
}

// PlayerViewData adds what only one player may see, and what they can do.
type PlayerViewData struct {
	PublicViewData
	Resources    ResourceSet              `json:"resources"`
	Hand         []CardView               `json:"hand"`
	IsMyTurn     bool                     `json:"is_my_turn"`
	CanRoll      bool                     `json:"can_roll"`
	CanEndTurn   bool                     `json:"can_end_turn"`
	CanDrawOmen  bool                     `json:"can_draw_omen"`
	Settlements  []int                    `json:"settlements,omitempty"`
	Roads        []int                    `json:"roads,omitempty"`
	Upgrades     []int                    `json:"upgrades,omitempty"`
	Costs        map[Piece]ResourceSet    `json:"costs"`
	TradeRates   map[board.Terrain]int    `json:"trade_rates"`
	RobberHexes  []board.HexID            `json:"robber_hexes,omitempty"`
	RobberVictim map[board.HexID][]string `json:"robber_victims,omitempty"`
}

// CardView describes an Omen card in hand.
type CardView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	NeedsTarget bool     `json:"needs_target"`
	Targets     []string `json:"targets,omitempty"`
}

// ViewFor returns the game state visible to playerID.
func (e *Engine) ViewFor(s *State, playerID string) PlayerViewData {
	pv := PlayerViewData{PublicViewData: s.PublicView()}
	p := s.GetPlayer(playerID)
	if p == nil {
		return pv
	}
	pv.Resources = p.Resources.Clone()
	pv.Costs = map[Piece]ResourceSet{
		PieceRoad:       EffectiveCost(s, playerID, PieceRoad),
		PieceSettlement: EffectiveCost(s, playerID, PieceSettlement),
		PieceCity:       EffectiveCost(s, playerID, PieceCity),
	}
	pv.TradeRates = TradeRates(s, playerID)
	for _, id := range p.Hand {
		cv := CardView{ID: id, Name: id}
		if e.Omens != nil {
			if c, err := e.Omens.Get(id); err == nil {
				cv.Name = c.Name()
				cv.NeedsTarget = c.NeedsTarget()
				if cv.NeedsTarget {
					cv.Targets = c.ValidTargets(s, playerID)
				}
			}
		}
		pv.Hand = append(pv.Hand, cv)
	}

	cur := s.Current()
	pv.IsMyTurn = cur != nil && cur.ID == playerID
	if !pv.IsMyTurn {
		return pv
	}

	switch s.Phase {
	case PhaseSetup:
		if s.SetupVertex == nil {
			pv.Settlements = PlaceableVertices(s, playerID)
		} else {
			pv.Roads = PlaceableRoads(s, playerID)
		}
	case PhasePlaying:
		pv.CanRoll = !s.HasRolled
		if s.RobberPending {
			pv.RobberHexes = RobberHexes(s)
			pv.RobberVictim = map[board.HexID][]string{}
			for _, h := range pv.RobberHexes {
				if t := RobberTargets(s, h, playerID); len(t) > 0 {
					pv.RobberVictim[h] = t
				}
			}
			return pv
		}
		if !s.HasRolled {
			return pv
		}
		pv.CanEndTurn = true
		pv.CanDrawOmen = s.Omens != nil && !p.DrewOmen && s.Omens.CanDraw() &&
			len(p.Hand) < s.Config.OmenHandLimit && p.Resources.Covers(OmenDrawCost())
		if p.Settlements > 0 {
			pv.Settlements = PlaceableVertices(s, playerID)
		}
		if p.Roads > 0 {
			pv.Roads = PlaceableRoads(s, playerID)
		}
		if p.Cities > 0 {
			pv.Upgrades = UpgradeableVertices(s, playerID)
		}
	}
	return pv
}
