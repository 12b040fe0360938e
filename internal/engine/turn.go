package engine

import (
	"slices"

	"hexhaven/internal/board"
)

// applyRollOrder records one turn-order roll. Once everyone in the current
// tie group has rolled, the group is split by result, best first; groups of
// one are settled and any remaining tie group rolls again.
func (e *Engine) applyRollOrder(s *State, playerID string) ([]Event, error) {
	if err := s.requireTurn(playerID, PhaseRollOrder); err != nil {
		return nil, err
	}
	gi := s.openGroup()
	if gi < 0 {
		return nil, ErrWrongPhase
	}
	group := s.OrderGroups[gi]
	seat := s.PlayerIndex(playerID)
	if !slices.Contains(group, seat) {
		return nil, ErrNotYourTurn
	}

	d := e.dice()
	if s.OrderRolls == nil {
		s.OrderRolls = map[string]int{}
	}
	s.OrderRolls[playerID] = d[0] + d[1]
	events := []Event{{Type: EventOrderRolled, Player: playerID, Data: map[string]any{
		"dice": d, "sum": d[0] + d[1],
	}}}

	for _, i := range group {
		if _, rolled := s.OrderRolls[s.Players[i].ID]; !rolled {
			s.CurrentPlayer = i
			return events, nil
		}
	}

	split := s.splitGroup(group)
	for _, i := range group {
		delete(s.OrderRolls, s.Players[i].ID)
	}
	s.OrderGroups = slices.Concat(s.OrderGroups[:gi], split, s.OrderGroups[gi+1:])
	for _, g := range split {
		if len(g) > 1 {
			events = append(events, Event{Type: EventOrderTied, Data: map[string]any{
				"players": s.seatIDs(g),
			}})
		}
	}

	if next := s.openGroup(); next >= 0 {
		s.CurrentPlayer = s.OrderGroups[next][0]
		return events, nil
	}

	s.TurnOrder = slices.Concat(s.OrderGroups...)
	s.OrderGroups = nil
	s.OrderRolls = nil
	s.Phase = PhaseSetup
	s.SetupStep = 0
	s.CurrentPlayer = s.TurnOrder[0]
	return append(events,
		Event{Type: EventOrderFixed, Data: map[string]any{"order": s.seatIDs(s.TurnOrder)}},
		Event{Type: EventPhaseChange, Data: map[string]any{"phase": PhaseSetup}},
	), nil
}

// openGroup returns the index of the first tie group still to be resolved.
func (s *State) openGroup() int {
	for i, g := range s.OrderGroups {
		if len(g) > 1 {
			return i
		}
	}
	return -1
}

// splitGroup buckets a fully rolled group by result, highest first. Seats
// inside a bucket keep their relative order.
func (s *State) splitGroup(group []int) [][]int {
	sorted := slices.Clone(group)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return s.OrderRolls[s.Players[b].ID] - s.OrderRolls[s.Players[a].ID]
	})
	var out [][]int
	for i, seat := range sorted {
		roll := s.OrderRolls[s.Players[seat].ID]
		if i > 0 && roll == s.OrderRolls[s.Players[sorted[i-1]].ID] {
			out[len(out)-1] = append(out[len(out)-1], seat)
			continue
		}
		out = append(out, []int{seat})
	}
	return out
}

func (s *State) seatIDs(seats []int) []string {
	ids := make([]string, len(seats))
	for i, seat := range seats {
		ids[i] = s.Players[seat].ID
	}
	return ids
}

// setupSeat returns whose placement step k is: forward through the turn
// order, then back.
func (s *State) setupSeat(k int) int {
	n := len(s.TurnOrder)
	if k < n {
		return s.TurnOrder[k]
	}
	return s.TurnOrder[2*n-1-k]
}

func (s *State) placeSetupSettlement(playerID string, v int) ([]Event, error) {
	if err := s.requireTurn(playerID, PhaseSetup); err != nil {
		return nil, err
	}
	if s.SetupVertex != nil {
		return nil, ErrInvalidAction
	}
	if !CanPlaceSettlement(s, v, playerID) {
		return nil, ErrIllegalPlacement
	}
	p := s.GetPlayer(playerID)
	s.setStructure(v, &Structure{Owner: playerID, Kind: Settlement})
	p.Settlements--
	p.VictoryPoints++
	s.SetupVertex = &v

	events := []Event{{Type: EventSettlementBuilt, Player: playerID, Data: map[string]any{
		"vertex": v, "setup": true,
	}}}
	if s.SetupStep >= len(s.TurnOrder) {
		granted := s.grantStarting(playerID, v)
		events = append(events, Event{Type: EventStartingGrant, Player: playerID, Data: map[string]any{
			"vertex": v, "resources": granted,
		}})
	}
	return events, nil
}

func (s *State) placeSetupRoad(playerID string, edge int) ([]Event, error) {
	if err := s.requireTurn(playerID, PhaseSetup); err != nil {
		return nil, err
	}
	if s.SetupVertex == nil {
		return nil, ErrInvalidAction
	}
	if !CanPlaceRoad(s, edge, playerID) {
		return nil, ErrIllegalPlacement
	}
	s.setRoad(edge, playerID)
	s.GetPlayer(playerID).Roads--
	s.SetupVertex = nil
	s.SetupStep++

	events := []Event{{Type: EventRoadBuilt, Player: playerID, Data: map[string]any{
		"edge": edge, "setup": true,
	}}}
	if s.SetupStep < 2*len(s.TurnOrder) {
		s.CurrentPlayer = s.setupSeat(s.SetupStep)
		return events, nil
	}

	s.Phase = PhasePlaying
	s.CurrentPlayer = s.TurnOrder[0]
	s.HasRolled = false
	events = append(events, Event{Type: EventPhaseChange, Data: map[string]any{"phase": PhasePlaying}})
	return append(events, s.tickTurn(s.Current().ID)...), nil
}

func (e *Engine) applyRoll(s *State, playerID string) ([]Event, error) {
	if err := s.requireTurn(playerID, PhasePlaying); err != nil {
		return nil, err
	}
	if s.HasRolled {
		return nil, ErrAlreadyRolled
	}
	d := e.dice()
	sum := d[0] + d[1]
	s.LastRoll = &Roll{Dice: d, Sum: sum}
	s.HasRolled = true

	events := []Event{{Type: EventDiceRolled, Player: playerID, Data: map[string]any{
		"dice": d, "sum": sum,
	}}}
	if sum == 7 {
		s.RobberPending = true
	} else {
		gains := s.distribute(sum)
		if len(gains) > 0 {
			events = append(events, Event{Type: EventProduced, Data: gains})
		}
	}
	return append(events, s.tickRoll()...), nil
}

func (e *Engine) applyMoveRobber(s *State, playerID string, action Action) ([]Event, error) {
	if err := s.requireTurn(playerID, PhasePlaying); err != nil {
		return nil, err
	}
	if !s.RobberPending {
		return nil, ErrInvalidAction
	}
	if _, ok := s.Hex(action.Hex); !ok || action.Hex == s.Robber {
		return nil, ErrInvalidTarget
	}
	if action.Target != "" && !slices.Contains(RobberTargets(s, action.Hex, playerID), action.Target) {
		return nil, ErrInvalidTarget
	}
	s.Robber = action.Hex
	s.RobberPending = false

	events := []Event{{Type: EventRobberMoved, Player: playerID, Data: map[string]any{
		"hex": action.Hex,
	}}}
	if action.Target == "" {
		return events, nil
	}
	if t, ok := s.steal(e.rng, playerID, action.Target); ok {
		events = append(events, Event{Type: EventStolen, Player: playerID, Data: map[string]any{
			"from": action.Target, "resource": t,
		}})
	}
	return events, nil
}

func (e *Engine) applyEndTurn(s *State, playerID string) ([]Event, error) {
	if err := s.requireMain(playerID); err != nil {
		return nil, err
	}
	p := s.GetPlayer(playerID)
	p.DrewOmen = false
	p.PlayedOmen = false

	pos := slices.Index(s.TurnOrder, s.CurrentPlayer)
	s.CurrentPlayer = s.TurnOrder[(pos+1)%len(s.TurnOrder)]
	s.HasRolled = false
	s.LastRoll = nil

	next := s.Current()
	events := []Event{{Type: EventTurnEnd, Player: playerID, Data: map[string]any{
		"next": next.ID,
	}}}
	return append(events, s.tickTurn(next.ID)...), nil
}

// RobberHexes lists where the robber may move: every hex but its current one.
func RobberHexes(s *State) []board.HexID {
	out := make([]board.HexID, 0, len(s.Hexes))
	for _, h := range s.Hexes {
		if h.ID != s.Robber {
			out = append(out, h.ID)
		}
	}
	return out
}
