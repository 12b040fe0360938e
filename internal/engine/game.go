package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"hexhaven/internal/board"
)

// Engine applies player actions to game states. It holds no game state of
// its own beyond the random source, so one Engine may serve many games as
// long as calls are not concurrent.
type Engine struct {
	Omens *OmenRegistry
	rng   *rand.Rand
	dice  func() [2]int
}

// New creates an engine. omens may be nil when no game enables Omens.
func New(omens *OmenRegistry, rng *rand.Rand) *Engine {
	e := &Engine{Omens: omens, rng: rng}
	e.dice = func() [2]int {
		return [2]int{e.rng.IntN(6) + 1, e.rng.IntN(6) + 1}
	}
	return e
}

// SetDice replaces the dice; scenario setups use it to script rolls.
func (e *Engine) SetDice(roll func() [2]int) {
	e.dice = roll
}

// Rand returns the engine's random source.
func (e *Engine) Rand() *rand.Rand {
	return e.rng
}

// NewGame lays out a game on b for the given seats.
func (e *Engine) NewGame(b board.Board, seats []Player, cfg Config) (*State, error) {
	s, err := NewState(b, seats, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Omens {
		if e.Omens == nil {
			return nil, fmt.Errorf("%w: no omen cards registered", ErrOmensDisabled)
		}
		s.Omens = NewOmenState(e.Omens.DeckList(), e.rng)
	}
	return s, nil
}

// Apply is the single entry point for player actions. On success it
// returns a new state with Version advanced; on failure it returns s itself,
// untouched, and the reason.
func (e *Engine) Apply(s *State, playerID string, action Action) (*State, []Event, error) {
	if s.Phase == PhaseEnded {
		return s, nil, ErrWrongPhase
	}
	next := s.Clone()
	var (
		events []Event
		err    error
	)
	switch action.Type {
	case ActionRollOrder:
		events, err = e.applyRollOrder(next, playerID)
	case ActionRoll:
		events, err = e.applyRoll(next, playerID)
	case ActionMoveRobber:
		events, err = e.applyMoveRobber(next, playerID, action)
	case ActionBuildRoad:
		events, err = e.applyBuildRoad(next, playerID, action)
	case ActionBuildSettlement:
		events, err = e.applyBuildSettlement(next, playerID, action)
	case ActionBuildCity:
		events, err = e.applyBuildCity(next, playerID, action)
	case ActionTrade:
		events, err = e.applyTrade(next, playerID, action)
	case ActionDrawOmen:
		events, err = e.applyDrawOmen(next, playerID)
	case ActionPlayOmen:
		events, err = e.applyPlayOmen(next, playerID, action)
	case ActionEndTurn:
		events, err = e.applyEndTurn(next, playerID)
	default:
		err = ErrInvalidAction
	}
	if err != nil {
		return s, nil, err
	}
	events = append(events, next.checkVictory()...)
	next.Version++
	return next, events, nil
}

// requireTurn checks that it is player's turn in one of the given phases.
func (s *State) requireTurn(player string, phases ...GamePhase) error {
	if s.GetPlayer(player) == nil {
		return ErrPlayerNotFound
	}
	if !slices.Contains(phases, s.Phase) {
		return ErrWrongPhase
	}
	if cur := s.Current(); cur == nil || cur.ID != player {
		return ErrNotYourTurn
	}
	return nil
}

// requireMain checks that player may build, trade or use Omens: main play,
// their turn, dice rolled and robber settled.
func (s *State) requireMain(player string) error {
	if err := s.requireTurn(player, PhasePlaying); err != nil {
		return err
	}
	if !s.HasRolled {
		return ErrMustRoll
	}
	if s.RobberPending {
		return ErrRobberPending
	}
	return nil
}

// pay charges player the effective cost of piece and spends the one-time
// effects that shaped it.
func (s *State) pay(player string, piece Piece) (ResourceSet, error) {
	p := s.GetPlayer(player)
	cost := EffectiveCost(s, player, piece)
	if !p.Resources.Covers(cost) {
		return nil, &InsufficientResourcesError{Missing: MissingResources(p.Resources, cost)}
	}
	p.Resources.Sub(cost)
	s.consumeBuildEffects(player, piece)
	return cost, nil
}

func (e *Engine) applyBuildRoad(s *State, playerID string, action Action) ([]Event, error) {
	if s.Phase == PhaseSetup {
		return s.placeSetupRoad(playerID, action.Edge)
	}
	if err := s.requireMain(playerID); err != nil {
		return nil, err
	}
	p := s.GetPlayer(playerID)
	if p.Roads == 0 {
		return nil, ErrNoPiecesLeft
	}
	if !CanPlaceRoad(s, action.Edge, playerID) {
		return nil, ErrIllegalPlacement
	}
	cost, err := s.pay(playerID, PieceRoad)
	if err != nil {
		return nil, err
	}
	s.setRoad(action.Edge, playerID)
	p.Roads--

	events := []Event{
		{Type: EventRoadBuilt, Player: playerID, Data: map[string]any{
			"edge": action.Edge, "cost": cost,
		}},
	}
	return append(events, s.updateLongestRoad()...), nil
}

func (e *Engine) applyBuildSettlement(s *State, playerID string, action Action) ([]Event, error) {
	if s.Phase == PhaseSetup {
		return s.placeSetupSettlement(playerID, action.Vertex)
	}
	if err := s.requireMain(playerID); err != nil {
		return nil, err
	}
	p := s.GetPlayer(playerID)
	if p.Settlements == 0 {
		return nil, ErrNoPiecesLeft
	}
	if !CanPlaceSettlement(s, action.Vertex, playerID) {
		return nil, ErrIllegalPlacement
	}
	cost, err := s.pay(playerID, PieceSettlement)
	if err != nil {
		return nil, err
	}
	s.setStructure(action.Vertex, &Structure{Owner: playerID, Kind: Settlement})
	p.Settlements--
	p.VictoryPoints++

	return []Event{
		{Type: EventSettlementBuilt, Player: playerID, Data: map[string]any{
			"vertex": action.Vertex, "cost": cost,
		}},
	}, nil
}

func (e *Engine) applyBuildCity(s *State, playerID string, action Action) ([]Event, error) {
	if err := s.requireMain(playerID); err != nil {
		return nil, err
	}
	p := s.GetPlayer(playerID)
	vert, ok := s.Vertices[action.Vertex]
	if !ok || vert.Structure == nil || vert.Structure.Owner != playerID || vert.Structure.Kind != Settlement {
		return nil, ErrIllegalPlacement
	}
	if p.Cities == 0 {
		return nil, ErrNoPiecesLeft
	}
	cost, err := s.pay(playerID, PieceCity)
	if err != nil {
		return nil, err
	}
	s.setStructure(action.Vertex, &Structure{Owner: playerID, Kind: City})
	p.Cities--
	p.Settlements++
	p.VictoryPoints++

	return []Event{
		{Type: EventCityBuilt, Player: playerID, Data: map[string]any{
			"vertex": action.Vertex, "cost": cost,
		}},
	}, nil
}

func (e *Engine) applyTrade(s *State, playerID string, action Action) ([]Event, error) {
	if err := s.requireMain(playerID); err != nil {
		return nil, err
	}
	if !action.Give.IsResource() || !action.Get.IsResource() || action.Give == action.Get {
		return nil, ErrInvalidAction
	}
	p := s.GetPlayer(playerID)
	rate, oneTime := s.tradeOverride(playerID, action.Give, harborRate(s, playerID, action.Give))
	give := ResourceSet{action.Give: rate}
	if !p.Resources.Covers(give) {
		return nil, &InsufficientResourcesError{Missing: MissingResources(p.Resources, give)}
	}
	p.Resources.Sub(give)
	p.Resources[action.Get]++
	for _, id := range oneTime {
		s.Omens.remove(id)
	}
	return []Event{
		{Type: EventTraded, Player: playerID, Data: map[string]any{
			"give": action.Give, "get": action.Get, "rate": rate,
		}},
	}, nil
}

func (e *Engine) applyDrawOmen(s *State, playerID string) ([]Event, error) {
	if err := s.requireMain(playerID); err != nil {
		return nil, err
	}
	if s.Omens == nil || e.Omens == nil {
		return nil, ErrOmensDisabled
	}
	p := s.GetPlayer(playerID)
	if p.DrewOmen {
		return nil, ErrAlreadyDrew
	}
	if len(p.Hand) >= s.Config.OmenHandLimit {
		return nil, ErrHandFull
	}
	if !s.Omens.CanDraw() {
		return nil, ErrDeckEmpty
	}
	cost := OmenDrawCost()
	if !p.Resources.Covers(cost) {
		return nil, &InsufficientResourcesError{Missing: MissingResources(p.Resources, cost)}
	}
	p.Resources.Sub(cost)
	p.DrewOmen = true

	var events []Event
	cardID, reshuffled, _ := s.Omens.Draw(e.rng)
	if reshuffled {
		events = append(events, Event{Type: EventDeckReshuffled, Data: map[string]any{
			"size": s.Omens.Len() + 1,
		}})
	}
	card, err := e.Omens.Get(cardID)
	if err != nil {
		return nil, err
	}
	events = append(events, Event{Type: EventOmenDrawn, Player: playerID, Data: map[string]any{
		"card": cardID, "beneficial": card.Beneficial(),
	}})
	if card.Beneficial() {
		p.Hand = append(p.Hand, cardID)
		return events, nil
	}

	effects, err := card.Apply(s, playerID, "", e.rng)
	if err != nil {
		return nil, err
	}
	s.Omens.Discard = append(s.Omens.Discard, cardID)
	return append(events, effects...), nil
}

func (e *Engine) applyPlayOmen(s *State, playerID string, action Action) ([]Event, error) {
	if err := s.requireMain(playerID); err != nil {
		return nil, err
	}
	if s.Omens == nil || e.Omens == nil {
		return nil, ErrOmensDisabled
	}
	p := s.GetPlayer(playerID)
	if p.PlayedOmen {
		return nil, ErrAlreadyPlayed
	}
	if !p.HandHas(action.Card) {
		return nil, ErrCardNotInHand
	}
	card, err := e.Omens.Get(action.Card)
	if err != nil {
		return nil, err
	}
	if card.NeedsTarget() && !slices.Contains(card.ValidTargets(s, playerID), action.Target) {
		return nil, ErrInvalidTarget
	}

	effects, err := card.Apply(s, playerID, action.Target, e.rng)
	if err != nil {
		return nil, err
	}
	p.RemoveFromHand(action.Card)
	p.PlayedOmen = true
	s.Omens.Discard = append(s.Omens.Discard, action.Card)

	events := []Event{
		{Type: EventOmenPlayed, Player: playerID, Data: map[string]any{
			"card": action.Card, "target": action.Target,
		}},
	}
	return append(events, effects...), nil
}
