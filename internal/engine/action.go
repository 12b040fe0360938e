package engine

import "hexhaven/internal/board"

// ActionType identifies player actions sent to Engine.Apply.
type ActionType string

const (
	ActionRollOrder       ActionType = "roll_order"       // roll for turn order
	ActionRoll            ActionType = "roll"             // roll production dice
	ActionMoveRobber      ActionType = "move_robber"      // after a 7: Hex, optional Target
	ActionBuildRoad       ActionType = "build_road"       // Edge
	ActionBuildSettlement ActionType = "build_settlement" // Vertex
	ActionBuildCity       ActionType = "build_city"       // Vertex
	ActionTrade           ActionType = "trade"            // Give, Get
	ActionDrawOmen        ActionType = "draw_omen"
	ActionPlayOmen        ActionType = "play_omen" // Card, optional Target
	ActionEndTurn         ActionType = "end_turn"
)

// Action is a player's action input.
type Action struct {
	Type   ActionType    `json:"type"`
	Vertex int           `json:"vertex"`
	Edge   int           `json:"edge"`
	Hex    board.HexID   `json:"hex,omitempty"`
	Target string        `json:"target,omitempty"` // player id, hex id or resource, depending on the card
	Give   board.Terrain `json:"give,omitempty"`
	Get    board.Terrain `json:"get,omitempty"`
	Card   string        `json:"card,omitempty"`
}

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventOrderRolled     EventType = "order_rolled"
	EventOrderTied       EventType = "order_tied"
	EventOrderFixed      EventType = "order_fixed"
	EventPhaseChange     EventType = "phase_change"
	EventSettlementBuilt EventType = "settlement_built"
	EventCityBuilt       EventType = "city_built"
	EventRoadBuilt       EventType = "road_built"
	EventStartingGrant   EventType = "starting_grant"
	EventDiceRolled      EventType = "dice_rolled"
	EventProduced        EventType = "produced"
	EventRobberMoved     EventType = "robber_moved"
	EventStolen          EventType = "stolen"
	EventTraded          EventType = "traded"
	EventLongestRoad     EventType = "longest_road"
	EventOmenDrawn       EventType = "omen_drawn"
	EventOmenPlayed      EventType = "omen_played"
	EventOmenEffect      EventType = "omen_effect"
	EventLossNegated     EventType = "loss_negated"
	EventDeckReshuffled  EventType = "deck_reshuffled"
	EventEffectExpired   EventType = "effect_expired"
	EventTurnEnd         EventType = "turn_end"
	EventGameOver        EventType = "game_over"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType `json:"type"`
	Player string    `json:"player,omitempty"`
	Data   any       `json:"data,omitempty"`
}
