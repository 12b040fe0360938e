package engine

import (
	"encoding/json"
	"fmt"

	"hexhaven/internal/board"
)

// EffectKind tags the variants of Effect on the wire.
type EffectKind string

const (
	KindCostOverride      EffectKind = "cost_override"
	KindCostDelta         EffectKind = "cost_delta"
	KindFreeBuild         EffectKind = "free_build"
	KindProductionDelta   EffectKind = "production_delta"
	KindProductionHalt    EffectKind = "production_halt"
	KindNegateNextLoss    EffectKind = "negate_next_loss"
	KindTradeRateOverride EffectKind = "trade_rate_override"
	KindAdjacencyWaiver   EffectKind = "adjacency_waiver"
)

// Effect is one modifier held by a player. The set of variants is closed:
// only the types in this file implement it.
type Effect interface {
	Kind() EffectKind
}

// CostOverride replaces the working cost of Piece before deltas apply.
type CostOverride struct {
	Piece Piece       `json:"piece"`
	Cost  ResourceSet `json:"cost"`
}

// CostDelta adds Delta (possibly negative) to the cost of Piece. A OneTime
// delta is consumed by the next build of that piece.
type CostDelta struct {
	Piece   Piece       `json:"piece"`
	Delta   ResourceSet `json:"delta"`
	OneTime bool        `json:"one_time,omitempty"`
}

// FreeBuild makes the next Credits builds of Piece cost nothing.
type FreeBuild struct {
	Piece   Piece `json:"piece"`
	Credits int   `json:"credits"`
}

// ProductionDelta changes what each of the owner's structures yields from
// hexes of Terrain, or from the single hex Hex when set.
type ProductionDelta struct {
	Terrain board.Terrain `json:"terrain,omitempty"`
	Hex     board.HexID   `json:"hex,omitempty"`
	Delta   int           `json:"delta"`
}

// ProductionHalt stops the owner's production of Terrain, or of everything
// when Terrain is empty.
type ProductionHalt struct {
	Terrain board.Terrain `json:"terrain,omitempty"`
}

// NegateNextLoss cancels the next resource-removal effect against the owner.
type NegateNextLoss struct{}

// TradeRateOverride sets the owner's bank rate for Resource, or for every
// resource when Resource is empty. A OneTime override is consumed by the
// next trade it makes cheaper.
type TradeRateOverride struct {
	Resource board.Terrain `json:"resource,omitempty"`
	Rate     int           `json:"rate"`
	OneTime  bool          `json:"one_time,omitempty"`
}

// AdjacencyWaiver lifts the road-adjacency requirement for Piece, or for
// roads and settlements alike when Piece is empty.
type AdjacencyWaiver struct {
	Piece Piece `json:"piece,omitempty"`
}

func (CostOverride) Kind() EffectKind      { return KindCostOverride }
func (CostDelta) Kind() EffectKind         { return KindCostDelta }
func (FreeBuild) Kind() EffectKind         { return KindFreeBuild }
func (ProductionDelta) Kind() EffectKind   { return KindProductionDelta }
func (ProductionHalt) Kind() EffectKind    { return KindProductionHalt }
func (NegateNextLoss) Kind() EffectKind    { return KindNegateNextLoss }
func (TradeRateOverride) Kind() EffectKind { return KindTradeRateOverride }
func (AdjacencyWaiver) Kind() EffectKind   { return KindAdjacencyWaiver }

// ActiveEffect is an Effect in play. TurnsLeft counts down at the start of
// the owner's turn and RollsLeft after every dice roll; a zero counter means
// the effect is not timed that way.
type ActiveEffect struct {
	ID        int    `json:"id"`
	Owner     string `json:"owner"`
	Card      string `json:"card"`
	TurnsLeft int    `json:"turns_left,omitempty"`
	RollsLeft int    `json:"rolls_left,omitempty"`
	Effect    Effect `json:"-"`
}

type activeEffectJSON struct {
	ID        int             `json:"id"`
	Owner     string          `json:"owner"`
	Card      string          `json:"card"`
	TurnsLeft int             `json:"turns_left,omitempty"`
	RollsLeft int             `json:"rolls_left,omitempty"`
	Kind      EffectKind      `json:"kind"`
	Data      json.RawMessage `json:"data"`
}

func (a ActiveEffect) MarshalJSON() ([]byte, error) {
	if a.Effect == nil {
		return nil, fmt.Errorf("effect %d has no payload", a.ID)
	}
	data, err := json.Marshal(a.Effect)
	if err != nil {
		return nil, err
	}
	return json.Marshal(activeEffectJSON{
		ID:        a.ID,
		Owner:     a.Owner,
		Card:      a.Card,
		TurnsLeft: a.TurnsLeft,
		RollsLeft: a.RollsLeft,
		Kind:      a.Effect.Kind(),
		Data:      data,
	})
}

func (a *ActiveEffect) UnmarshalJSON(b []byte) error {
	var raw activeEffectJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	eff, err := decodeEffect(raw.Kind, raw.Data)
	if err != nil {
		return fmt.Errorf("effect %d: %w", raw.ID, err)
	}
	*a = ActiveEffect{
		ID:        raw.ID,
		Owner:     raw.Owner,
		Card:      raw.Card,
		TurnsLeft: raw.TurnsLeft,
		RollsLeft: raw.RollsLeft,
		Effect:    eff,
	}
	return nil
}

func decodeEffect(kind EffectKind, data json.RawMessage) (Effect, error) {
	var err error
	switch kind {
	case KindCostOverride:
		var e CostOverride
		err = json.Unmarshal(data, &e)
		return e, err
	case KindCostDelta:
		var e CostDelta
		err = json.Unmarshal(data, &e)
		return e, err
	case KindFreeBuild:
		var e FreeBuild
		err = json.Unmarshal(data, &e)
		return e, err
	case KindProductionDelta:
		var e ProductionDelta
		err = json.Unmarshal(data, &e)
		return e, err
	case KindProductionHalt:
		var e ProductionHalt
		err = json.Unmarshal(data, &e)
		return e, err
	case KindNegateNextLoss:
		return NegateNextLoss{}, nil
	case KindTradeRateOverride:
		var e TradeRateOverride
		err = json.Unmarshal(data, &e)
		return e, err
	case KindAdjacencyWaiver:
		var e AdjacencyWaiver
		err = json.Unmarshal(data, &e)
		return e, err
	default:
		return nil, fmt.Errorf("unknown effect kind %q", kind)
	}
}
