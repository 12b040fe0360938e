package omens_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"hexhaven/internal/board"
	"hexhaven/internal/engine"
	"hexhaven/internal/engine/omens"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5eed))
}

// newTestGame returns an Omens game already in main play: p1 to act, dice
// rolled, an empty board.
func newTestGame(t *testing.T) (*engine.Engine, *engine.State) {
	t.Helper()
	b, err := board.Generate(board.DefaultGenConfig(), newRand(5))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	e := engine.New(omens.NewRegistry(), newRand(9))
	cfg := engine.DefaultConfig()
	cfg.Omens = true
	s, err := e.NewGame(b, []engine.Player{
		engine.NewPlayer("p1", "Ann"),
		engine.NewPlayer("p2", "Bo"),
	}, cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	s.Phase = engine.PhasePlaying
	s.OrderGroups = nil
	s.OrderRolls = nil
	s.TurnOrder = []int{0, 1}
	s.CurrentPlayer = 0
	s.HasRolled = true
	return e, s
}

func mustApply(t *testing.T, e *engine.Engine, s *engine.State, pid string, a engine.Action) (*engine.State, []engine.Event) {
	t.Helper()
	next, events, err := e.Apply(s, pid, a)
	if err != nil {
		t.Fatalf("%s %s: %v", pid, a.Type, err)
	}
	return next, events
}

func hasEvent(events []engine.Event, typ engine.EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

// play puts card in p1's hand and plays it.
func play(t *testing.T, e *engine.Engine, s *engine.State, card, target string) (*engine.State, []engine.Event) {
	t.Helper()
	p := s.GetPlayer("p1")
	p.Hand = append(p.Hand, card)
	p.PlayedOmen = false
	return mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionPlayOmen, Card: card, Target: target})
}

func countKind(s *engine.State, player string, kind engine.EffectKind) int {
	n := 0
	for _, a := range s.Omens.EffectsOf(player) {
		if a.Effect.Kind() == kind {
			n++
		}
	}
	return n
}

func TestRegistryComposition(t *testing.T) {
	reg := omens.NewRegistry()
	cards := reg.Cards()
	if len(cards) != 30 {
		t.Fatalf("expected 30 card types, got %d", len(cards))
	}
	beneficial := 0
	seen := map[string]bool{}
	for _, c := range cards {
		if seen[c.ID()] {
			t.Errorf("duplicate card %s", c.ID())
		}
		seen[c.ID()] = true
		if c.Beneficial() {
			beneficial++
		}
		if !c.Beneficial() && c.NeedsTarget() {
			t.Errorf("%s resolves on draw and cannot take a target", c.ID())
		}
	}
	if beneficial != 15 {
		t.Fatalf("expected 15 beneficial types, got %d", beneficial)
	}

	counts := map[string]int{}
	for _, id := range reg.DeckList() {
		counts[id]++
	}
	for _, c := range cards {
		want := 1
		if c.Beneficial() {
			want = 2
		}
		if counts[c.ID()] != want {
			t.Errorf("%s: %d copies, want %d", c.ID(), counts[c.ID()], want)
		}
	}
	if _, err := reg.Get("no_such_card"); !errors.Is(err, engine.ErrUnknownCard) {
		t.Fatalf("unknown card: got %v", err)
	}
}

func TestDrawBeneficialGoesToHand(t *testing.T) {
	e, s := newTestGame(t)
	s.Omens.Deck = []string{"heralds_acclaim"}
	s.GetPlayer("p1").Resources = engine.OmenDrawCost()

	s, events := mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionDrawOmen})
	if !hasEvent(events, engine.EventOmenDrawn) {
		t.Fatal("expected omen_drawn")
	}
	p := s.GetPlayer("p1")
	if !p.HandHas("heralds_acclaim") || p.Resources.Total() != 0 {
		t.Fatalf("hand %v, resources %s", p.Hand, p.Resources)
	}
	if _, _, err := e.Apply(s, "p1", engine.Action{Type: engine.ActionDrawOmen}); !errors.Is(err, engine.ErrAlreadyDrew) {
		t.Fatalf("second draw: got %v", err)
	}

	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionPlayOmen, Card: "heralds_acclaim"})
	if got := s.GetPlayer("p1").VictoryPoints; got != 1 {
		t.Fatalf("VP after Herald's Acclaim: got %d", got)
	}
	if len(s.Omens.Discard) != 1 || len(s.GetPlayer("p1").Hand) != 0 {
		t.Fatalf("discard %v, hand %v", s.Omens.Discard, s.GetPlayer("p1").Hand)
	}
	if _, _, err := e.Apply(s, "p1", engine.Action{Type: engine.ActionPlayOmen, Card: "heralds_acclaim"}); !errors.Is(err, engine.ErrAlreadyPlayed) {
		t.Fatalf("second play: got %v", err)
	}
}

func TestDrawDetrimentalResolvesImmediately(t *testing.T) {
	e, s := newTestGame(t)
	s.Omens.Deck = []string{"termites"}
	s.GetPlayer("p1").Resources = engine.OmenDrawCost().Add(engine.ResourceSet{board.Wood: 3})

	s, events := mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionDrawOmen})
	if !hasEvent(events, engine.EventOmenEffect) {
		t.Fatal("expected omen_effect")
	}
	p := s.GetPlayer("p1")
	if p.Resources[board.Wood] != 0 || len(p.Hand) != 0 {
		t.Fatalf("wood %d, hand %v", p.Resources[board.Wood], p.Hand)
	}
	if len(s.Omens.Discard) != 1 || s.Omens.Discard[0] != "termites" {
		t.Fatalf("discard: %v", s.Omens.Discard)
	}
}

func TestDrawRules(t *testing.T) {
	e, s := newTestGame(t)
	p := s.GetPlayer("p1")

	p.Resources = engine.ResourceSet{board.Wheat: 1}
	_, _, err := e.Apply(s, "p1", engine.Action{Type: engine.ActionDrawOmen})
	if !errors.Is(err, engine.ErrInsufficientResources) {
		t.Fatalf("draw without sheep and ore: got %v", err)
	}

	p.Resources = engine.OmenDrawCost()
	p.Hand = []string{"tithe", "tithe", "windfall", "windfall", "pathfinder"}
	if _, _, err := e.Apply(s, "p1", engine.Action{Type: engine.ActionDrawOmen}); !errors.Is(err, engine.ErrHandFull) {
		t.Fatalf("draw with a full hand: got %v", err)
	}

	p.Hand = nil
	s.Omens.Deck, s.Omens.Discard = nil, nil
	if _, _, err := e.Apply(s, "p1", engine.Action{Type: engine.ActionDrawOmen}); !errors.Is(err, engine.ErrDeckEmpty) {
		t.Fatalf("draw from nothing: got %v", err)
	}
	if p.Resources.Total() != 3 {
		t.Fatal("a rejected draw must not charge")
	}

	s.Omens.Discard = []string{"ward_of_plenty"}
	s, events := mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionDrawOmen})
	if !hasEvent(events, engine.EventDeckReshuffled) {
		t.Fatal("expected the discard to be reshuffled")
	}
	if !s.GetPlayer("p1").HandHas("ward_of_plenty") {
		t.Fatal("reshuffled card should be drawn")
	}

	if _, _, err := e.Apply(s, "p1", engine.Action{Type: engine.ActionPlayOmen, Card: "tithe"}); !errors.Is(err, engine.ErrCardNotInHand) {
		t.Fatalf("play a card not held: got %v", err)
	}
}

func TestOmensDisabled(t *testing.T) {
	e, s := newTestGame(t)
	s.Omens = nil
	s.GetPlayer("p1").Resources = engine.OmenDrawCost()
	if _, _, err := e.Apply(s, "p1", engine.Action{Type: engine.ActionDrawOmen}); !errors.Is(err, engine.ErrOmensDisabled) {
		t.Fatalf("got %v", err)
	}
}

func TestEffectiveCostComposition(t *testing.T) {
	e, s := newTestGame(t)

	s, _ = play(t, e, s, "guild_pricing", "")
	want := engine.ResourceSet{board.Wood: 1, board.Brick: 1, board.Wheat: 1}
	if got := engine.EffectiveCost(s, "p1", engine.PieceSettlement); got.String() != want.String() {
		t.Fatalf("override: got %s, want %s", got, want)
	}

	// Inflation adds on top of the override.
	if _, err := (omens.Inflation{}).Apply(s, "p1", "", newRand(1)); err != nil {
		t.Fatal(err)
	}
	want[board.Wheat] = 2
	if got := engine.EffectiveCost(s, "p1", engine.PieceSettlement); got.String() != want.String() {
		t.Fatalf("override then delta: got %s, want %s", got, want)
	}
	if got := engine.EffectiveCost(s, "p2", engine.PieceSettlement); got.String() != engine.BuildCost(engine.PieceSettlement).String() {
		t.Fatalf("p2 must pay the base cost, got %s", got)
	}

	s, _ = play(t, e, s, "homestead_grant", "")
	if got := engine.EffectiveCost(s, "p1", engine.PieceSettlement); got.Total() != 0 {
		t.Fatalf("free build: got %s", got)
	}

	// Build the free settlement; the credit is spent and the surcharge stays.
	var v, edge int
	for _, id := range s.VertexIDs() {
		if engine.CanPlaceSettlement(s, id, "") {
			v = id
			break
		}
	}
	for _, id := range s.EdgeIDs() {
		if s.Edges[id].Touches(v) {
			edge = id
			break
		}
	}
	ed := s.Edges[edge]
	ed.Road = "p1"
	s.Edges[edge] = ed

	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionBuildSettlement, Vertex: v})
	if countKind(s, "p1", engine.KindFreeBuild) != 0 {
		t.Fatal("free-build credit should be spent")
	}
	if got := engine.EffectiveCost(s, "p1", engine.PieceSettlement); got.String() != want.String() {
		t.Fatalf("after free build: got %s, want %s", got, want)
	}
}

func TestOneTimeDiscount(t *testing.T) {
	e, s := newTestGame(t)
	v := s.VertexIDs()[12]
	vert := s.Vertices[v]
	vert.Structure = &engine.Structure{Owner: "p1", Kind: engine.Settlement}
	s.Vertices[v] = vert

	s, _ = play(t, e, s, "masons_favor", "")
	cost := engine.EffectiveCost(s, "p1", engine.PieceCity)
	if cost[board.Ore] != 2 || cost[board.Wheat] != 2 {
		t.Fatalf("discounted city: got %s", cost)
	}
	s.GetPlayer("p1").Resources = cost.Clone()
	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionBuildCity, Vertex: v})
	if got := engine.EffectiveCost(s, "p1", engine.PieceCity); got[board.Ore] != 3 {
		t.Fatalf("discount should be used up, city costs %s", got)
	}
}

func TestFreeBuildConsumesOnlyOwnCredit(t *testing.T) {
	e, s := newTestGame(t)
	if _, err := (omens.BuildersBlessing{}).Apply(s, "p2", "", newRand(1)); err != nil {
		t.Fatal(err)
	}
	s, _ = play(t, e, s, "builders_blessing", "")

	edge := s.EdgeIDs()[0]
	// Give p1 a settlement so the road is connected.
	v := s.Edges[edge].Vertices[0]
	vert := s.Vertices[v]
	vert.Structure = &engine.Structure{Owner: "p1", Kind: engine.Settlement}
	s.Vertices[v] = vert

	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionBuildRoad, Edge: edge})
	for _, a := range s.Omens.Active {
		f, ok := a.Effect.(engine.FreeBuild)
		if !ok {
			continue
		}
		want := 2
		if a.Owner == "p1" {
			want = 1
		}
		if f.Credits != want {
			t.Errorf("%s has %d credits, want %d", a.Owner, f.Credits, want)
		}
	}
}

func TestNegateGuardConsumesOnePerLoss(t *testing.T) {
	e, s := newTestGame(t)
	rng := newRand(3)
	s.GetPlayer("p1").Resources = engine.ResourceSet{board.Wood: 2, board.Ore: 2}

	s, _ = play(t, e, s, "ward_of_plenty", "")
	if _, err := (omens.WardOfPlenty{}).Apply(s, "p1", "", rng); err != nil {
		t.Fatal(err)
	}
	if countKind(s, "p1", engine.KindNegateNextLoss) != 2 {
		t.Fatal("expected two guards")
	}

	for want := 1; want >= 0; want-- {
		events, err := (omens.Flood{}).Apply(s, "p1", "", rng)
		if err != nil {
			t.Fatal(err)
		}
		if !hasEvent(events, engine.EventLossNegated) {
			t.Fatal("expected the loss to be negated")
		}
		if got := countKind(s, "p1", engine.KindNegateNextLoss); got != want {
			t.Fatalf("guards left: got %d, want %d", got, want)
		}
		if s.GetPlayer("p1").Resources.Total() != 4 {
			t.Fatal("a negated loss must not remove anything")
		}
	}

	if _, err := (omens.Flood{}).Apply(s, "p1", "", rng); err != nil {
		t.Fatal(err)
	}
	if got := s.GetPlayer("p1").Resources.Total(); got != 2 {
		t.Fatalf("unguarded flood: %d units left, want 2", got)
	}
}

func TestTaxCollectorHalves(t *testing.T) {
	_, s := newTestGame(t)
	s.GetPlayer("p1").Resources = engine.ResourceSet{board.Wood: 3, board.Sheep: 4}
	if _, err := (omens.TaxCollector{}).Apply(s, "p1", "", newRand(2)); err != nil {
		t.Fatal(err)
	}
	if got := s.GetPlayer("p1").Resources.Total(); got != 4 {
		t.Fatalf("7 units halved: got %d, want 4", got)
	}
}

func TestProductionEffectsExpireAfterRolls(t *testing.T) {
	e, s := newTestGame(t)
	var h board.Hex
	for _, x := range s.Hexes {
		if x.Terrain == board.Wheat {
			h = x
			break
		}
	}
	for _, id := range s.VertexIDs() {
		if vert := s.Vertices[id]; slices.Contains(vert.Hexes, h.ID) {
			vert.Structure = &engine.Structure{Owner: "p1", Kind: engine.Settlement}
			s.Vertices[id] = vert
			break
		}
	}

	s, _ = play(t, e, s, "fertile_fields", "")
	next, _ := engine.DistributeResources(s, h.Number)
	if got := next.GetPlayer("p1").Resources[board.Wheat]; got < 2 {
		t.Fatalf("boosted settlement: got %d wheat, want at least 2", got)
	}

	a, b := h.Number/2, h.Number-h.Number/2
	e.SetDice(func() [2]int { return [2]int{a, b} })
	for i := range 2 {
		s.HasRolled = false
		var events []engine.Event
		s, events = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionRoll})
		if expired := hasEvent(events, engine.EventEffectExpired); expired != (i == 1) {
			t.Fatalf("roll %d: expired=%v", i+1, expired)
		}
	}
	if countKind(s, "p1", engine.KindProductionDelta) != 0 {
		t.Fatal("Fertile Fields should be gone after two rolls")
	}
}

func TestTurnTimedEffectExpires(t *testing.T) {
	e, s := newTestGame(t)
	s, _ = play(t, e, s, "pathfinder", "")
	if countKind(s, "p1", engine.KindAdjacencyWaiver) != 1 {
		t.Fatal("expected a waiver")
	}
	if got := len(engine.PlaceableRoads(s, "p1")); got != len(s.Edges) {
		t.Fatalf("waiver: %d placeable roads, want all %d", got, len(s.Edges))
	}

	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionEndTurn})
	s.HasRolled = true
	s, events := mustApply(t, e, s, "p2", engine.Action{Type: engine.ActionEndTurn})
	if !hasEvent(events, engine.EventEffectExpired) {
		t.Fatal("waiver should expire at the start of p1's next turn")
	}
	if len(engine.PlaceableRoads(s, "p1")) != 0 {
		t.Fatal("no roads placeable without the waiver")
	}
}

func TestMerchantsCharterOneTrade(t *testing.T) {
	e, s := newTestGame(t)
	s, _ = play(t, e, s, "merchants_charter", "")
	if got := engine.TradeRate(s, "p1", board.Ore); got != 2 {
		t.Fatalf("charter rate: got %d", got)
	}
	s.GetPlayer("p1").Resources = engine.ResourceSet{board.Ore: 2}
	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionTrade, Give: board.Ore, Get: board.Brick})
	if got := engine.TradeRate(s, "p1", board.Ore); got != 4 {
		t.Fatalf("charter should be spent, rate %d", got)
	}
}

func holds(s *engine.State, player, card string) bool {
	return slices.ContainsFunc(s.Omens.EffectsOf(player), func(a engine.ActiveEffect) bool {
		return a.Card == card
	})
}

func TestMerchantsCharterKeptUnlessCheaper(t *testing.T) {
	e, s := newTestGame(t)
	s, _ = play(t, e, s, "merchants_charter", "")
	if _, err := (omens.Embargo{}).Apply(s, "p1", "", newRand(1)); err != nil {
		t.Fatalf("embargo: %v", err)
	}
	if got := engine.TradeRate(s, "p1", board.Ore); got != 5 {
		t.Fatalf("embargo after charter: got %d, want 5", got)
	}
	s.GetPlayer("p1").Resources = engine.ResourceSet{board.Ore: 5}
	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionTrade, Give: board.Ore, Get: board.Brick})
	if !holds(s, "p1", "merchants_charter") {
		t.Fatal("charter spent on a trade it did not cheapen")
	}

	// Played on top of the embargo, the charter wins and is spent.
	s, _ = play(t, e, s, "merchants_charter", "")
	s.GetPlayer("p1").Resources = engine.ResourceSet{board.Ore: 2}
	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionTrade, Give: board.Ore, Get: board.Brick})
	n := 0
	for _, a := range s.Omens.EffectsOf("p1") {
		if a.Card == "merchants_charter" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("want one charter left, have %d", n)
	}
}

func TestMerchantsCharterOverHarbor(t *testing.T) {
	e, s := newTestGame(t)
	var ore board.Harbor
	for _, h := range s.Harbors {
		if h.Type == board.HarborType(board.Ore) {
			ore = h
		}
	}
	if ore.Type == "" {
		t.Fatal("board lacks an ore harbor")
	}
	v := s.Vertices[ore.Vertices[0]]
	v.Structure = &engine.Structure{Owner: "p1", Kind: engine.Settlement}
	s.Vertices[ore.Vertices[0]] = v

	s, _ = play(t, e, s, "merchants_charter", "")
	s.GetPlayer("p1").Resources = engine.ResourceSet{board.Ore: 2}
	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionTrade, Give: board.Ore, Get: board.Wood})
	if !holds(s, "p1", "merchants_charter") {
		t.Fatal("charter spent on a 2:1 harbor trade")
	}
	if got := engine.TradeRate(s, "p1", board.Wheat); got != 2 {
		t.Fatalf("charter for wheat: got %d", got)
	}
}

func TestTargetedCards(t *testing.T) {
	e, s := newTestGame(t)

	p := s.GetPlayer("p1")
	p.Hand = []string{"windfall"}
	if _, _, err := e.Apply(s, "p1", engine.Action{Type: engine.ActionPlayOmen, Card: "windfall", Target: "desert"}); !errors.Is(err, engine.ErrInvalidTarget) {
		t.Fatalf("windfall of desert: got %v", err)
	}
	s, _ = mustApply(t, e, s, "p1", engine.Action{Type: engine.ActionPlayOmen, Card: "windfall", Target: string(board.Ore)})
	if got := s.GetPlayer("p1").Resources[board.Ore]; got != 2 {
		t.Fatalf("windfall: got %d ore", got)
	}

	if targets := (omens.Tithe{}).ValidTargets(s, "p1"); len(targets) != 0 {
		t.Fatalf("p2 holds nothing, targets %v", targets)
	}
	s.GetPlayer("p2").Resources = engine.ResourceSet{board.Sheep: 1}
	s, _ = play(t, e, s, "tithe", "p2")
	if s.GetPlayer("p2").Resources.Total() != 0 || s.GetPlayer("p1").Resources[board.Sheep] != 1 {
		t.Fatal("tithe should move the sheep")
	}

	if targets := (omens.BlessedHex{}).ValidTargets(s, "p1"); len(targets) != 0 {
		t.Fatalf("no structures, targets %v", targets)
	}
}

func TestEarthquakeDowngradesCity(t *testing.T) {
	_, s := newTestGame(t)
	v := s.VertexIDs()[3]
	vert := s.Vertices[v]
	vert.Structure = &engine.Structure{Owner: "p1", Kind: engine.City}
	s.Vertices[v] = vert
	p := s.GetPlayer("p1")
	p.VictoryPoints = 2
	p.Cities = 3

	if _, err := (omens.Earthquake{}).Apply(s, "p1", "", newRand(1)); err != nil {
		t.Fatal(err)
	}
	if s.Vertices[v].Structure.Kind != engine.Settlement {
		t.Fatal("city should be a settlement")
	}
	if p.VictoryPoints != 1 || p.Cities != 4 || p.Settlements != 4 {
		t.Fatalf("after earthquake: %d VP, %d cities, %d settlements", p.VictoryPoints, p.Cities, p.Settlements)
	}
}
