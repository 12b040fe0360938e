package engine

import (
	"encoding/json"
	"fmt"
)

// GamePhase represents the current phase of the game state machine.
type GamePhase int

const (
	PhaseRollOrder GamePhase = iota // players roll to fix turn order
	PhaseSetup                      // two snake rounds of free placements
	PhasePlaying                    // main play
	PhaseEnded                      // someone reached the victory target
)

var phaseNames = map[GamePhase]string{
	PhaseRollOrder: "roll_order",
	PhaseSetup:     "setup",
	PhasePlaying:   "playing",
	PhaseEnded:     "ended",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

func (p GamePhase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *GamePhase) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for phase, name := range phaseNames {
		if name == s {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", s)
}
