package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourTurn           = errors.New("not your turn")
	ErrInvalidAction         = errors.New("invalid action")
	ErrInvalidTarget         = errors.New("invalid target")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrWrongPhase            = errors.New("wrong phase for this action")
	ErrIllegalPlacement      = errors.New("illegal placement")
	ErrNoPiecesLeft          = errors.New("no pieces of that kind left")
	ErrInsufficientResources = errors.New("not enough resources")
	ErrMustRoll              = errors.New("roll the dice first")
	ErrAlreadyRolled         = errors.New("already rolled this turn")
	ErrRobberPending         = errors.New("move the robber first")
	ErrOmensDisabled         = errors.New("omens are not enabled")
	ErrAlreadyDrew           = errors.New("already drew an omen this turn")
	ErrAlreadyPlayed         = errors.New("already played an omen this turn")
	ErrHandFull              = errors.New("omen hand is full")
	ErrDeckEmpty             = errors.New("omen deck and discard are empty")
	ErrCardNotInHand         = errors.New("card not in hand")
	ErrUnknownCard           = errors.New("unknown omen card")
)

// InsufficientResourcesError reports exactly what a player is short of.
type InsufficientResourcesError struct {
	Missing ResourceSet
}

func (e *InsufficientResourcesError) Error() string {
	return fmt.Sprintf("not enough resources: missing %s", e.Missing)
}

func (e *InsufficientResourcesError) Unwrap() error {
	return ErrInsufficientResources
}
