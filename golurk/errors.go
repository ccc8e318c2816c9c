package golurk

import (
	"errors"
	"fmt"
)

// ErrorKind groups battle errors by who is at fault. None of them are fatal.
type ErrorKind int

const (
	ERRKIND_NONE ErrorKind = iota
	// The request named something that doesn't exist or broke a roster rule
	ERRKIND_VALIDATION
	// The request came from the player whose turn it isn't
	ERRKIND_TURN
	// The battle is in the wrong state for the request
	ERRKIND_STATE
)

func (k ErrorKind) String() string {
	switch k {
	case ERRKIND_VALIDATION:
		return "validation"
	case ERRKIND_TURN:
		return "turn"
	case ERRKIND_STATE:
		return "state"
	default:
		return "none"
	}
}

var (
	ErrRosterFull      = errors.New("roster is full")
	ErrDuplicateName   = errors.New("a pokemon with that name is already on the roster")
	ErrNotInRoster     = errors.New("pokemon is not on the roster")
	ErrFainted         = errors.New("pokemon has fainted")
	ErrAlreadyActive   = errors.New("pokemon is already active")
	ErrItemNotOwned    = errors.New("item is not in the inventory")
	ErrItemOnCooldown  = errors.New("items are on cooldown")
	ErrItemNoEffect    = errors.New("item would have no effect")
	ErrUnknownMove     = errors.New("pokemon does not know that move")
	ErrInvalidMove     = errors.New("invalid move")
	ErrInvalidPokemon  = errors.New("invalid pokemon")
	ErrUnknownPlayer   = errors.New("player is not part of this battle")
	ErrSamePlayer      = errors.New("a player cannot battle themselves")
	ErrAlreadyInBattle = errors.New("player is already in a battle")
	ErrNotInBattle     = errors.New("player is not in a battle")

	ErrNotYourTurn = errors.New("not your turn")

	ErrNotInProgress  = errors.New("battle not in progress")
	ErrAlreadyStarted = errors.New("battle has already started")
	ErrNotReady       = errors.New("both players need a full team to start")
	ErrInvariant      = errors.New("battle invariant violated")
)

// BattleError is the error type returned by everything in the engine that can be rejected.
// Err is always one of the sentinel errors above so callers can use errors.Is.
type BattleError struct {
	Kind   ErrorKind
	Err    error
	Detail string
}

func (e *BattleError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Err)
	}

	return fmt.Sprintf("%s error: %s: %s", e.Kind, e.Err, e.Detail)
}

func (e *BattleError) Unwrap() error {
	return e.Err
}

func validationError(err error, detailFmt string, a ...any) error {
	return &BattleError{Kind: ERRKIND_VALIDATION, Err: err, Detail: fmt.Sprintf(detailFmt, a...)}
}

func turnError(err error, detailFmt string, a ...any) error {
	return &BattleError{Kind: ERRKIND_TURN, Err: err, Detail: fmt.Sprintf(detailFmt, a...)}
}

func stateError(err error, detailFmt string, a ...any) error {
	return &BattleError{Kind: ERRKIND_STATE, Err: err, Detail: fmt.Sprintf(detailFmt, a...)}
}

// ErrorCode gets the kind of a battle error, ERRKIND_NONE for nil or foreign errors
func ErrorCode(err error) ErrorKind {
	var battleErr *BattleError
	if errors.As(err, &battleErr) {
		return battleErr.Kind
	}

	return ERRKIND_NONE
}
