package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction is returned for any action that the current turn does not allow.
	// The game is left exactly as it was.
	ErrInvalidAction = errors.New("invalid action")
	// ErrEmptySource is returned when drawing from an empty deck or discard pile
	ErrEmptySource = errors.New("card source is empty")
	// ErrInvalidState is returned when a snapshot cannot be a real game
	ErrInvalidState = errors.New("invalid game state")

	ErrTooFewPlayers  = fmt.Errorf("minimum of %d players required", MinPlayers)
	ErrTooManyPlayers = fmt.Errorf("maximum of %d players allowed", MaxPlayers)
	ErrEmptyName      = errors.New("player name must not be empty")
	ErrRoundNotOver   = errors.New("round is not over")
	ErrGameOver       = errors.New("game is already over")
)

func invalidAction(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, fmt.Sprintf(format, a...))
}

func invalidState(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, a...))
}
