package model

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidPosition = errors.New("invalid position")
	ErrGameFull        = errors.New("game is full")
	ErrNotInGame       = errors.New("player not in game")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrGameOver        = errors.New("game is over")
	ErrAlreadyQueued   = errors.New("player already in queue")
)

// IllegalMoveError is returned when notation matches none of the moves
// currently available to the side to move.
type IllegalMoveError struct {
	SAN string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %q", e.SAN)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

// InvalidPositionError is returned when a square name is not [a-h][1-8].
type InvalidPositionError struct {
	Input string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid square %q", e.Input)
}

func (e *InvalidPositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}
