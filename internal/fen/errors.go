package fen

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every ParseError through errors.Is.
var ErrMalformed = errors.New("malformed fen")

// ParseError describes why a FEN string was rejected.
type ParseError struct {
	Input  string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fen: %s: %s (input %q)", e.Field, e.Reason, e.Input)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}
