package model

import "fmt"

// Position is a board square. File and Rank run 1..8; values outside that
// range are allowed so callers can step off the board and test Valid after.
type Position struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

func (p Position) Valid() bool {
	return p.File >= 1 && p.File <= 8 && p.Rank >= 1 && p.Rank <= 8
}

// Offset returns the square df files and dr ranks away.
func (p Position) Offset(df, dr int) Position {
	return Position{File: p.File + df, Rank: p.Rank + dr}
}

func (p Position) fileLetter() string {
	return fmt.Sprintf("%c", 'a'+p.File-1)
}

// String returns the algebraic square, e.g. "e4".
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.File-1, p.Rank)
}

// ParsePosition reads an algebraic square such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, &InvalidPositionError{Input: s}
	}
	f := s[0] | 0x20
	r := s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return Position{}, &InvalidPositionError{Input: s}
	}
	return Position{File: int(f-'a') + 1, Rank: int(r-'1') + 1}, nil
}

func (p Position) index() int {
	return (p.Rank-1)*8 + (p.File - 1)
}

// SquareSet is a set of valid squares packed into a bitmask, a1 = bit 0.
type SquareSet uint64

func (s *SquareSet) Add(p Position) {
	if p.Valid() {
		*s |= 1 << uint(p.index())
	}
}

func (s SquareSet) Has(p Position) bool {
	return p.Valid() && s&(1<<uint(p.index())) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	n := 0
	for ; s != 0; s &= s - 1 {
		n++
	}
	return n
}
