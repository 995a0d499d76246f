package model

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) fenLetter() string {
	if c == White {
		return "w"
	}
	return "b"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// PieceType is one of the six chess pieces. NoPieceType marks an absent
// promotion.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var promotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

// Letter is the lowercase FEN/SAN glyph.
func (p PieceType) Letter() byte {
	switch p {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	}
	return 0
}

// Ordinal orders piece types for display only.
func (p PieceType) Ordinal() int {
	return int(p)
}

func (p PieceType) getPieceNotation() string {
	if p == Pawn || p == NoPieceType {
		return ""
	}
	return strings.ToUpper(string(p.Letter()))
}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	for t := NoPieceType; t <= King; t++ {
		if t.String() == string(text) {
			*p = t
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", text)
}

func pieceTypeFromLetter(c byte) PieceType {
	switch c | 0x20 {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	}
	return NoPieceType
}

// Piece is a single man on the board. The board owns every Piece and moves
// it in place, so a *Piece stays the same piece for the whole game.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
}

// Glyph is the FEN letter, uppercase for white.
func (p *Piece) Glyph() byte {
	c := p.Type.Letter()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// CanReach reports whether the piece could get to target in one ply by its
// movement pattern alone, with nothing standing in between. It does not care
// what sits on target.
func (p *Piece) CanReach(b *Board, target Position) bool {
	if !target.Valid() || target == p.Position {
		return false
	}
	df := target.File - p.Position.File
	dr := target.Rank - p.Position.Rank
	switch p.Type {
	case Pawn:
		dir := pawnDirection(p.Color)
		if df == 0 {
			if dr == dir {
				return true
			}
			return dr == 2*dir && p.Position.Rank == pawnStartRank(p.Color) && b.pathClear(p.Position, target)
		}
		return abs(df) == 1 && dr == dir
	case Knight:
		return (abs(df) == 1 && abs(dr) == 2) || (abs(df) == 2 && abs(dr) == 1)
	case Bishop:
		return abs(df) == abs(dr) && b.pathClear(p.Position, target)
	case Rook:
		return (df == 0 || dr == 0) && b.pathClear(p.Position, target)
	case Queen:
		return (df == 0 || dr == 0 || abs(df) == abs(dr)) && b.pathClear(p.Position, target)
	case King:
		return abs(df) <= 1 && abs(dr) <= 1
	}
	return false
}

func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func pawnStartRank(c Color) int {
	if c == White {
		return 2
	}
	return 7
}

func backRank(c Color) int {
	if c == White {
		return 1
	}
	return 8
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
