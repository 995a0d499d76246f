// Package fen reads and writes Forsyth-Edwards Notation records, including the
// fog-of-war flavour where hidden squares carry the glyph 'U'.
package fen

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const (
	// Blank marks an empty cell in a placement grid.
	Blank byte = ' '
	// Unknown marks a square hidden from the observer in a fog-of-war FEN.
	Unknown byte = 'U'
)

const pieceGlyphs = "kqbnrpKQBNRP"

// Placement is a board grid, row 0 holding rank 8 and column 0 holding file a.
type Placement [8][8]byte

// Record is a parsed FEN string. Fields other than the placement are kept
// verbatim apart from the two counters.
type Record struct {
	Placement      Placement
	SideToMove     string
	Castling       string
	EnPassant      string
	HalfmoveClock  int
	FullmoveNumber int
}

type parseOptions struct {
	allowUnknown bool
}

// Option changes how Parse accepts its input.
type Option func(*parseOptions)

// WithUnknown accepts the fog glyph 'U' inside the placement field.
func WithUnknown() Option {
	return func(o *parseOptions) {
		o.allowUnknown = true
	}
}

// Parse splits a six-field FEN string into a Record.
func Parse(s string, opts ...Option) (*Record, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	fields := strings.Split(s, " ")
	if len(fields) != 6 {
		return nil, &ParseError{Input: s, Field: "record", Reason: fmt.Sprintf("need 6 fields, got %d", len(fields))}
	}

	rec := &Record{}
	placement, err := parsePlacement(fields[0], o)
	if err != nil {
		err.Input = s
		return nil, err
	}
	rec.Placement = placement

	switch fields[1] {
	case "w", "b":
		rec.SideToMove = fields[1]
	default:
		return nil, &ParseError{Input: s, Field: "side to move", Reason: fmt.Sprintf("unknown color %q", fields[1])}
	}

	if fields[2] != "-" {
		if fields[2] == "" || strings.Trim(fields[2], "KQkq") != "" {
			return nil, &ParseError{Input: s, Field: "castling", Reason: fmt.Sprintf("invalid rights %q", fields[2])}
		}
	}
	rec.Castling = fields[2]

	if fields[3] != "-" && !isSquare(fields[3]) {
		return nil, &ParseError{Input: s, Field: "en passant", Reason: fmt.Sprintf("invalid square %q", fields[3])}
	}
	rec.EnPassant = fields[3]

	halfmove, err2 := strconv.Atoi(fields[4])
	if err2 != nil || halfmove < 0 {
		return nil, &ParseError{Input: s, Field: "halfmove clock", Reason: fmt.Sprintf("invalid value %q", fields[4])}
	}
	rec.HalfmoveClock = halfmove

	fullmove, err2 := strconv.Atoi(fields[5])
	if err2 != nil || fullmove < 1 {
		return nil, &ParseError{Input: s, Field: "fullmove number", Reason: fmt.Sprintf("invalid value %q", fields[5])}
	}
	rec.FullmoveNumber = fullmove

	return rec, nil
}

func parsePlacement(s string, o parseOptions) (Placement, *ParseError) {
	var grid Placement
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return grid, &ParseError{Field: "placement", Reason: fmt.Sprintf("need 8 ranks, got %d", len(ranks))}
	}
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			switch {
			case c >= '1' && c <= '8':
				n := int(c - '0')
				if col+n > 8 {
					return grid, &ParseError{Field: "placement", Reason: fmt.Sprintf("rank %q has more than 8 files", rank)}
				}
				for ; n > 0; n-- {
					grid[row][col] = Blank
					col++
				}
			case strings.IndexByte(pieceGlyphs, c) >= 0 || (o.allowUnknown && c == Unknown):
				if col >= 8 {
					return grid, &ParseError{Field: "placement", Reason: fmt.Sprintf("rank %q has more than 8 files", rank)}
				}
				grid[row][col] = c
				col++
			default:
				return grid, &ParseError{Field: "placement", Reason: fmt.Sprintf("invalid token %q in rank %q", c, rank)}
			}
		}
		if col != 8 {
			return grid, &ParseError{Field: "placement", Reason: fmt.Sprintf("rank %q has %d files", rank, col)}
		}
	}
	return grid, nil
}

func isSquare(s string) bool {
	if len(s) != 2 {
		return false
	}
	f := s[0] | 0x20
	return f >= 'a' && f <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// FormatPlacement writes a grid as the first FEN field, ranks 8 to 1, with
// runs of blanks collapsed into a single digit.
func FormatPlacement(grid Placement) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < 8; col++ {
			c := grid[row][col]
			if c == Blank || c == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	return sb.String()
}

// Format is the inverse of Parse.
func Format(rec *Record) string {
	return strings.Join([]string{
		FormatPlacement(rec.Placement),
		rec.SideToMove,
		rec.Castling,
		rec.EnPassant,
		strconv.Itoa(rec.HalfmoveClock),
		strconv.Itoa(rec.FullmoveNumber),
	}, " ")
}
