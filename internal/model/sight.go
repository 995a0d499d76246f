package model

import (
	"strings"

	"github.com/benbeisheim/fowchess-backend/internal/fen"
)

// Sight is the set of squares c can see: the squares its pieces stand on and
// every destination of its moves. Rays stop at the first piece they meet, so
// nothing behind a blocker is seen.
func (b *Board) Sight(c Color) SquareSet {
	var sight SquareSet
	for _, piece := range b.Pieces(c) {
		sight.Add(piece.Position)
	}
	for _, moves := range b.LegalMoves(c) {
		for _, m := range moves {
			sight.Add(m.To)
		}
	}
	return sight
}

// ToFOWFEN serializes the position as seen by observer. Hidden squares are
// written as 'U', the halfmove clock is always 0, only the observer's
// castling rights are shown and the en passant square only when in sight.
func (b *Board) ToFOWFEN(observer Color) string {
	sight := b.Sight(observer)
	rec := &fen.Record{
		SideToMove:     b.sideToMove.fenLetter(),
		Castling:       castlingString(b.castling[White], b.castling[Black], observer == White, observer == Black),
		EnPassant:      "-",
		FullmoveNumber: b.fullmoveNumber,
	}
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			pos := Position{File: file, Rank: rank}
			cell := fen.Unknown
			if sight.Has(pos) {
				cell = fen.Blank
				if p := b.PieceAt(pos); p != nil {
					cell = p.Glyph()
				}
			}
			rec.Placement[8-rank][file-1] = cell
		}
	}
	if b.enPassant != nil && sight.Has(*b.enPassant) {
		rec.EnPassant = b.enPassant.String()
	}
	return fen.Format(rec)
}

// HiddenFEN is the position as seen by someone with no pieces on the board:
// every square unknown and no castling, en passant or halfmove information.
func (b *Board) HiddenFEN() string {
	rec := &fen.Record{
		SideToMove:     b.sideToMove.fenLetter(),
		Castling:       "-",
		EnPassant:      "-",
		FullmoveNumber: b.fullmoveNumber,
	}
	for row := range rec.Placement {
		for col := range rec.Placement[row] {
			rec.Placement[row][col] = fen.Unknown
		}
	}
	return fen.Format(rec)
}

// String draws the side to move's fog-of-war view, rank 8 first. Empty
// squares are dots and hidden ones 'U'.
func (b *Board) String() string {
	grid, err := RenderFOW(b.fowFEN[b.sideToMove])
	if err != nil {
		return err.Error()
	}
	return grid
}

// RenderFOW draws a fog-of-war FEN as an 8x8 text grid.
func RenderFOW(fowFEN string) (string, error) {
	rec, err := fen.Parse(fowFEN, fen.WithUnknown())
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, row := range rec.Placement {
		for _, cell := range row {
			if cell == fen.Blank {
				cell = '.'
			}
			sb.WriteByte(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
