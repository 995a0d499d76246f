package model

import (
	"fmt"

	"github.com/benbeisheim/fowchess-backend/internal/fen"
)

// CastlingRights holds the two castling flags of one color.
type CastlingRights struct {
	Kingside  bool `json:"kingside"`
	Queenside bool `json:"queenside"`
}

// Board is the state of one game. It is mutated in place, one ply at a time,
// through ApplyMove and is not safe for concurrent use; Game serializes
// access for the server.
type Board struct {
	squares        [8][8]*Piece // [rank-1][file-1]
	castling       [2]CastlingRights
	sideToMove     Color
	enPassant      *Position
	halfmoveClock  int
	fullmoveNumber int

	// recomputed at the end of every mutation
	fen    string
	fowFEN [2]string
}

// NewBoard builds a board from a FEN string. An empty string gives the
// standard starting position.
func NewBoard(fenStr string) (*Board, error) {
	if fenStr == "" {
		fenStr = fen.StartFEN
	}
	rec, err := fen.Parse(fenStr)
	if err != nil {
		return nil, fmt.Errorf("new board: %w", err)
	}

	b := &Board{
		halfmoveClock:  rec.HalfmoveClock,
		fullmoveNumber: rec.FullmoveNumber,
	}
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			glyph := rec.Placement[8-rank][file-1]
			if glyph == fen.Blank {
				continue
			}
			color := White
			if glyph >= 'a' {
				color = Black
			}
			pos := Position{File: file, Rank: rank}
			b.put(&Piece{Type: pieceTypeFromLetter(glyph), Color: color, Position: pos})
		}
	}
	for _, c := range rec.Castling {
		switch c {
		case 'K':
			b.castling[White].Kingside = true
		case 'Q':
			b.castling[White].Queenside = true
		case 'k':
			b.castling[Black].Kingside = true
		case 'q':
			b.castling[Black].Queenside = true
		}
	}
	if rec.SideToMove == "b" {
		b.sideToMove = Black
	}
	if rec.EnPassant != "-" {
		ep, err := ParsePosition(rec.EnPassant)
		if err != nil {
			return nil, fmt.Errorf("new board: %w", err)
		}
		b.enPassant = &ep
	}
	b.refresh()
	return b, nil
}

// PieceAt returns the piece on p, or nil for an empty or off-board square.
func (b *Board) PieceAt(p Position) *Piece {
	if !p.Valid() {
		return nil
	}
	return b.squares[p.Rank-1][p.File-1]
}

// Pieces lists the pieces of c from a1 to h8.
func (b *Board) Pieces(c Color) []*Piece {
	var pieces []*Piece
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := b.squares[rank][file]; p != nil && p.Color == c {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func (b *Board) SideToMove() Color { return b.sideToMove }

func (b *Board) Castling(c Color) CastlingRights { return b.castling[c] }

// EnPassant returns the square skipped by last ply's double pawn push.
func (b *Board) EnPassant() (Position, bool) {
	if b.enPassant == nil {
		return Position{}, false
	}
	return *b.enPassant, true
}

func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// FEN returns the cached full FEN of the current position.
func (b *Board) FEN() string { return b.fen }

// FOWFEN returns the cached fog-of-war FEN as seen by c.
func (b *Board) FOWFEN(c Color) string { return b.fowFEN[c] }

func (b *Board) put(p *Piece) {
	b.squares[p.Position.Rank-1][p.Position.File-1] = p
}

func (b *Board) remove(pos Position) {
	if pos.Valid() {
		b.squares[pos.Rank-1][pos.File-1] = nil
	}
}

// pathClear reports whether every square strictly between from and to is
// empty. from and to must share a file, rank or diagonal.
func (b *Board) pathClear(from, to Position) bool {
	df, dr := sign(to.File-from.File), sign(to.Rank-from.Rank)
	for p := from.Offset(df, dr); p != to; p = p.Offset(df, dr) {
		if !p.Valid() {
			return false
		}
		if b.PieceAt(p) != nil {
			return false
		}
	}
	return true
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// ApplyMove plays m, which must come from this board's own generator for the
// side to move, and reports the winner when m captured a king. Legality is
// not checked.
func (b *Board) ApplyMove(m Move) (winner Color, over bool) {
	piece := m.Piece
	from := piece.Position

	b.remove(from)
	if m.Capture != nil {
		b.remove(m.Capture.Position)
	}

	b.enPassant = nil
	if piece.Type == Pawn && abs(m.To.Rank-from.Rank) == 2 {
		b.enPassant = &Position{File: from.File, Rank: (from.Rank + m.To.Rank) / 2}
	}

	piece.Position = m.To
	b.put(piece)
	if m.Promotion != NoPieceType {
		piece.Type = m.Promotion
	}

	if rook := m.CastlingRook; rook != nil {
		b.remove(rook.Position)
		file := 4
		if rook.Position.File > from.File {
			file = 6
		}
		rook.Position = Position{File: file, Rank: m.To.Rank}
		b.put(rook)
	}

	b.updateCastling(piece, from, m.Capture)

	b.sideToMove = b.sideToMove.Opponent()
	if b.sideToMove == White {
		b.fullmoveNumber++
	}
	if piece.Type == Pawn || m.Capture != nil {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}

	b.refresh()

	if m.Capture != nil && m.Capture.Type == King {
		return piece.Color, true
	}
	return White, false
}

func (b *Board) updateCastling(piece *Piece, from Position, captured *Piece) {
	switch piece.Type {
	case King:
		b.castling[piece.Color] = CastlingRights{}
	case Rook:
		clearCornerRight(&b.castling[piece.Color], piece.Color, from)
	}
	if captured != nil && captured.Type == Rook {
		clearCornerRight(&b.castling[captured.Color], captured.Color, captured.Position)
	}
}

func clearCornerRight(r *CastlingRights, c Color, p Position) {
	if p.Rank != backRank(c) {
		return
	}
	switch p.File {
	case 8:
		r.Kingside = false
	case 1:
		r.Queenside = false
	}
}

// PushSAN plays the move of the side to move whose notation is exactly san.
// The board is left untouched when nothing matches.
func (b *Board) PushSAN(san string) (winner Color, over bool, err error) {
	m, err := b.FindSAN(san)
	if err != nil {
		return White, false, err
	}
	winner, over = b.ApplyMove(m)
	return winner, over, nil
}

// FindSAN returns the generated move of the side to move whose notation is
// exactly san.
func (b *Board) FindSAN(san string) (Move, error) {
	for _, m := range b.Moves(b.sideToMove) {
		if m.SAN() == san {
			return m, nil
		}
	}
	return Move{}, &IllegalMoveError{SAN: san}
}

// ToFEN serializes the full position.
func (b *Board) ToFEN() string {
	rec := &fen.Record{
		SideToMove:     b.sideToMove.fenLetter(),
		Castling:       castlingString(b.castling[White], b.castling[Black], true, true),
		EnPassant:      "-",
		HalfmoveClock:  b.halfmoveClock,
		FullmoveNumber: b.fullmoveNumber,
	}
	for rank := 1; rank <= 8; rank++ {
		for file := 1; file <= 8; file++ {
			cell := fen.Blank
			if p := b.squares[rank-1][file-1]; p != nil {
				cell = p.Glyph()
			}
			rec.Placement[8-rank][file-1] = cell
		}
	}
	if b.enPassant != nil {
		rec.EnPassant = b.enPassant.String()
	}
	return fen.Format(rec)
}

func castlingString(white, black CastlingRights, withWhite, withBlack bool) string {
	s := ""
	if withWhite && white.Kingside {
		s += "K"
	}
	if withWhite && white.Queenside {
		s += "Q"
	}
	if withBlack && black.Kingside {
		s += "k"
	}
	if withBlack && black.Queenside {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

func (b *Board) refresh() {
	b.fen = b.ToFEN()
	b.fowFEN[White] = b.ToFOWFEN(White)
	b.fowFEN[Black] = b.ToFOWFEN(Black)
}
