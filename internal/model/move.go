package model

import "strings"

// Move is one generated ply. Capture points at the captured piece, which is
// not on To for en passant. A Move is only meaningful against the board that
// generated it and until that board's next ApplyMove.
type Move struct {
	board *Board

	Piece        *Piece
	To           Position
	Capture      *Piece
	CastlingRook *Piece
	Promotion    PieceType
}

// From is the square the moving piece stands on before the move is applied.
func (m Move) From() Position {
	return m.Piece.Position
}

// SAN renders the move in algebraic notation against the pre-move board.
func (m Move) SAN() string {
	if m.CastlingRook != nil {
		if m.CastlingRook.Position.File > m.Piece.Position.File {
			return "O-O"
		}
		return "O-O-O"
	}

	var sb strings.Builder
	from := m.From()
	if m.Piece.Type != Pawn {
		sb.WriteString(m.Piece.Type.getPieceNotation())
		sb.WriteString(m.disambiguation())
	}
	if m.Capture != nil {
		if m.Piece.Type == Pawn {
			sb.WriteString(from.fileLetter())
		}
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	if m.Promotion != NoPieceType {
		sb.WriteByte('=')
		sb.WriteString(m.Promotion.getPieceNotation())
	}
	return sb.String()
}

func (m Move) String() string {
	return m.SAN()
}

// disambiguation returns the origin file, rank or both needed when another
// piece of the same kind and color could also reach the destination. The
// file is used when no rival shares it, then the rank, then the full square.
func (m Move) disambiguation() string {
	if m.board == nil {
		return ""
	}
	from := m.Piece.Position
	var rivals []*Piece
	for _, other := range m.board.Pieces(m.Piece.Color) {
		if other == m.Piece || other.Type != m.Piece.Type {
			continue
		}
		if other.CanReach(m.board, m.To) {
			rivals = append(rivals, other)
		}
	}
	if len(rivals) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, r := range rivals {
		sameFile = sameFile || r.Position.File == from.File
		sameRank = sameRank || r.Position.Rank == from.Rank
	}
	rank := string(rune('0' + from.Rank))
	switch {
	case !sameFile:
		return from.fileLetter()
	case !sameRank:
		return rank
	}
	return from.fileLetter() + rank
}

// Ply is a played move as recorded in a game's history.
type Ply struct {
	Color     Color     `json:"color"`
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Notation  string    `json:"notation"`
	Captured  PieceType `json:"captured,omitempty"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func newPly(m Move) Ply {
	p := Ply{
		Color:     m.Piece.Color,
		From:      m.From(),
		To:        m.To,
		Notation:  m.SAN(),
		Promotion: m.Promotion,
	}
	if m.Capture != nil {
		p.Captured = m.Capture.Type
	}
	return p
}
