package model

var (
	rookDirs   = []Position{{File: 0, Rank: 1}, {File: 0, Rank: -1}, {File: 1, Rank: 0}, {File: -1, Rank: 0}}
	bishopDirs = []Position{{File: 1, Rank: 1}, {File: -1, Rank: 1}, {File: 1, Rank: -1}, {File: -1, Rank: -1}}
	knightDirs = []Position{{File: 2, Rank: 1}, {File: 1, Rank: 2}, {File: -1, Rank: 2}, {File: -2, Rank: 1}, {File: -2, Rank: -1}, {File: -1, Rank: -2}, {File: 1, Rank: -2}, {File: 2, Rank: -1}}
	kingDirs   = []Position{{File: 1, Rank: 1}, {File: 0, Rank: 1}, {File: -1, Rank: 1}, {File: 1, Rank: 0}, {File: -1, Rank: 0}, {File: 1, Rank: -1}, {File: 0, Rank: -1}, {File: -1, Rank: -1}}
)

// LegalMoves returns the pseudo-legal moves of every piece of color that has
// at least one. Moves into attacked squares are included and kings can be
// captured. The map and its moves are only valid until the next ApplyMove.
func (b *Board) LegalMoves(color Color) map[*Piece][]Move {
	legal := make(map[*Piece][]Move)
	for _, piece := range b.Pieces(color) {
		if moves := b.movesForPiece(piece); len(moves) > 0 {
			legal[piece] = moves
		}
	}
	return legal
}

// Moves returns the same moves as LegalMoves flattened in board order, a1 to
// h8, so callers can index them.
func (b *Board) Moves(color Color) []Move {
	var moves []Move
	for _, piece := range b.Pieces(color) {
		moves = append(moves, b.movesForPiece(piece)...)
	}
	return moves
}

func (b *Board) movesForPiece(piece *Piece) []Move {
	switch piece.Type {
	case Pawn:
		return b.getPseudoPawnMoves(piece)
	case Knight:
		return b.getPseudoKnightMoves(piece)
	case Bishop:
		return b.getPseudoSlidingMoves(piece, bishopDirs)
	case Rook:
		return b.getPseudoSlidingMoves(piece, rookDirs)
	case Queen:
		return b.getPseudoQueenMoves(piece)
	case King:
		return b.getPseudoKingMoves(piece)
	default:
		return nil
	}
}

// tryStep appends the moves of piece onto target and reports whether the
// target is off the board or occupied, which stops a ray or a double push.
func (b *Board) tryStep(moves *[]Move, piece *Piece, target Position, canCapture, canPromote, mustCapture bool) bool {
	if !target.Valid() {
		return true
	}
	occupant := b.PieceAt(target)
	if occupant == nil {
		if !mustCapture {
			b.appendMoves(moves, Move{board: b, Piece: piece, To: target}, canPromote)
		}
		return false
	}
	if occupant.Color != piece.Color && canCapture {
		b.appendMoves(moves, Move{board: b, Piece: piece, To: target, Capture: occupant}, canPromote)
	}
	return true
}

func (b *Board) appendMoves(moves *[]Move, m Move, canPromote bool) {
	if !canPromote {
		*moves = append(*moves, m)
		return
	}
	for _, t := range promotionTypes {
		m.Promotion = t
		*moves = append(*moves, m)
	}
}

func (b *Board) getPseudoPawnMoves(piece *Piece) []Move {
	var moves []Move
	dir := pawnDirection(piece.Color)
	pos := piece.Position
	promotes := pos.Rank+dir == backRank(piece.Color.Opponent())

	// march one, or two from the start rank
	if pos.Rank == pawnStartRank(piece.Color) {
		if !b.tryStep(&moves, piece, pos.Offset(0, dir), false, false, false) {
			b.tryStep(&moves, piece, pos.Offset(0, 2*dir), false, false, false)
		}
	} else {
		b.tryStep(&moves, piece, pos.Offset(0, dir), false, promotes, false)
	}

	b.tryStep(&moves, piece, pos.Offset(1, dir), true, promotes, true)
	b.tryStep(&moves, piece, pos.Offset(-1, dir), true, promotes, true)

	if ep := b.enPassant; ep != nil && abs(pos.File-ep.File) == 1 && ep.Rank == pos.Rank+dir && pos.Rank == pawnStartRank(piece.Color.Opponent())-2*dir {
		victim := b.PieceAt(Position{File: ep.File, Rank: pos.Rank})
		if victim != nil && victim.Color != piece.Color {
			moves = append(moves, Move{board: b, Piece: piece, To: *ep, Capture: victim})
		}
	}
	return moves
}

func (b *Board) getPseudoKnightMoves(piece *Piece) []Move {
	var moves []Move
	for _, dir := range knightDirs {
		b.tryStep(&moves, piece, piece.Position.Offset(dir.File, dir.Rank), true, false, false)
	}
	return moves
}

func (b *Board) getPseudoSlidingMoves(piece *Piece, dirs []Position) []Move {
	var moves []Move
	for _, dir := range dirs {
		target := piece.Position.Offset(dir.File, dir.Rank)
		for !b.tryStep(&moves, piece, target, true, false, false) {
			target = target.Offset(dir.File, dir.Rank)
		}
	}
	return moves
}

func (b *Board) getPseudoQueenMoves(piece *Piece) []Move {
	return append(b.getPseudoSlidingMoves(piece, rookDirs), b.getPseudoSlidingMoves(piece, bishopDirs)...)
}

func (b *Board) getPseudoKingMoves(piece *Piece) []Move {
	var moves []Move
	pos := piece.Position
	for _, dir := range kingDirs {
		b.tryStep(&moves, piece, pos.Offset(dir.File, dir.Rank), true, false, false)
	}

	// castling flags only count for a king still on its home square
	if pos != (Position{File: 5, Rank: backRank(piece.Color)}) {
		return moves
	}
	rights := b.castling[piece.Color]
	if rights.Kingside {
		if rook := b.castlingRook(piece, 8); rook != nil {
			moves = append(moves, Move{board: b, Piece: piece, To: pos.Offset(2, 0), CastlingRook: rook})
		}
	}
	if rights.Queenside {
		if rook := b.castlingRook(piece, 1); rook != nil {
			moves = append(moves, Move{board: b, Piece: piece, To: pos.Offset(-2, 0), CastlingRook: rook})
		}
	}
	return moves
}

// castlingRook returns the friendly rook on the given corner file of the
// king's rank when every square between them is empty.
func (b *Board) castlingRook(king *Piece, file int) *Piece {
	corner := Position{File: file, Rank: king.Position.Rank}
	rook := b.PieceAt(corner)
	if rook == nil || rook.Type != Rook || rook.Color != king.Color || corner == king.Position {
		return nil
	}
	if !b.pathClear(king.Position, corner) {
		return nil
	}
	return rook
}
