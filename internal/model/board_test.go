package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/benbeisheim/fowchess-backend/internal/fen"
)

func mustBoard(t *testing.T, s string) *Board {
	t.Helper()
	b, err := NewBoard(s)
	if err != nil {
		t.Fatalf("NewBoard(%q): %v", s, err)
	}
	return b
}

func mustPos(t *testing.T, s string) Position {
	t.Helper()
	p, err := ParsePosition(s)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", s, err)
	}
	return p
}

func mustPush(t *testing.T, b *Board, sans ...string) {
	t.Helper()
	for _, san := range sans {
		if _, _, err := b.PushSAN(san); err != nil {
			t.Fatalf("PushSAN(%q) on %q: %v", san, b.FEN(), err)
		}
	}
}

func sanList(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.SAN())
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestNewBoardRoundTrip(t *testing.T) {
	tests := []string{
		fen.StartFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"8/5N2/4p2p/5p1k/1p4rP/1P2Q1P1/P4P1K/5q2 w - - 15 44",
		"r3k2r/8/8/8/8/8/8/R3K2R w Qk - 7 31",
	}
	for _, s := range tests {
		b := mustBoard(t, s)
		if got := b.ToFEN(); got != s {
			t.Errorf("ToFEN() = %q, want %q", got, s)
		}
		if got := b.FEN(); got != s {
			t.Errorf("FEN() = %q, want %q", got, s)
		}
	}
}

func TestNewBoardCanonicalCastlingOrder(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w qkQK - 0 1")
	if got, want := b.FEN(), "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"; got != want {
		t.Fatalf("FEN() = %q, want %q", got, want)
	}
}

func TestNewBoardDefaultsToStart(t *testing.T) {
	b := mustBoard(t, "")
	if b.FEN() != fen.StartFEN {
		t.Fatalf("FEN() = %q", b.FEN())
	}
	if b.SideToMove() != White || b.FullmoveNumber() != 1 || b.HalfmoveClock() != 0 {
		t.Fatalf("unexpected state %s %d %d", b.SideToMove(), b.FullmoveNumber(), b.HalfmoveClock())
	}
	if p := b.PieceAt(mustPos(t, "e1")); p == nil || p.Type != King || p.Color != White {
		t.Fatalf("e1 = %+v, want white king", p)
	}
	if p := b.PieceAt(mustPos(t, "d8")); p == nil || p.Type != Queen || p.Color != Black {
		t.Fatalf("d8 = %+v, want black queen", p)
	}
}

func TestNewBoardRejectsMalformedFEN(t *testing.T) {
	_, err := NewBoard("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, fen.ErrMalformed) {
		t.Fatalf("expected fen.ErrMalformed, got %v", err)
	}
	var perr *fen.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *fen.ParseError in chain, got %T", err)
	}
}

func TestPieceAtOffBoard(t *testing.T) {
	b := mustBoard(t, "")
	for _, p := range []Position{{0, 1}, {1, 0}, {9, 4}, {4, 9}, {-3, -3}} {
		if got := b.PieceAt(p); got != nil {
			t.Errorf("PieceAt(%+v) = %+v, want nil", p, got)
		}
	}
}

func TestApplyMoveFlipsSideAndCounts(t *testing.T) {
	b := mustBoard(t, "")

	mustPush(t, b, "Nf3")
	if b.SideToMove() != Black || b.FullmoveNumber() != 1 || b.HalfmoveClock() != 1 {
		t.Fatalf("after Nf3: %s %d %d", b.SideToMove(), b.FullmoveNumber(), b.HalfmoveClock())
	}
	mustPush(t, b, "Nf6")
	if b.SideToMove() != White || b.FullmoveNumber() != 2 || b.HalfmoveClock() != 2 {
		t.Fatalf("after Nf6: %s %d %d", b.SideToMove(), b.FullmoveNumber(), b.HalfmoveClock())
	}
	mustPush(t, b, "e4")
	if b.SideToMove() != Black || b.FullmoveNumber() != 2 || b.HalfmoveClock() != 0 {
		t.Fatalf("after e4: %s %d %d", b.SideToMove(), b.FullmoveNumber(), b.HalfmoveClock())
	}
	mustPush(t, b, "Nxe4")
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 3 {
		t.Fatalf("after Nxe4: %d %d", b.HalfmoveClock(), b.FullmoveNumber())
	}
	want := "rnbqkb1r/pppppppp/8/8/4n3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3"
	if b.FEN() != want {
		t.Fatalf("FEN() = %q, want %q", b.FEN(), want)
	}
}

func TestDoublePushSetsEnPassant(t *testing.T) {
	b := mustBoard(t, "")
	e2 := mustPos(t, "e2")
	pawn := b.PieceAt(e2)

	var double *Move
	for _, m := range b.LegalMoves(White)[pawn] {
		if m.To == mustPos(t, "e4") {
			m := m
			double = &m
		}
	}
	if double == nil {
		t.Fatal("e2 pawn has no move to e4")
	}
	if double.Capture != nil {
		t.Fatalf("e4 push has capture target %+v", double.Capture)
	}

	if _, over := b.ApplyMove(*double); over {
		t.Fatal("e4 ended the game")
	}
	ep, ok := b.EnPassant()
	if !ok || ep != mustPos(t, "e3") {
		t.Fatalf("EnPassant() = %v %v, want e3", ep, ok)
	}
	if pawn.Position != mustPos(t, "e4") || b.PieceAt(mustPos(t, "e4")) != pawn {
		t.Fatalf("pawn identity lost: %+v", pawn)
	}
	if b.PieceAt(e2) != nil {
		t.Fatal("e2 still occupied")
	}

	mustPush(t, b, "Nf6")
	if _, ok := b.EnPassant(); ok {
		t.Fatal("en passant survived a reply")
	}
}

func TestEnPassantCapture(t *testing.T) {
	b := mustBoard(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	mustPush(t, b, "d5")
	if ep, ok := b.EnPassant(); !ok || ep != mustPos(t, "d6") {
		t.Fatalf("EnPassant() = %v %v, want d6", ep, ok)
	}

	var capture *Move
	for _, m := range b.Moves(White) {
		if m.SAN() == "exd6" {
			m := m
			capture = &m
		}
	}
	if capture == nil {
		t.Fatalf("no en passant capture in %v", sanList(b.Moves(White)))
	}
	if capture.Capture == nil || capture.Capture.Position != mustPos(t, "d5") {
		t.Fatalf("capture target = %+v, want pawn on d5", capture.Capture)
	}

	b.ApplyMove(*capture)
	if b.PieceAt(mustPos(t, "d5")) != nil {
		t.Fatal("captured pawn still on d5")
	}
	if want := "4k3/8/3P4/8/8/8/8/4K3 b - - 0 2"; b.FEN() != want {
		t.Fatalf("FEN() = %q, want %q", b.FEN(), want)
	}
}

func TestEnPassantOnlyOnNextPly(t *testing.T) {
	b := mustBoard(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")
	mustPush(t, b, "d5", "Ke2", "Kd7")
	for _, m := range b.Moves(White) {
		if m.To == mustPos(t, "d6") && m.Piece.Type == Pawn {
			t.Fatalf("stale en passant move %s", m.SAN())
		}
	}
}

func TestPawnDoublePushBlocked(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"first square blocked", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", nil},
		{"second square blocked", "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1", []string{"e3"}},
		{"free", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", []string{"e3", "e4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			pawn := b.PieceAt(mustPos(t, "e2"))
			got := sanList(b.LegalMoves(White)[pawn])
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("pawn moves = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromotion(t *testing.T) {
	b := mustBoard(t, "1r6/P7/8/8/8/8/8/k6K w - - 0 1")
	pawn := b.PieceAt(mustPos(t, "a7"))
	got := sanList(b.LegalMoves(White)[pawn])
	want := []string{"a8=Q", "a8=R", "a8=B", "a8=N", "axb8=Q", "axb8=R", "axb8=B", "axb8=N"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("pawn moves = %v, want %v", got, want)
	}

	mustPush(t, b, "a8=N")
	if pawn.Type != Knight || pawn.Position != mustPos(t, "a8") {
		t.Fatalf("promoted piece = %+v", pawn)
	}
	if want := "Nr6/8/8/8/8/8/8/k6K b - - 0 1"; b.FEN() != want {
		t.Fatalf("FEN() = %q, want %q", b.FEN(), want)
	}
}

func TestBlackPromotion(t *testing.T) {
	b := mustBoard(t, "k6K/8/8/8/8/8/p7/8 b - - 4 9")
	mustPush(t, b, "a1=Q")
	if want := "k6K/8/8/8/8/8/8/q7 w - - 0 10"; b.FEN() != want {
		t.Fatalf("FEN() = %q, want %q", b.FEN(), want)
	}
}

func TestKingCaptureEndsGame(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/4K2r b - - 0 1")
	winner, over, err := b.PushSAN("Rxe1")
	if err != nil {
		t.Fatalf("PushSAN: %v", err)
	}
	if !over || winner != Black {
		t.Fatalf("winner = %s over = %v, want black true", winner, over)
	}
}

func TestOrdinaryCaptureDoesNotEndGame(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/r7/R3K3 w - - 5 1")
	_, over, err := b.PushSAN("Rxa2")
	if err != nil {
		t.Fatalf("PushSAN: %v", err)
	}
	if over {
		t.Fatal("capturing a rook ended the game")
	}
	if b.HalfmoveClock() != 0 {
		t.Fatalf("HalfmoveClock() = %d after capture", b.HalfmoveClock())
	}
}

func TestPushSANIllegalLeavesBoard(t *testing.T) {
	b := mustBoard(t, "")
	before := b.FEN()
	_, _, err := b.PushSAN("e5")
	if err == nil {
		t.Fatal("expected error for black move on white's turn")
	}
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.SAN != "e5" {
		t.Fatalf("expected *IllegalMoveError for e5, got %v", err)
	}
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatal("expected errors.Is(err, ErrIllegalMove)")
	}
	if b.FEN() != before {
		t.Fatalf("board changed: %q", b.FEN())
	}
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition("e4")
	if err != nil || p != (Position{File: 5, Rank: 4}) {
		t.Fatalf("ParsePosition(e4) = %+v, %v", p, err)
	}
	if p, err := ParsePosition("H8"); err != nil || p != (Position{File: 8, Rank: 8}) {
		t.Fatalf("ParsePosition(H8) = %+v, %v", p, err)
	}
	for _, s := range []string{"", "e", "e44", "i1", "a9", "a0", "11"} {
		_, err := ParsePosition(s)
		if !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("ParsePosition(%q) err = %v, want ErrInvalidPosition", s, err)
		}
	}
	if got := (Position{File: 1, Rank: 8}).String(); got != "a8" {
		t.Fatalf("String() = %q", got)
	}
}
