package model

import (
	"testing"
)

func TestSANDisambiguation(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
		not  []string
	}{
		{
			name: "knights on different files",
			fen:  "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1",
			want: []string{"Nbd2", "Nfd2", "Na3", "Nh2"},
			not:  []string{"Nd2"},
		},
		{
			name: "knights on the same file",
			fen:  "4k3/8/8/8/8/1N6/8/1N2K3 w - - 0 1",
			want: []string{"N1d2", "N3d2", "Na3", "Nc1", "Nd4"},
			not:  []string{"Nd2", "Nbd2"},
		},
		{
			name: "three knights on one square",
			fen:  "4k3/8/8/8/8/1N6/8/1N2KN2 w - - 0 1",
			want: []string{"Nb1d2", "N3d2", "Nfd2"},
			not:  []string{"Nbd2", "N1d2"},
		},
		{
			name: "blocked rook needs no disambiguation",
			fen:  "4k3/8/8/8/8/8/8/R3K2R w - - 0 1",
			want: []string{"Rd1", "Rf1", "Ra8", "Rh8"},
			not:  []string{"Rad1", "Rhf1"},
		},
		{
			name: "open rank rooks",
			fen:  "4k3/8/8/8/8/8/R6R/4K3 w - - 0 1",
			want: []string{"Rad2", "Rhd2", "Ra1"},
		},
		{
			name: "pawn capture",
			fen:  "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1",
			want: []string{"exd5", "e5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.fen)
			got := sanList(b.Moves(White))
			for _, w := range tt.want {
				if !contains(got, w) {
					t.Errorf("moves %v missing %s", got, w)
				}
			}
			for _, n := range tt.not {
				if contains(got, n) {
					t.Errorf("moves %v contain %s", got, n)
				}
			}
		})
	}
}

func TestSANIsUniquePerMove(t *testing.T) {
	fens := []string{
		"",
		"4k3/8/8/8/8/1N6/8/1N2K3 w - - 0 1",
		"4k3/8/8/8/8/1N6/8/1N2KN2 w - - 0 1",
		"4k3/8/8/8/8/Q1Q5/8/Q3K3 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"1r6/P7/8/8/8/8/8/k6K w - - 0 1",
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	}
	for _, f := range fens {
		b := mustBoard(t, f)
		seen := map[string]bool{}
		for _, san := range sanList(b.Moves(b.SideToMove())) {
			if seen[san] {
				t.Errorf("%q: duplicate SAN %s", f, san)
			}
			seen[san] = true
		}
	}
}

func TestPushSANUsesDisambiguation(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/1N6/8/1N2K3 w - - 0 1")
	upper := b.PieceAt(mustPos(t, "b3"))
	mustPush(t, b, "N3d2")
	if upper.Position != mustPos(t, "d2") {
		t.Fatalf("b3 knight on %s, want d2", upper.Position)
	}
	if b.PieceAt(mustPos(t, "b1")) == nil {
		t.Fatal("b1 knight moved")
	}
}

func TestEveryDisambiguatedMoveIsPlayable(t *testing.T) {
	f := "4k3/8/8/8/8/1N6/8/1N2KN2 w - - 0 1"
	for _, san := range []string{"Nb1d2", "N3d2", "Nfd2"} {
		b := mustBoard(t, f)
		m, err := b.FindSAN(san)
		if err != nil {
			t.Fatalf("FindSAN(%s): %v", san, err)
		}
		from := m.From()
		mustPush(t, b, san)
		if b.PieceAt(from) != nil || b.PieceAt(mustPos(t, "d2")) == nil {
			t.Fatalf("%s did not move the knight from %s", san, from)
		}
	}
}

func TestCanReach(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/3p4/R3K1NB w - - 0 1")
	tests := []struct {
		from, to string
		want     bool
	}{
		{"a1", "a8", true},
		{"a1", "d1", true},
		{"a1", "f1", false},
		{"a1", "b2", false},
		{"e1", "d2", true},
		{"e1", "e3", false},
		{"g1", "f3", true},
		{"g1", "e2", true},
		{"g1", "g3", false},
		{"h1", "a8", true},
		{"h1", "h1", false},
	}
	for _, tt := range tests {
		piece := b.PieceAt(mustPos(t, tt.from))
		if got := piece.CanReach(b, mustPos(t, tt.to)); got != tt.want {
			t.Errorf("%s %s CanReach(%s) = %v, want %v", piece.Type, tt.from, tt.to, got, tt.want)
		}
	}
	if b.PieceAt(mustPos(t, "a1")).CanReach(b, Position{File: 0, Rank: 1}) {
		t.Error("CanReach accepted an off-board square")
	}
}
