package board

import "testing"

// walkAndUnwind recurses through pseudo-legal play to depth, asserting that
// every MakeMove/UnmakeMove pair restores the position byte for byte,
// Zobrist hash included.
func walkAndUnwind(t *testing.T, p *Position, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}

	before := *p
	moves := p.GeneratePseudoLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo, ok := p.MakeMove(m)
		if !ok {
			continue
		}
		if p.IsSquareAttacked(p.KingSquare[p.SideToMove.Other()], p.SideToMove) {
			p.UnmakeMove(m, undo)
			continue
		}

		if got := p.ComputeHash(); got != p.Hash {
			t.Fatalf("incremental hash drifted after %v: got %#x, recomputed %#x", m, p.Hash, got)
		}

		walkAndUnwind(t, p, depth-1)

		p.UnmakeMove(m, undo)
		if *p != before {
			t.Fatalf("position not restored after unmaking %v", m)
		}
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		walkAndUnwind(t, pos, 3)
	}
}

func TestStalemate(t *testing.T) {
	// Black king boxed in on a8 with no legal move and not in check.
	pos, err := ParseFEN("k7/1R6/1K6/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.UpdateCheckers()
	if !pos.IsStalemate() {
		t.Error("expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate position must not also report checkmate")
	}
}
