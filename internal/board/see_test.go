package board

import "testing"

func TestSEERookTakesDefendedPawn(t *testing.T) {
	// White rook on d1 takes a pawn on d5 defended by a black pawn on e6.
	// Losing the rook (500) for a pawn (100) nets -400.
	pos, err := ParseFEN("4k3/8/4p3/3p4/8/8/8/3R3K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(D1, D5)
	if got := pos.SEE(m); got != -400 {
		t.Errorf("SEE(RxP defended) = %d, want -400", got)
	}
}

func TestSEEPawnTakesUndefendedPiece(t *testing.T) {
	// White pawn on e4 takes an undefended knight on d5.
	pos, err := ParseFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(E4, D5)
	if got := pos.SEE(m); got != 300 {
		t.Errorf("SEE(PxN undefended) = %d, want 300", got)
	}
}
