package eval

import (
	"testing"

	"github.com/danwhite/lichee/internal/board"
)

func TestEvaluateSymmetric(t *testing.T) {
	// Material and piece-square terms are mirror-symmetric at the starting
	// position, so the only thing that should separate the two
	// perspectives is the side-to-move tempo bonus: White (to move) gets
	// +tempoBonus, and Black's perspective is the same magnitude negated.
	pos := board.NewPosition()
	e := New()

	white := e.Evaluate(pos, board.White)
	black := e.Evaluate(pos, board.Black)

	if white != tempoBonus {
		t.Errorf("expected White's score to be exactly the tempo bonus (%d) with no material imbalance, got %d", tempoBonus, white)
	}
	if white != -black {
		t.Errorf("expected Evaluate(White) == -Evaluate(Black), got %d and %d", white, black)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is up a queen.
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/QQQQK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	e := New()

	score := e.Evaluate(pos, board.White)
	if score <= 0 {
		t.Errorf("expected a large material advantage to score positive, got %d", score)
	}
}

func TestEvaluatePerspectiveFlips(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/QQQQK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	e := New()

	white := e.Evaluate(pos, board.White)
	black := e.Evaluate(pos, board.Black)

	if white != -black {
		t.Errorf("expected Evaluate(White) == -Evaluate(Black), got %d and %d", white, black)
	}
}
