package search

import (
	"testing"
	"time"

	"github.com/danwhite/lichee/internal/board"
	"github.com/danwhite/lichee/internal/clock"
	"github.com/danwhite/lichee/internal/eval"
)

func newTestContext(t *testing.T, fen string) (*SearchContext, *board.Position) {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	sc := NewContext(pos, eval.New(), NewTable(1), clock.New(clock.Limits{MoveTime: 2 * time.Second}, 0, 0), []uint64{pos.Hash})
	return sc, pos
}

func TestFindsMateInOne(t *testing.T) {
	sc, _ := newTestContext(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	var last Info
	best := sc.IterativeDeepening(4, func(info Info) { last = info })

	if best.String() != "a1a8" {
		t.Errorf("expected mate-in-1 move a1a8, got %s", best.String())
	}
	if last.Score < MateScore-MaxPly {
		t.Errorf("expected a mate score to be reported, got %d", last.Score)
	}
}

func TestStalemateHasNoMove(t *testing.T) {
	sc, pos := newTestContext(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")

	if !pos.IsStalemate() {
		t.Fatal("test position is not actually stalemate, fix the fixture")
	}

	best := sc.IterativeDeepening(3, func(Info) {})
	if best != board.NoMove {
		t.Errorf("expected NoMove from a stalemated position, got %s", best.String())
	}
}

func TestIterativeDeepeningReportsIncreasingDepth(t *testing.T) {
	sc, _ := newTestContext(t, board.StartFEN)

	var depths []int
	sc.IterativeDeepening(4, func(info Info) {
		depths = append(depths, info.Depth)
	})

	if len(depths) == 0 {
		t.Fatal("expected at least one reported iteration")
	}
	for i, d := range depths {
		if d != i+1 {
			t.Errorf("expected iteration %d to report depth %d, got %d", i, i+1, d)
		}
	}
}

func TestRepeatedRootPositionIsRepetition(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatal(err)
	}

	history := []uint64{pos.Hash}
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for _, mv := range shuffle {
		m, err := board.ParseMove(mv, pos)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", mv, err)
		}
		pos.MakeMove(m)
		pos.UpdateCheckers()
		history = append(history, pos.Hash)
	}

	sc := NewContext(pos, eval.New(), NewTable(1), clock.New(clock.Limits{MoveTime: 2 * time.Second}, 0, 0), history)
	if !sc.isRepetition(1) {
		t.Error("expected a returned-to-start position to register as a repetition at ply > 0")
	}
}
