package search

import (
	"math"

	"github.com/danwhite/lichee/internal/board"
)

// Evaluator is the external, pure static-evaluation function the search
// core is written against. Nothing in this package depends on how
// evaluation is computed.
type Evaluator interface {
	// Evaluate returns the static evaluation of pos from side's
	// perspective, in centipawns.
	Evaluate(pos *board.Position, side board.Color) int
}

// Clock is the external time-control the search core polls. Nothing in
// this package depends on how the deadline or node budget was derived.
type Clock interface {
	// TimeUp reports whether the current search should stop now.
	TimeUp(nodes uint64) bool
	// SoftTimeUp reports whether the optimum (soft) budget has elapsed,
	// consulted by IterativeDeepening between depths rather than mid-search.
	SoftTimeUp() bool
}

// lmrTable[depth][moveIndex] holds the Stockfish-style logarithmic late
// move reduction, precomputed once at package init.
var lmrTable [64][64]int

func init() {
	for depth := 1; depth < 64; depth++ {
		for moveIndex := 1; moveIndex < 64; moveIndex++ {
			r := 0.2 + math.Log(float64(depth))*math.Log(float64(moveIndex))/2.5
			lmrTable[depth][moveIndex] = int(r)
		}
	}
}

// SearchContext owns every piece of mutable state a single recursive search
// touches: the position being searched, the undo stack that lets it walk
// forward and back without allocating, the transposition table, move
// ordering heuristics, the repetition ring, and the injected evaluator and
// clock. There is exactly one of these per search — no worker pool, no
// shared state behind a mutex.
type SearchContext struct {
	pos  *board.Position
	eval Evaluator
	tt   *Table
	ord  *Orderer
	clk  Clock

	undoStack [MaxPly]board.UndoInfo
	moveStack [MaxPly]board.Move
	pvLine    [MaxPly][MaxPly]board.Move
	pvLength  [MaxPly]int

	// repetitionRing holds the Zobrist hash played at every ply from game
	// start through the current search line, so a repetition check at
	// ply > 0 only has to scan back through this search's own line plus
	// the handful of pre-root game hashes the UCI position command seeded.
	repetitionRing []uint64

	nodes   uint64
	seldepth int
	stop    bool
}

// NewContext builds a SearchContext over pos, using eval/tt/clk for their
// respective roles. gameHistory is every Zobrist hash played so far this
// game (from the position the engine was given through the move before the
// one about to be searched), used to detect repetitions that span the
// root.
func NewContext(pos *board.Position, eval Evaluator, tt *Table, clk Clock, gameHistory []uint64) *SearchContext {
	ring := make([]uint64, 0, len(gameHistory)+MaxPly)
	ring = append(ring, gameHistory...)
	return &SearchContext{
		pos:            pos,
		eval:           eval,
		tt:             tt,
		ord:            NewOrderer(),
		clk:            clk,
		repetitionRing: ring,
	}
}

// Stop requests that the current search return as soon as it next checks.
func (sc *SearchContext) Stop() { sc.stop = true }

// Nodes returns the number of nodes visited by the most recent search.
func (sc *SearchContext) Nodes() uint64 { return sc.nodes }

func (sc *SearchContext) checkTime() bool {
	if sc.stop {
		return true
	}
	if sc.nodes&2047 == 0 && sc.clk.TimeUp(sc.nodes) {
		sc.stop = true
	}
	return sc.stop
}

// isRepetition reports whether the position's current hash has already
// occurred earlier in the game or search line — consulted at ply > 0 only,
// since the root position by definition cannot repeat within its own
// search.
func (sc *SearchContext) isRepetition(ply int) bool {
	h := sc.pos.Hash
	limit := len(sc.repetitionRing) - 1
	// limit itself is the current position's own hash, just pushed by the
	// caller; start two plies back so the scan only matches genuine earlier
	// occurrences, not the position against itself. A repetition must be an
	// even number of plies back (same side to move) and can't reach further
	// than the last irreversible move.
	for i := limit - 2; i >= 0 && i >= limit-sc.pos.HalfMoveClock; i -= 2 {
		if sc.repetitionRing[i] == h {
			return true
		}
	}
	return false
}

func (sc *SearchContext) pushHash() {
	sc.repetitionRing = append(sc.repetitionRing, sc.pos.Hash)
}

func (sc *SearchContext) popHash() {
	sc.repetitionRing = sc.repetitionRing[:len(sc.repetitionRing)-1]
}
