// Package search implements alpha-beta search over a board.Position: move
// ordering, a transposition table, quiescence search, and iterative
// deepening with aspiration windows.
package search

import (
	"unsafe"

	"github.com/danwhite/lichee/internal/board"
)

// Bound records whether a stored score is exact, or only a lower/upper
// bound established by a beta or alpha cutoff.
type Bound uint8

const (
	BoundNone  Bound = iota
	BoundExact       // score is exact (a PV node fully searched)
	BoundLower       // score is a lower bound (failed high, beta cutoff)
	BoundUpper       // score is an upper bound (failed low, no move improved alpha)
)

// MateScore marks the boundary beyond which a score encodes "mate in N"
// rather than a centipawn evaluation. Kept a comfortable margin below
// math.MaxInt16 so mate-ply adjustment never overflows the packed field.
const MateScore = 32000

// MaxPly bounds recursion depth; SearchContext preallocates every
// ply-indexed array to this size instead of growing them during search.
const MaxPly = 128

// entry is the transposition table's packed record. key holds the full
// Zobrist hash so Probe rejects every collision rather than the ~1-in-2^32
// a truncated key would let through.
type entry struct {
	key   uint64
	move  board.Move
	score int16
	depth int8
	bound Bound
	age   uint8
}

// Table is a fixed-size, power-of-two-sized transposition table indexed by
// the low bits of the position's Zobrist hash.
type Table struct {
	entries []entry
	mask    uint64
	age     uint8
}

// NewTable allocates a table sized to approximately sizeMB megabytes,
// rounded down to the nearest power of two entry count.
func NewTable(sizeMB int) *Table {
	if sizeMB < 1 {
		sizeMB = 1
	}
	bytes := uint64(sizeMB) * 1024 * 1024
	count := bytes / uint64(entrySize())
	size := uint64(1)
	for size*2 <= count {
		size *= 2
	}
	if size == 0 {
		size = 1
	}
	return &Table{
		entries: make([]entry, size),
		mask:    size - 1,
	}
}

func entrySize() int {
	return int(unsafe.Sizeof(entry{}))
}

// NewSearch bumps the table's age marker, called once per `go` command so
// stale entries from a previous search lose replacement priority.
func (t *Table) NewSearch() {
	t.age++
}

// Clear zeroes every entry, used by the UCI `ucinewgame` command.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
}

func (t *Table) index(hash uint64) uint64 {
	return hash & t.mask
}

// Probe looks up hash and, on a hit, returns the stored move, score (with
// mate-ply correction applied for the current ply), depth, bound and true.
func (t *Table) Probe(hash uint64, ply int) (move board.Move, score int, depth int, bound Bound, ok bool) {
	e := &t.entries[t.index(hash)]
	if e.bound == BoundNone || e.key != hash {
		return board.NoMove, 0, 0, BoundNone, false
	}
	return e.move, adjustScoreFromTT(int(e.score), ply), int(e.depth), e.bound, true
}

// Store records a search result for hash, applying the table's replacement
// policy: a slot is overwritten unless it already holds a same-generation
// entry that is both substantially deeper than the incoming one and not
// being displaced by an exact score.
func (t *Table) Store(hash uint64, ply int, move board.Move, score, depth int, bound Bound) {
	e := &t.entries[t.index(hash)]

	keep := e.bound != BoundNone &&
		bound != BoundExact &&
		int(e.depth) >= depth+3 &&
		e.age == t.age
	if keep {
		return
	}

	if move == board.NoMove && e.key == hash && e.bound != BoundNone {
		move = e.move // keep the previous best move when storing a moveless bound
	}

	e.key = hash
	e.move = move
	e.score = int16(adjustScoreToTT(score, ply))
	e.depth = int8(depth)
	e.bound = bound
	e.age = t.age
}

// adjustScoreToTT converts a mate score measured from the current search
// root into one measured from the position itself, so it remains valid
// when probed again at a different ply.
func adjustScoreToTT(score, ply int) int {
	if score >= MateScore-MaxPly {
		return score + ply
	}
	if score <= -MateScore+MaxPly {
		return score - ply
	}
	return score
}

// adjustScoreFromTT reverses adjustScoreToTT, re-expressing a stored mate
// score relative to the probing ply.
func adjustScoreFromTT(score, ply int) int {
	if score >= MateScore-MaxPly {
		return score - ply
	}
	if score <= -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// HashFull estimates, in permille, how full the table is by sampling its
// first 1000 slots — the same cheap approximation UCI's `info hashfull`
// expects rather than a full table scan.
func (t *Table) HashFull() int {
	sample := 1000
	if len(t.entries) < sample {
		sample = len(t.entries)
	}
	used := 0
	for i := 0; i < sample; i++ {
		if t.entries[i].bound != BoundNone && t.entries[i].age == t.age {
			used++
		}
	}
	if sample == 0 {
		return 0
	}
	return used * 1000 / sample
}
