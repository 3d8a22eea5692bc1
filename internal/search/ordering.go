package search

import "github.com/danwhite/lichee/internal/board"

// Move ordering score bands. Buckets are spaced widely apart so a tie
// within one band (e.g. two killers) never spills into the next.
const (
	ttMoveScore      = 2_000_000
	goodCaptureBase  = 1_500_000
	promotionScore   = 1_400_000
	killer1Score     = 1_300_000
	killer2Score     = 1_200_000
	counterMoveScore = 1_100_000
	historyBase      = 0
	badCaptureBase   = -1_000_000
)

// mvvLva[victim][attacker] ranks captures by Most-Valuable-Victim,
// Least-Valuable-Attacker: prefer capturing the biggest piece with the
// smallest one.
var mvvLva [6][6]int

func init() {
	for victim := board.Pawn; victim <= board.King; victim++ {
		for attacker := board.Pawn; attacker <= board.King; attacker++ {
			mvvLva[victim][attacker] = board.PieceValue[victim]*8 - board.PieceValue[attacker]
		}
	}
}

// Orderer accumulates the quiet-move heuristics used to score moves outside
// of the TT move / captures / promotions bands: killers indexed by ply,
// a combined history table, and a countermove table indexed by the
// opponent's last move.
type Orderer struct {
	killers      [MaxPly][2]board.Move
	history      [2][64][64]int32
	counterMoves [2][64][64]board.Move
}

// NewOrderer returns an Orderer with all tables zeroed.
func NewOrderer() *Orderer {
	return &Orderer{}
}

// Clear resets all accumulated heuristics; IterativeDeepening calls it at
// the start of every search.
func (o *Orderer) Clear() {
	*o = Orderer{}
}

// ScoreMoves assigns every move in ml an ordering score. ttMove, when not
// board.NoMove, always sorts first. prevMove (the opponent's last move, or
// board.NoMove at the root/after a null move) feeds the countermove bonus.
func (o *Orderer) ScoreMoves(pos *board.Position, ml *board.MoveList, ply int, ttMove board.Move, prevMove board.Move) []int {
	scores := make([]int, ml.Len())
	us := pos.SideToMove
	counter := board.NoMove
	if prevMove != board.NoMove {
		counter = o.counterMoves[us][prevMove.From()][prevMove.To()]
	}

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		scores[i] = o.scoreMove(pos, m, ply, ttMove, counter, us)
	}
	return scores
}

func (o *Orderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove, counter board.Move, us board.Color) int {
	if m == ttMove {
		return ttMoveScore
	}

	if m.IsCapture(pos) {
		victim := board.Pawn
		if m.IsEnPassant() {
			victim = board.Pawn
		} else if p := pos.PieceAt(m.To()); p != board.NoPiece {
			victim = p.Type()
		}
		attacker := pos.PieceAt(m.From()).Type()
		score := mvvLva[victim][attacker]
		if pos.SEE(m) >= 0 {
			return goodCaptureBase + score
		}
		return badCaptureBase + score
	}

	if m.IsPromotion() {
		return promotionScore + board.PieceValue[m.Promotion()]
	}

	if m == o.killers[ply][0] {
		return killer1Score
	}
	if m == o.killers[ply][1] {
		return killer2Score
	}
	if counter != board.NoMove && m == counter {
		return counterMoveScore
	}

	return historyBase + int(o.history[us][m.From()][m.To()])
}

// PickMove performs one step of a lazy selection sort: it finds the
// highest-scored move remaining at or after idx, swaps it into idx in both
// ml and scores, and returns it. Sorting the whole list up front wastes
// work on branches that get pruned before reaching the later moves.
func PickMove(ml *board.MoveList, scores []int, idx int) board.Move {
	best := idx
	for i := idx + 1; i < ml.Len(); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	ml.Swap(idx, best)
	scores[idx], scores[best] = scores[best], scores[idx]
	return ml.Get(idx)
}

// UpdateKillers records m as the newest killer at ply, demoting the
// previous first killer to second.
func (o *Orderer) UpdateKillers(ply int, m board.Move) {
	if o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// UpdateHistory applies a depth-squared bonus to the move that caused a
// beta cutoff and an equal-magnitude penalty to every quiet move tried
// before it, matching the direct (non-EMA) update scheme.
func (o *Orderer) UpdateHistory(us board.Color, best board.Move, tried []board.Move, depth int) {
	bonus := int32(depth * depth)
	for _, m := range tried {
		if m == best {
			o.history[us][m.From()][m.To()] += bonus
		} else {
			o.history[us][m.From()][m.To()] -= bonus
		}
	}
}

// UpdateCounterMove records that, in response to prevMove, playing best
// caused a beta cutoff.
func (o *Orderer) UpdateCounterMove(us board.Color, prevMove, best board.Move) {
	if prevMove == board.NoMove {
		return
	}
	o.counterMoves[us][prevMove.From()][prevMove.To()] = best
}
