package search

import "github.com/danwhite/lichee/internal/board"

// Pruning and reduction constants. These are the structural knobs the spec
// names (§4.I); the numeric values are a reasonable, untuned starting
// point — this engine carries no tuning harness (a stated Non-goal).
const (
	rfpMaxDepth = 6
	rfpMargin   = 75 // per-ply margin subtracted from eval before comparing to beta

	nmpMinDepth = 3
	nmpBase     = 3
	nmpDiv      = 3

	iirMinDepth = 4

	lmpMaxDepth = 8
	lmpBaseMove = 3 // legalPlayed >= lmpBaseMove + 2*depth*depth prunes the rest

	fpMaxDepth = 7
	fpBase     = 100
	fpMargin   = 90

	seePruneMaxDepth  = 8
	seeQuietThreshold = -60 // per depth-ply, scaled by depth below
	seeCaptThreshold  = -20

	aspirationMinDepth = 5
	aspirationDelta    = 18
)

// Info is reported to the caller once per completed iterative-deepening
// depth; depth 1 is reported even when the clock cut it short.
type Info struct {
	Depth    int
	SelDepth int
	Score    int
	Nodes    uint64
	PV       []board.Move
}

// IterativeDeepening runs negamax at depth = 1, 2, 3, ... up to maxDepth (or
// until the clock says stop), reporting each completed iteration through
// report. It returns the best move found by the last fully completed
// iteration — per spec §7, a mid-iteration timeout discards that
// iteration's partial result rather than returning it.
func (sc *SearchContext) IterativeDeepening(maxDepth int, report func(Info)) board.Move {
	sc.ord.Clear()
	sc.nodes = 0
	sc.seldepth = 0
	sc.stop = false
	sc.tt.NewSearch()

	var bestMove board.Move
	score := 0

	for depth := 1; depth <= maxDepth; depth++ {
		var iterScore int
		if depth < aspirationMinDepth {
			iterScore = sc.negamax(depth, -infinity, infinity, 0, false)
		} else {
			iterScore = sc.aspiration(depth, score)
		}

		if sc.stop && depth > 1 {
			// bestMove still holds the previous completed depth's move; the
			// partial PV of the aborted iteration is never read.
			break
		}

		score = iterScore
		if sc.pvLength[0] > 0 {
			bestMove = sc.pvLine[0][0]
		}

		if report != nil {
			report(Info{
				Depth:    depth,
				SelDepth: sc.seldepth,
				Score:    score,
				Nodes:    sc.nodes,
				PV:       append([]board.Move(nil), sc.pvLine[0][:sc.pvLength[0]]...),
			})
		}

		if sc.stop {
			break
		}
		if score >= MateScore-MaxPly || score <= -MateScore+MaxPly {
			// A mate score was found: deepening goes on only while
			// depth*2-1 is still within maxDepth, otherwise it stops here.
			if depth*2-1 <= maxDepth {
				continue
			}
			break
		}
		if sc.clk.SoftTimeUp() {
			break
		}
	}

	return bestMove
}

// aspiration searches depth with a narrow window centered on prevScore,
// re-searching whenever the true score falls outside it. On a fail low,
// beta moves halfway toward alpha and alpha drops to score-delta at the
// full depth; on a fail high, beta rises to score+delta and the depth
// shrinks by one (never below 1). delta grows by half on every retry.
func (sc *SearchContext) aspiration(depth, prevScore int) int {
	delta := aspirationDelta
	alpha := prevScore - delta
	beta := prevScore + delta
	if alpha < -infinity {
		alpha = -infinity
	}
	if beta > infinity {
		beta = infinity
	}

	searchDepth := depth
	for {
		score := sc.negamax(searchDepth, alpha, beta, 0, false)
		if sc.stop {
			return score
		}

		if score <= alpha {
			beta = (alpha + beta) / 2
			alpha = score - delta
			if alpha < -infinity {
				alpha = -infinity
			}
			searchDepth = depth
		} else if score >= beta {
			beta = score + delta
			if beta > infinity {
				beta = infinity
			}
			searchDepth--
			if searchDepth < 1 {
				searchDepth = 1
			}
		} else {
			return score
		}

		delta += delta / 2
	}
}

const infinity = MateScore + MaxPly

// negamax searches the current position to depth plies from ply, returning
// a score from the side-to-move's perspective. skipNMP disallows a second,
// nested null move.
func (sc *SearchContext) negamax(depth, alpha, beta, ply int, skipNMP bool) int {
	pos := sc.pos
	pvNode := beta-alpha > 1
	isRoot := ply == 0

	sc.pvLength[ply] = ply
	if ply > sc.seldepth {
		sc.seldepth = ply
	}

	if ply > 0 {
		if pos.HalfMoveClock >= 100 || sc.isRepetition(ply) {
			return 0
		}
		if ply >= MaxPly-1 {
			return sc.eval.Evaluate(pos, pos.SideToMove)
		}
	}

	inCheck := pos.InCheck()
	if inCheck {
		depth++ // check extension
	}

	if depth <= 0 {
		return sc.quiescence(alpha, beta, ply)
	}

	originalAlpha := alpha

	var ttMove board.Move
	if ttScore, ttDepth, ttBound, ttEntryMove, ok := sc.probeTT(pos.Hash, ply); ok {
		ttMove = ttEntryMove
		if !isRoot && ttDepth >= depth && !pvNode {
			if ttBound == BoundExact ||
				(ttBound == BoundLower && ttScore >= beta) ||
				(ttBound == BoundUpper && ttScore <= alpha) {
				return ttScore
			}
		}
	} else if depth >= iirMinDepth && !inCheck {
		depth-- // Internal Iterative Reduction: no hash move, trust the cutoffs less.
	}

	eval := sc.eval.Evaluate(pos, pos.SideToMove)

	if !pvNode && !inCheck {
		// Reverse Futility Pruning: so far ahead that even a pessimistic
		// margin still beats beta.
		if depth <= rfpMaxDepth && eval-rfpMargin*depth >= beta {
			return eval
		}

		// Null Move Pruning: if we could pass the turn and still be
		// winning, the position doesn't need searching further.
		if depth >= nmpMinDepth && !skipNMP && eval >= beta && pos.HasNonPawnMaterial() {
			r := nmpBase + depth/nmpDiv
			reduced := depth - 1 - r
			if reduced < 0 {
				reduced = 0
			}
			undo := pos.MakeNullMove()
			sc.pushHash()
			score := -sc.negamax(reduced, -beta, -beta+1, ply+1, true)
			sc.popHash()
			pos.UnmakeNullMove(undo)

			if sc.stop {
				return 0
			}
			if score >= beta {
				if score >= MateScore-MaxPly {
					score = beta
				}
				return score
			}
		}
	}

	moves := pos.GeneratePseudoLegalMoves()
	var prevMove board.Move
	if ply > 0 {
		prevMove = sc.moveStack[ply-1]
	}
	scores := sc.ord.ScoreMoves(pos, moves, ply, ttMove, prevMove)

	bestScore := -infinity
	var bestMove board.Move
	legalPlayed := 0
	var quietsTried []board.Move

	us := pos.SideToMove

	for i := 0; i < moves.Len(); i++ {
		m := PickMove(moves, scores, i)
		moveScore := scores[i]
		isCapture := m.IsCapture(pos)
		isPromotion := m.IsPromotion()
		isQuiet := !isCapture && !isPromotion

		if !isRoot && bestScore > -MateScore+MaxPly && moveScore < killer2Score {
			// Pruning heuristics that only apply to late, unpromising
			// quiet/losing moves — never at the root, and never once a
			// move has already proven we're getting mated here.
			if depth <= lmpMaxDepth && legalPlayed >= lmpBaseMove+2*depth*depth {
				break
			}
			if isQuiet && depth <= fpMaxDepth && alpha < MateScore-MaxPly &&
				eval+fpBase+depth*fpMargin <= alpha {
				continue
			}
			if depth <= seePruneMaxDepth {
				threshold := seeQuietThreshold * depth
				if !isQuiet {
					threshold = seeCaptThreshold * depth
				}
				if pos.SEE(m) < threshold {
					continue
				}
			}
		}

		var ok bool
		sc.undoStack[ply], ok = pos.MakeMove(m)
		if !ok {
			continue
		}
		if pos.IsSquareAttacked(pos.KingSquare[us], us.Other()) {
			pos.UnmakeMove(m, sc.undoStack[ply])
			continue
		}

		legalPlayed++
		sc.nodes++
		sc.moveStack[ply] = m
		sc.pushHash()

		if isQuiet {
			quietsTried = append(quietsTried, m)
		}

		var score int
		if legalPlayed == 1 {
			score = -sc.negamax(depth-1, -beta, -alpha, ply+1, false)
		} else {
			reduction := 0
			if depth >= 3 && legalPlayed >= 4 && isQuiet && !inCheck {
				reduction = lmrTable[min(depth, 63)][min(legalPlayed, 63)]
				if pvNode {
					reduction--
				}
				if moveScore >= killer1Score {
					reduction--
				}
				if reduction < 0 {
					reduction = 0
				}
				if reduction > depth-1 {
					reduction = depth - 1
				}
			}

			score = -sc.negamax(depth-1-reduction, -alpha-1, -alpha, ply+1, false)
			if score > alpha && reduction > 0 {
				// The reduced scout beat alpha: re-verify at full depth,
				// still with a null window, before trusting it enough to
				// pay for a full-window PV re-search.
				score = -sc.negamax(depth-1, -alpha-1, -alpha, ply+1, false)
			}
			if score > alpha && score < beta && pvNode {
				score = -sc.negamax(depth-1, -beta, -alpha, ply+1, false)
			}
		}

		sc.popHash()
		pos.UnmakeMove(m, sc.undoStack[ply])

		if sc.checkTime() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m

			if score > alpha {
				alpha = score
				sc.updatePV(ply, m)

				if alpha >= beta {
					if isQuiet {
						sc.ord.UpdateKillers(ply, m)
						sc.ord.UpdateCounterMove(us, prevMove, m)
						sc.ord.UpdateHistory(us, m, quietsTried, depth)
					}
					break
				}
			}
		}
	}

	if legalPlayed == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	bound := BoundExact
	if bestScore <= originalAlpha {
		bound = BoundUpper
	} else if bestScore >= beta {
		bound = BoundLower
	}
	sc.storeTT(pos.Hash, ply, bestMove, bestScore, depth, bound)

	return bestScore
}

// quiescence extends search at leaves through capture sequences only, so
// the static eval is never trusted in the middle of a hanging exchange.
func (sc *SearchContext) quiescence(alpha, beta, ply int) int {
	pos := sc.pos

	if ply > sc.seldepth {
		sc.seldepth = ply
	}
	sc.pvLength[ply] = ply

	if ply >= MaxPly-1 {
		return sc.eval.Evaluate(pos, pos.SideToMove)
	}

	standPat := sc.eval.Evaluate(pos, pos.SideToMove)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ttMove board.Move
	if ttScore, ttDepth, ttBound, m, ok := sc.probeTT(pos.Hash, ply); ok {
		ttMove = m
		if ttDepth >= 0 {
			if ttBound == BoundExact ||
				(ttBound == BoundLower && ttScore >= beta) ||
				(ttBound == BoundUpper && ttScore <= alpha) {
				return ttScore
			}
		}
	}

	moves := pos.GenerateCaptures()
	scores := sc.ord.ScoreMoves(pos, moves, ply, ttMove, board.NoMove)

	bestScore := standPat
	var bestMove board.Move
	us := pos.SideToMove

	for i := 0; i < moves.Len(); i++ {
		m := PickMove(moves, scores, i)

		if !m.IsPromotion() && pos.SEE(m) < 0 {
			continue // bad captures can't recover material at a quiescent leaf
		}

		var ok bool
		sc.undoStack[ply], ok = pos.MakeMove(m)
		if !ok {
			continue
		}
		if pos.IsSquareAttacked(pos.KingSquare[us], us.Other()) {
			pos.UnmakeMove(m, sc.undoStack[ply])
			continue
		}

		sc.nodes++
		sc.moveStack[ply] = m
		score := -sc.quiescence(-beta, -alpha, ply+1)
		pos.UnmakeMove(m, sc.undoStack[ply])

		if sc.checkTime() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				sc.updatePV(ply, m)
				if alpha >= beta {
					break
				}
			}
		}
	}

	bound := BoundUpper
	if bestScore >= beta {
		bound = BoundLower
	} else if bestMove != board.NoMove {
		bound = BoundExact
	}
	sc.storeTT(pos.Hash, ply, bestMove, bestScore, 0, bound)

	return bestScore
}

func (sc *SearchContext) probeTT(hash uint64, ply int) (score, depth int, bound Bound, move board.Move, ok bool) {
	move, score, depth, bound, ok = sc.tt.Probe(hash, ply)
	return
}

func (sc *SearchContext) storeTT(hash uint64, ply int, move board.Move, score, depth int, bound Bound) {
	sc.tt.Store(hash, ply, move, score, depth, bound)
}

// updatePV copies the child's PV (already current at ply+1) behind m into
// this ply's PV line.
func (sc *SearchContext) updatePV(ply int, m board.Move) {
	sc.pvLine[ply][ply] = m
	childLen := sc.pvLength[ply+1]
	for i := ply + 1; i < childLen; i++ {
		sc.pvLine[ply][i] = sc.pvLine[ply+1][i]
	}
	sc.pvLength[ply] = childLen
	if sc.pvLength[ply] <= ply {
		sc.pvLength[ply] = ply + 1
	}
}
