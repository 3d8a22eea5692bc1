package board

// seeValue gives each piece type a value for the swap-off algorithm. It
// differs from PieceValue only in valuing knight and bishop alike at 300;
// the king keeps the same large value, so a king recapture onto a square
// the opponent still attacks scores as losing for the king's side.
var seeValue = [7]int{100, 300, 300, 500, 900, 20000, 0}

// SEE runs Static Exchange Evaluation for the capture (or non-capture) move
// m: the net material gain, in centipawns, of playing m and then letting
// both sides swap off on m.To() with their cheapest attacker first. Used by
// search to order and prune captures without having to actually play them
// out with MakeMove/UnmakeMove.
func (p *Position) SEE(m Move) int {
	from, to := m.From(), m.To()
	us := p.SideToMove
	them := us.Other()

	var captured PieceType
	if m.IsEnPassant() {
		captured = Pawn
	} else if victim := p.PieceAt(to); victim != NoPiece {
		captured = victim.Type()
	} else {
		captured = NoPieceType
	}

	attacker := p.PieceAt(from).Type()
	if m.IsPromotion() {
		attacker = Pawn // the piece standing on `from` before the swap starts
	}

	occupied := p.AllOccupied
	occupied &^= SquareBB(from)
	if m.IsEnPassant() {
		var capSq Square
		if us == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		occupied &^= SquareBB(capSq)
	} else {
		occupied &^= SquareBB(to)
	}
	occupied |= SquareBB(to)

	// Fixed-size: at most 32 pieces can ever stand on the board, so the
	// swap-off chain can be at most 32 deep. A growable slice would
	// heap-allocate on every call, and SEE runs in the search hot path
	// (move ordering and pruning for every capture at every node).
	var gain [32]int
	depth := 0
	gain[0] = seeValue[captured]

	side := them
	onSquare := attacker
	if m.IsPromotion() {
		onSquare = m.Promotion()
		gain[0] += seeValue[Queen] - seeValue[Pawn]
	}

	attackers := p.AttackersTo(to, occupied)

	for {
		attackers &= occupied
		sq, pt := p.leastValuableAttackerFrom(attackers, side, occupied)
		if pt == NoPieceType {
			break
		}
		depth++
		gain[depth] = seeValue[onSquare] - gain[depth-1]
		occupied &^= SquareBB(sq)
		attackers |= p.xrayAttackersAfterRemoving(to, occupied)
		onSquare = pt
		side = side.Other()
	}

	for i := depth - 1; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}

// leastValuableAttackerFrom returns the square and type of c's cheapest
// piece in attackers, restricted to pieces still present in occupied (the
// simulated board as the swap runs).
func (p *Position) leastValuableAttackerFrom(attackers Bitboard, c Color, occupied Bitboard) (Square, PieceType) {
	for pt := Pawn; pt <= King; pt++ {
		bb := attackers & p.Pieces[c][pt] & occupied
		if bb != 0 {
			return bb.LSB(), pt
		}
	}
	return NoSquare, NoPieceType
}

// xrayAttackersAfterRemoving finds sliding attackers to sq newly uncovered
// once the last capturer is gone from occupied; recomputing the ray from sq
// under the updated occupancy picks these up automatically.
func (p *Position) xrayAttackersAfterRemoving(sq Square, occupied Bitboard) Bitboard {
	rookX := RookAttacks(sq, occupied) & (p.Pieces[White][Rook] | p.Pieces[Black][Rook] | p.Pieces[White][Queen] | p.Pieces[Black][Queen])
	bishopX := BishopAttacks(sq, occupied) & (p.Pieces[White][Bishop] | p.Pieces[Black][Bishop] | p.Pieces[White][Queen] | p.Pieces[Black][Queen])
	return (rookX | bishopX) & occupied
}
