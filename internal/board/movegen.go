package board

// sliderGen is the shared shape of BishopAttacks/RookAttacks/QueenAttacks:
// the set of squares a piece standing on from attacks given the current
// occupancy.
type sliderGen func(from Square, occupied Bitboard) Bitboard

// sliders lists every piece type whose move generation is "attacks table
// minus own occupancy", so generateAllMoves/generateCaptures can walk them
// in a loop instead of repeating near-identical blocks per piece type.
var sliders = [...]struct {
	pt      PieceType
	attacks sliderGen
}{
	{Bishop, BishopAttacks},
	{Rook, RookAttacks},
	{Queen, QueenAttacks},
}

// GenerateLegalMoves returns every move the side to move may actually play.
func (p *Position) GenerateLegalMoves() *MoveList {
	return p.filterLegalMoves(p.GeneratePseudoLegalMoves())
}

// GeneratePseudoLegalMoves returns every move that respects piece movement
// rules but may leave the mover's own king in check.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures returns legal captures (en passant included),
// capture-promotions and push-promotions, for quiescence search.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return p.filterLegalMoves(ml)
}

func (p *Position) generateAllMoves(ml *MoveList) {
	us := p.SideToMove
	occupied := p.AllOccupied
	ownPieces := p.Occupied[us]

	p.generatePawnMoves(ml, us, p.Occupied[us.Other()], occupied)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		addTargets(ml, from, KnightAttacks(from)&^ownPieces)
	}

	for _, s := range sliders {
		pieces := p.Pieces[us][s.pt]
		for pieces != 0 {
			from := pieces.PopLSB()
			addTargets(ml, from, s.attacks(from, occupied)&^ownPieces)
		}
	}

	p.generateKingMoves(ml, us)
	p.generateCastlingMoves(ml, us)
}

// addTargets adds a quiet/capture move from->to for every set bit of to.
func addTargets(ml *MoveList, from Square, to Bitboard) {
	for to != 0 {
		ml.Add(NewMove(from, to.PopLSB()))
	}
}

// pawnShiftSet bundles the direction-dependent shifted bitboards a pawn
// move generator needs, computed once per call for White or Black.
type pawnShiftSet struct {
	push1, push2     Bitboard
	attackL, attackR Bitboard
	promoRank        Bitboard
	pushDir          int
}

func pawnShifts(pawns, enemies, empty Bitboard, us Color) pawnShiftSet {
	if us == White {
		push1 := pawns.North() & empty
		return pawnShiftSet{
			push1:     push1,
			push2:     (push1 & Rank3).North() & empty,
			attackL:   pawns.NorthWest() & enemies,
			attackR:   pawns.NorthEast() & enemies,
			promoRank: Rank8,
			pushDir:   8,
		}
	}
	push1 := pawns.South() & empty
	return pawnShiftSet{
		push1:     push1,
		push2:     (push1 & Rank6).South() & empty,
		attackL:   pawns.SouthWest() & enemies,
		attackR:   pawns.SouthEast() & enemies,
		promoRank: Rank1,
		pushDir:   -8,
	}
}

// generatePawnMoves adds pushes, captures, promotions and en passant for
// every pawn of us.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	s := pawnShifts(pawns, enemies, ^occupied, us)

	for bb := s.push1 &^ s.promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(Square(int(to)-s.pushDir), to))
	}
	for bb := s.push2; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewPawnTwoUp(Square(int(to)-2*s.pushDir), to))
	}
	for bb := s.attackL &^ s.promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(Square(int(to)-s.pushDir+1), to))
	}
	for bb := s.attackR &^ s.promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(Square(int(to)-s.pushDir-1), to))
	}
	for bb := s.push1 & s.promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-s.pushDir), to)
	}
	for bb := s.attackL & s.promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-s.pushDir+1), to)
	}
	for bb := s.attackR & s.promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-s.pushDir-1), to)
	}

	p.addEnPassant(ml, pawns, us)
}

// addEnPassant adds one NewEnPassant move per pawn of us attacking the
// live en-passant target, if any.
func (p *Position) addEnPassant(ml *MoveList, pawns Bitboard, us Color) {
	if p.EnPassant == NoSquare {
		return
	}
	epBB := SquareBB(p.EnPassant)
	var attackers Bitboard
	if us == White {
		attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
	} else {
		attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
	}
	for attackers != 0 {
		ml.Add(NewEnPassant(attackers.PopLSB(), p.EnPassant))
	}
}

// addPromotions adds the four under/over-promotion choices for one
// from->to pawn move.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

func (p *Position) generateKingMoves(ml *MoveList, us Color) {
	from := p.KingSquare[us]
	addTargets(ml, from, KingAttacks(from)&^p.Occupied[us])
}

// castlingOption names one of the four castling moves: the rights bit that
// must be set, the squares that must be empty, and the squares (including
// the king's start and destination) that must not be attacked.
type castlingOption struct {
	right        CastlingRights
	mustBeEmpty  Bitboard
	mustBeQuiet  [3]Square
	kingFrom, to Square
}

func castlingOptions(us Color) [2]castlingOption {
	if us == White {
		return [2]castlingOption{
			{WhiteKingSideCastle, SquareBB(F1) | SquareBB(G1), [3]Square{E1, F1, G1}, E1, G1},
			{WhiteQueenSideCastle, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), [3]Square{E1, D1, C1}, E1, C1},
		}
	}
	return [2]castlingOption{
		{BlackKingSideCastle, SquareBB(F8) | SquareBB(G8), [3]Square{E8, F8, G8}, E8, G8},
		{BlackQueenSideCastle, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), [3]Square{E8, D8, C8}, E8, C8},
	}
}

// generateCastlingMoves adds O-O/O-O-O for us when rights allow it, the
// path is clear, and the king does not start, pass through, or land on an
// attacked square.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	for _, opt := range castlingOptions(us) {
		if p.CastlingRights&opt.right == 0 {
			continue
		}
		if p.AllOccupied&opt.mustBeEmpty != 0 {
			continue
		}
		blocked := false
		for _, sq := range opt.mustBeQuiet {
			if p.IsSquareAttacked(sq, them) {
				blocked = true
				break
			}
		}
		if !blocked {
			ml.Add(NewCastling(opt.kingFrom, opt.to))
		}
	}
}

// generateCaptures adds captures, capture-promotions, push-promotions and
// en passant, for quiescence search.
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	pawns := p.Pieces[us][Pawn]
	s := pawnShifts(pawns, enemies, ^occupied, us)

	for bb := s.attackL &^ s.promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(Square(int(to)-s.pushDir+1), to))
	}
	for bb := s.attackR &^ s.promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(Square(int(to)-s.pushDir-1), to))
	}
	for bb := s.attackL & s.promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-s.pushDir+1), to)
	}
	for bb := s.attackR & s.promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-s.pushDir-1), to)
	}
	// Push promotions aren't captures, but quiescence must still see them:
	// a pawn promoting to queen is at least as loud as most captures.
	for bb := s.push1 & s.promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-s.pushDir), to)
	}

	p.addEnPassant(ml, pawns, us)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		addTargets(ml, from, KnightAttacks(from)&enemies)
	}
	for _, sl := range sliders {
		pieces := p.Pieces[us][sl.pt]
		for pieces != 0 {
			from := pieces.PopLSB()
			addTargets(ml, from, sl.attacks(from, occupied)&enemies)
		}
	}

	from := p.KingSquare[us]
	addTargets(ml, from, KingAttacks(from)&enemies)
}

func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	pinned := p.ComputePinned()
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); p.IsLegal(m, pinned) {
			result.Add(m)
		}
	}
	return result
}

// IsLegal reports whether m leaves the mover's own king safe. King steps
// are resolved directly from attack data (including castling, whose path
// squares generateCastlingMoves already vetted). A non-king move of an
// unpinned piece while not in check can never expose the king, so it is
// legal without playing it out; a pinned piece may still slide along the
// pin line (including capturing the pinner) without exposing the king,
// which Aligned(from, to, ksq) recognizes. Every other case — in check, or
// an en passant capture (whose double pawn removal can expose the king
// along a rank a simple pin test never sees) — falls back to making the
// move, testing, and unmaking it. pinned must be p.ComputePinned() for the
// position as it stood before m; callers filtering a whole move list
// compute it once and reuse it across every candidate.
func (p *Position) IsLegal(m Move, pinned Bitboard) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	ksq := p.KingSquare[us]

	if from == ksq {
		if m.IsCastling() {
			return true
		}
		occ := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(m.To(), them, occ) == 0
	}

	if !p.InCheck() && !m.IsEnPassant() {
		if pinned&SquareBB(from) == 0 {
			return true
		}
		return Aligned(from, m.To(), ksq)
	}

	undo, ok := p.MakeMove(m)
	if !ok {
		return false
	}
	attacked := p.IsSquareAttacked(ksq, them)
	p.UnmakeMove(m, undo)
	return !attacked
}

// MakeMove applies m, updating every incremental field (bitboards, Hash,
// CastlingRights, EnPassant, clocks, Checkers) and returns the information
// needed to undo it. The bool is false only when from is empty, which
// should not happen for moves out of this package's own generators but
// can for hand-parsed UCI input.
func (p *Position) MakeMove(m Move) (UndoInfo, bool) {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
		Checkers:       p.Checkers,
	}

	us, them := p.SideToMove, p.SideToMove.Other()
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return undo, false
	}
	pt := piece.Type()

	p.Hash ^= zobrist.sideMove
	p.Hash ^= zobrist.castling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobrist.enPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	switch {
	case m.IsEnPassant():
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		undo.CapturedPiece = p.removePiece(capSq)
		p.Hash ^= zobrist.piece[them][Pawn][capSq]
	default:
		if captured := p.PieceAt(to); captured != NoPiece {
			undo.CapturedPiece = captured
			p.removePiece(to)
			p.Hash ^= zobrist.piece[them][captured.Type()][to]
		}
	}

	p.movePiece(from, to)
	p.Hash ^= zobrist.piece[us][pt][from]
	p.Hash ^= zobrist.piece[us][pt][to]

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Hash ^= zobrist.piece[us][Pawn][to]
		p.Hash ^= zobrist.piece[us][promoPt][to]
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.movePiece(rookFrom, rookTo)
		p.Hash ^= zobrist.piece[us][Rook][rookFrom]
		p.Hash ^= zobrist.piece[us][Rook][rookTo]
	}

	p.updateCastlingRightsAfter(pt, us, from, to)
	p.Hash ^= zobrist.castling[p.CastlingRights]

	// A double push only opens an en-passant target when an enemy pawn
	// actually stands beside it and could recapture there; setting the
	// target unconditionally would hash otherwise-identical positions as
	// distinct and corrupt transposition table lookups.
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		if pawnAttacks[us][epSquare]&p.Pieces[them][Pawn] != 0 {
			p.EnPassant = epSquare
			p.Hash ^= zobrist.enPassant[epSquare.File()]
		}
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()
	return undo, true
}

// castlingRookSquares returns the rook's from/to squares for a king move
// from->to recognized as castling (to > from means kingside).
func castlingRookSquares(from, to Square) (Square, Square) {
	rank := from.Rank()
	if to > from {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// updateCastlingRightsAfter clears whichever castling rights a king move
// or a rook moving/being captured off its home square revokes.
func (p *Position) updateCastlingRightsAfter(pt PieceType, us Color, from, to Square) {
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
}

// UnmakeMove reverses a prior MakeMove(m) given the UndoInfo it returned.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := p.SideToMove
	us := them.Other()
	from, to := m.From(), m.To()

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers
	p.SideToMove = us
	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][promoPt] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	p.movePiece(to, from)

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(from, to)
		p.movePiece(rookTo, rookFrom)
	}

	if undo.CapturedPiece != NoPiece {
		capSq := to
		if m.IsEnPassant() {
			capSq = to - 8
			if us == Black {
				capSq = to + 8
			}
		}
		p.setPiece(undo.CapturedPiece, capSq)
	}
}

// HasLegalMoves reports whether the side to move has at least one legal
// reply.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	pinned := p.ComputePinned()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i), pinned) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no legal
// reply.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move has no legal reply but is
// not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw reports whether the position is drawn by stalemate, the
// fifty-move rule, or insufficient material. Repetition is tracked by the
// caller (search keeps the game's hash history), not by Position itself.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial reports whether neither side holds enough force
// to deliver checkmate by any sequence of legal moves: king-only endings
// and king-plus-one-minor-piece endings.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	wMinors := p.Pieces[White][Knight].PopCount() + p.Pieces[White][Bishop].PopCount()
	bMinors := p.Pieces[Black][Knight].PopCount() + p.Pieces[Black][Bishop].PopCount()

	if wMinors == 0 && bMinors == 0 {
		return true
	}
	if wMinors <= 1 && bMinors == 0 {
		return true
	}
	if bMinors <= 1 && wMinors == 0 {
		return true
	}
	return false
}
