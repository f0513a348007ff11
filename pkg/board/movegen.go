package board

// PseudoLegalMoves generates every move available to color's pieces without checking
// whether the mover is left in check (spec §4.1's pseudo-legal generation step, filtered
// down to legal moves by LegalMoves / the Selection predicates in pkg/search). Each move's
// Capture is the piece currently on its target square, if any.
func PseudoLegalMoves(pos *Position, color Color) []Move {
	var moves []Move
	pos.ForEach(func(from Square, p Piece) {
		if p.Color != color {
			return
		}
		kind := MovementType(p, from)
		typ := Plain
		if p.Hidden {
			typ = Reveal
		}
		for _, to := range Attacks(pos, color, from, kind, p.Hidden) {
			captured, _ := pos.Piece(to)
			moves = append(moves, Move{Type: typ, From: from, To: to, Capture: captured})
		}
	})
	return moves
}

// LegalMoves filters PseudoLegalMoves down to moves that do not leave color's own king in
// check afterwards (spec §4.1, §8 S2/S6). The flying-general rule is enforced for free here:
// kingAttacks treats a clear face-off file as an attack on the opposing king, so a move that
// exposes the mover's king to it is already flagged as self-check by IsChecked.
func LegalMoves(pos *Position, color Color) []Move {
	pseudo := PseudoLegalMoves(pos, color)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		annotated, undo := pos.Apply(m)
		if !pos.IsChecked(color) {
			legal = append(legal, annotated)
		}
		pos.Undo(undo)
	}
	return legal
}

// IsLegal reports whether m is among color's legal moves in pos.
func IsLegal(pos *Position, color Color, m Move) bool {
	for _, lm := range LegalMoves(pos, color) {
		if lm.Equals(m) {
			return true
		}
	}
	return false
}

// IsTerminal reports whether color has no legal move, and if so whether it is checkmated
// (no legal move while in check) or stalemated (no legal move otherwise), per spec §4.2.
func IsTerminal(pos *Position, color Color) (Result, bool) {
	if len(LegalMoves(pos, color)) > 0 {
		return Result{}, false
	}
	if pos.IsChecked(color) {
		return Result{Outcome: Loss(color), Reason: Checkmate}, true
	}
	return Result{Outcome: Draw, Reason: Stalemate}, true
}
