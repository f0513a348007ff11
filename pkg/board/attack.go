package board

// This file implements C2: the attack tables for every piece kind. The topology of each
// kind's move (direction offsets, the horse's leg offsets, the elephant's eye offsets, the
// palace/river predicates) is fixed at init() time, mirroring the teacher's pattern of
// precomputing attack data once at package load (see bitboard.go's init-time table
// construction) even though, unlike a chessboard, Jieqi's blocker-dependent kinds (horse,
// elephant, cannon, rook, and the king's flying-general rule) still need the live board to
// resolve legs/screens/blockers, so the tables here hold offsets rather than finished
// target sets.
//
// Forward direction ("from s, what can this piece reach") is Attacks. Reverse direction
// ("what can attack s") is IsAttacked, grounded on original_source/backend/jieqi/board.py's
// is_in_check_slow: rather than a separately precomputed reverse table, it reuses Attacks
// for every enemy piece and tests membership -- acceptable for a 90-square board with at
// most 16 pieces per side (spec §9 calls plain recursion/iteration acceptable at this
// scale).

var (
	orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

	// horseLegs pairs each leg offset with the two move offsets it unblocks.
	horseLegs = []struct {
		leg   [2]int
		moves [][2]int
	}{
		{[2]int{-1, 0}, [][2]int{{-2, -1}, {-2, 1}}},
		{[2]int{1, 0}, [][2]int{{2, -1}, {2, 1}}},
		{[2]int{0, -1}, [][2]int{{-1, -2}, {1, -2}}},
		{[2]int{0, 1}, [][2]int{{-1, 2}, {1, 2}}},
	}
)

// startKind maps each of the 32 fixed starting squares to its movement type; all other
// squares are NoKind (spec §3 "Starting squares").
var startKind [NumSquares]Kind

func init() {
	place := func(f File, r Rank, k Kind) { startKind[NewSquare(f, r)] = k }
	for _, c := range []struct {
		back, cannon, pawn Rank
	}{{0, 2, 3}, {9, 7, 6}} {
		place(FileA, c.back, Rook)
		place(FileB, c.back, Horse)
		place(FileC, c.back, Elephant)
		place(FileD, c.back, Advisor)
		place(FileE, c.back, King)
		place(FileF, c.back, Advisor)
		place(FileG, c.back, Elephant)
		place(FileH, c.back, Horse)
		place(FileI, c.back, Rook)
		place(FileB, c.cannon, Cannon)
		place(FileH, c.cannon, Cannon)
		for _, f := range []File{FileA, FileC, FileE, FileG, FileI} {
			place(f, c.pawn, Pawn)
		}
	}
}

// StartKind returns the movement type of a starting square, or NoKind if sq is not one of
// the 32 fixed starting squares.
func StartKind(sq Square) Kind {
	return startKind[sq]
}

// IsStartSquare reports whether sq is one of the 32 fixed starting squares.
func IsStartSquare(sq Square) bool {
	return startKind[sq] != NoKind
}

// MovementType returns the movement type a piece uses: its actual kind if revealed, or the
// movement type of its (necessarily starting) square if hidden.
func MovementType(p Piece, sq Square) Kind {
	if !p.Hidden {
		return p.Kind
	}
	return StartKind(sq)
}

func canLandOn(pos *Position, color Color, sq Square) bool {
	if p, ok := pos.Piece(sq); ok {
		return p.Color != color
	}
	return true
}

// Attacks returns the squares a piece of the given color, kind (movement type) and
// hidden-state standing on sq can move to, per spec §4.1. This is both the forward move
// generator and, via IsAttacked, the reverse in-check test.
func Attacks(pos *Position, color Color, sq Square, kind Kind, hidden bool) []Square {
	switch kind {
	case King:
		return kingAttacks(pos, color, sq)
	case Advisor:
		return advisorAttacks(pos, color, sq, hidden)
	case Elephant:
		return elephantAttacks(pos, color, sq, hidden)
	case Horse:
		return horseAttacks(pos, color, sq)
	case Rook:
		return slideAttacks(pos, color, sq, false)
	case Cannon:
		return cannonAttacks(pos, color, sq)
	case Pawn:
		return pawnAttacks(pos, color, sq)
	default:
		return nil
	}
}

func kingAttacks(pos *Position, color Color, sq Square) []Square {
	var out []Square
	for _, d := range orthogonal {
		if t, ok := sq.Offset(d[0], d[1]); ok && t.InPalace(color) && canLandOn(pos, color, t) {
			out = append(out, t)
		}
	}

	// Flying general: the two kings face each other along an empty file (spec §4.1, §8).
	if enemy, ok := pos.FindKing(color.Opponent()); ok && enemy.File() == sq.File() {
		lo, hi := sq.Rank(), enemy.Rank()
		if lo > hi {
			lo, hi = hi, lo
		}
		blocked := false
		for r := lo + 1; r < hi; r++ {
			if _, occupied := pos.Piece(NewSquare(sq.File(), r)); occupied {
				blocked = true
				break
			}
		}
		if !blocked {
			out = append(out, enemy)
		}
	}
	return out
}

func advisorAttacks(pos *Position, color Color, sq Square, hidden bool) []Square {
	var out []Square
	for _, d := range diagonal {
		t, ok := sq.Offset(d[0], d[1])
		if !ok {
			continue
		}
		if hidden && !t.InPalace(color) {
			continue // hidden advisors are confined to the palace
		}
		if canLandOn(pos, color, t) {
			out = append(out, t)
		}
	}
	return out
}

func elephantAttacks(pos *Position, color Color, sq Square, hidden bool) []Square {
	var out []Square
	for _, d := range diagonal {
		t, ok := sq.Offset(2*d[0], 2*d[1])
		if !ok {
			continue
		}
		if hidden && !t.OnOwnSide(color) {
			continue // hidden elephants may not cross the river
		}
		eye, _ := sq.Offset(d[0], d[1])
		if _, blocked := pos.Piece(eye); blocked {
			continue
		}
		if canLandOn(pos, color, t) {
			out = append(out, t)
		}
	}
	return out
}

func horseAttacks(pos *Position, color Color, sq Square) []Square {
	var out []Square
	for _, hl := range horseLegs {
		leg, ok := sq.Offset(hl.leg[0], hl.leg[1])
		if !ok {
			continue
		}
		if _, blocked := pos.Piece(leg); blocked {
			continue
		}
		for _, mv := range hl.moves {
			if t, ok := sq.Offset(mv[0], mv[1]); ok && canLandOn(pos, color, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// slideAttacks generates rook-style sliding moves. The bool parameter is unused; cannon
// moves are generated separately by cannonAttacks.
func slideAttacks(pos *Position, color Color, sq Square, _ bool) []Square {
	var out []Square
	for _, d := range orthogonal {
		for step := 1; ; step++ {
			t, ok := sq.Offset(d[0]*step, d[1]*step)
			if !ok {
				break
			}
			target, occupied := pos.Piece(t)
			if !occupied {
				out = append(out, t)
				continue
			}
			if target.Color != color {
				out = append(out, t)
			}
			break
		}
	}
	return out
}

func cannonAttacks(pos *Position, color Color, sq Square) []Square {
	var out []Square
	for _, d := range orthogonal {
		screen := false
		for step := 1; ; step++ {
			t, ok := sq.Offset(d[0]*step, d[1]*step)
			if !ok {
				break
			}
			target, occupied := pos.Piece(t)
			if !screen {
				if !occupied {
					out = append(out, t)
					continue
				}
				screen = true
				continue
			}
			if occupied {
				if target.Color != color {
					out = append(out, t)
				}
				break
			}
		}
	}
	return out
}

func pawnAttacks(pos *Position, color Color, sq Square) []Square {
	var out []Square
	forward := 1
	if color == Black {
		forward = -1
	}
	if t, ok := sq.Offset(forward, 0); ok && canLandOn(pos, color, t) {
		out = append(out, t)
	}
	if !sq.OnOwnSide(color) {
		for _, df := range []int{-1, 1} {
			if t, ok := sq.Offset(0, df); ok && canLandOn(pos, color, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// IsAttacked reports whether sq is attacked by any piece of byColor (the reverse attack-table
// query, spec §4.1/§4.2). Each piece attacks according to its movement type, so a still-hidden
// advisor attacks as an advisor even if its true identity differs.
func IsAttacked(pos *Position, sq Square, byColor Color) bool {
	attacked := false
	pos.ForEach(func(from Square, p Piece) {
		if attacked || p.Color != byColor {
			return
		}
		kind := MovementType(p, from)
		for _, t := range Attacks(pos, p.Color, from, kind, p.Hidden) {
			if t == sq {
				attacked = true
				return
			}
		}
	})
	return attacked
}
