package eval

import "github.com/jieqi-dev/engine/pkg/board"

// NominalValue is the standard Xiangqi piece value in centipawns, used both for a
// revealed piece's material contribution and for move ordering's MVV-LVA gain (spec §4.4's
// material base values, taken verbatim: king 100000, rook 9000, cannon 4500, horse 4000,
// elephant 2000, advisor 2000, pawn 1000).
func NominalValue(k board.Kind) Score {
	switch k {
	case board.Rook:
		return 9000
	case board.Cannon:
		return 4500
	case board.Horse:
		return 4000
	case board.Elephant:
		return 2000
	case board.Advisor:
		return 2000
	case board.Pawn:
		return 1000
	case board.King:
		return 100000
	default:
		return 0
	}
}

// hiddenPoolAverage is the expected nominal value of a still-hidden piece: the average
// value of the 15 non-king kinds dealt to one side (2 each of advisor/elephant/horse/
// rook/cannon, 5 pawns), reflecting that its true identity is an unknown draw from that
// pool until it moves (spec §4.4 "hidden-piece valuation").
var hiddenPoolAverage = func() Score {
	counts := []struct {
		kind  board.Kind
		count int
	}{
		{board.Advisor, 2}, {board.Elephant, 2}, {board.Horse, 2},
		{board.Rook, 2}, {board.Cannon, 2}, {board.Pawn, 5},
	}
	var total Score
	var n int
	for _, c := range counts {
		total += NominalValue(c.kind) * Score(c.count)
		n += c.count
	}
	return total / Score(n)
}()

// PieceValue returns a piece's contribution to material balance: its nominal value if
// revealed, or the pool average (discounted slightly, since a hidden piece cannot yet act
// on its identity) if still hidden.
func PieceValue(p board.Piece) Score {
	if !p.Hidden {
		return NominalValue(p.Kind)
	}
	return hiddenPoolAverage * 0.9
}

// RevealBonus is the swing in a piece's valuation the moment it is revealed: the
// difference between its true value and the pool average the opponent had priced it at,
// positive when the reveal turns out to favor the mover (spec §4.4, §9 "information
// asymmetry shifts material estimates").
func RevealBonus(k board.Kind) Score {
	return NominalValue(k) - hiddenPoolAverage
}

// CaptureGain is the material gain of capturing p, used by move ordering (MVV-LVA).
func CaptureGain(p board.Piece) Score {
	return PieceValue(p)
}
