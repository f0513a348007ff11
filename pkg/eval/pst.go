package eval

import "github.com/jieqi-dev/engine/pkg/board"

// pst holds a piece-square table indexed by Red's orientation (rank 0 is Red's own back
// rank); Black's bonus at a square is read from the rank-mirrored entry. Values are in
// centipawns and additive to NominalValue. Grounded on the positional terms described for
// each piece in the reference evaluator (central horses and cannons on the opponent's
// half are worth more; advancing pawns, especially across the river, are worth more).
type pst [int(board.NumRanks)][int(board.NumFiles)]Score

func uniform(v Score) pst {
	var t pst
	for r := range t {
		for f := range t[r] {
			t[r][f] = v
		}
	}
	return t
}

var pawnPST = pst{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{5, 5, 10, 10, 15, 10, 10, 5, 5},
	{20, 25, 35, 45, 50, 45, 35, 25, 20},
	{30, 40, 55, 65, 70, 65, 55, 40, 30},
	{40, 55, 70, 80, 85, 80, 70, 55, 40},
	{50, 65, 80, 90, 95, 90, 80, 65, 50},
	{60, 75, 90, 100, 105, 100, 90, 75, 60},
}

var horsePST = pst{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 10, 15, 15, 15, 15, 15, 10, 0},
	{0, 15, 25, 25, 25, 25, 25, 15, 0},
	{10, 20, 30, 40, 40, 40, 30, 20, 10},
	{15, 30, 40, 50, 55, 50, 40, 30, 15},
	{20, 35, 50, 60, 65, 60, 50, 35, 20},
	{25, 40, 55, 65, 70, 65, 55, 40, 25},
	{20, 35, 50, 60, 65, 60, 50, 35, 20},
	{10, 25, 35, 45, 50, 45, 35, 25, 10},
	{0, 10, 20, 25, 30, 25, 20, 10, 0},
}

var cannonPST = pst{
	{0, 10, 15, 15, 20, 15, 15, 10, 0},
	{5, 15, 20, 25, 30, 25, 20, 15, 5},
	{5, 15, 25, 30, 35, 30, 25, 15, 5},
	{10, 20, 30, 40, 50, 40, 30, 20, 10},
	{15, 30, 45, 55, 60, 55, 45, 30, 15},
	{20, 35, 50, 60, 65, 60, 50, 35, 20},
	{15, 30, 45, 55, 60, 55, 45, 30, 15},
	{10, 25, 35, 45, 50, 45, 35, 25, 10},
	{5, 15, 25, 30, 35, 30, 25, 15, 5},
	{0, 10, 15, 20, 25, 20, 15, 10, 0},
}

var rookPST = pst{
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{5, 5, 10, 15, 20, 15, 10, 5, 5},
	{10, 15, 20, 30, 35, 30, 20, 15, 10},
	{15, 20, 30, 40, 45, 40, 30, 20, 15},
	{20, 25, 35, 45, 50, 45, 35, 25, 20},
	{25, 30, 40, 50, 55, 50, 40, 30, 25},
	{30, 35, 45, 55, 60, 55, 45, 35, 30},
	{35, 40, 50, 60, 70, 60, 50, 40, 35},
}

var elephantPST = uniform(0)
var advisorPST = uniform(0)
var kingPST = uniform(0)

func tableFor(k board.Kind) *pst {
	switch k {
	case board.Pawn:
		return &pawnPST
	case board.Horse:
		return &horsePST
	case board.Cannon:
		return &cannonPST
	case board.Rook:
		return &rookPST
	case board.Elephant:
		return &elephantPST
	case board.Advisor:
		return &advisorPST
	default:
		return &kingPST
	}
}

// PositionalBonus returns the piece-square bonus for a revealed piece of kind k, color c,
// standing on sq. A still-hidden piece has no positional bonus: its movement-type identity
// is public but its eventual value is not, so pst pricing only applies post-reveal.
func PositionalBonus(k board.Kind, c board.Color, sq board.Square) Score {
	t := tableFor(k)
	r := int(sq.Rank())
	if c == board.Black {
		r = int(board.NumRanks) - 1 - r
	}
	return t[r][int(sq.File())]
}
