package board

import "math/rand"

// nonKingCounts lists how many of each non-king kind each color starts with, per the
// standard Xiangqi piece set (spec §3 "Starting squares" / §9 "dark-piece pool").
var nonKingCounts = []struct {
	kind  Kind
	count int
}{
	{Advisor, 2},
	{Elephant, 2},
	{Horse, 2},
	{Rook, 2},
	{Cannon, 2},
	{Pawn, 5},
}

func startSquares(color Color) []Square {
	var squares []Square
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if StartKind(sq) != NoKind && StartKind(sq) != King {
			r := sq.Rank()
			onSide := (color == Red && r <= 3) || (color == Black && r >= 6)
			if onSide {
				squares = append(squares, sq)
			}
		}
	}
	return squares
}

func kingSquare(color Color) Square {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if StartKind(sq) == King {
			r := sq.Rank()
			if (color == Red && r <= 3) || (color == Black && r >= 6) {
				return sq
			}
		}
	}
	panic("no king start square for color")
}

// NewInitialPosition deals out a fresh Jieqi starting position: both kings revealed on
// their palace squares, every other piece hidden on its starting square with its actual
// kind assigned by an independent per-color shuffle of the standard piece pool (spec §3,
// §9 "information asymmetry"). seed makes the deal reproducible.
func NewInitialPosition(zt *ZobristTable, seed int64) (*Position, error) {
	r := rand.New(rand.NewSource(seed))

	var placements []Placement
	for _, color := range []Color{Red, Black} {
		placements = append(placements, Placement{Square: kingSquare(color), Piece: Piece{Color: color, Kind: King, Hidden: false}})

		var pool []Kind
		for _, nc := range nonKingCounts {
			for i := 0; i < nc.count; i++ {
				pool = append(pool, nc.kind)
			}
		}
		r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		for i, sq := range startSquares(color) {
			placements = append(placements, Placement{Square: sq, Piece: Piece{Color: color, Kind: pool[i], Hidden: true}})
		}
	}

	return NewPosition(zt, placements)
}
