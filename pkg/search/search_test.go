package search_test

import (
	"context"
	"testing"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/jieqi-dev/engine/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() (search.PVS, search.TranspositionTable) {
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	pvs := search.PVS{
		Eval: search.Quiescence{Explore: search.QuiescentExploration, Eval: eval.Default()},
	}
	return pvs, tt
}

func TestSearchPrefersTheWinningCapture(t *testing.T) {
	zt := board.NewZobristTable(1)

	// Red is up two rooks against a bare king: any reasonable search should return a
	// heavily favorable score for red and a non-empty principal variation.
	e0 := board.NewSquare(board.FileE, 0)
	e9 := board.NewSquare(board.FileE, 9)
	a5 := board.NewSquare(board.FileA, 5)
	i5 := board.NewSquare(board.FileI, 5)

	pos, err := board.NewPosition(zt, []board.Placement{
		{Square: e0, Piece: board.Piece{Color: board.Red, Kind: board.King}},
		{Square: e9, Piece: board.Piece{Color: board.Black, Kind: board.King}},
		{Square: a5, Piece: board.Piece{Color: board.Red, Kind: board.Rook}},
		{Square: i5, Piece: board.Piece{Color: board.Red, Kind: board.Rook}},
	})
	require.NoError(t, err)

	pvs, tt := newEngine()
	sctx := &search.Context{TT: tt}

	_, score, pv, err := pvs.Search(context.Background(), sctx, pos, board.Red, 3)
	require.NoError(t, err)
	require.NotEmpty(t, pv)
	assert.Greater(t, float64(score), 0.0)
}

func TestQuiescenceDoesNotMissAHangingCapture(t *testing.T) {
	zt := board.NewZobristTable(1)
	e0 := board.NewSquare(board.FileE, 0)
	d9 := board.NewSquare(board.FileD, 9)
	a0 := board.NewSquare(board.FileA, 0)
	a1 := board.NewSquare(board.FileA, 1)

	// The kings stand on different files, so red is not in check and the capture is legal.
	pos, err := board.NewPosition(zt, []board.Placement{
		{Square: e0, Piece: board.Piece{Color: board.Red, Kind: board.King}},
		{Square: d9, Piece: board.Piece{Color: board.Black, Kind: board.King}},
		{Square: a0, Piece: board.Piece{Color: board.Red, Kind: board.Rook}},
		{Square: a1, Piece: board.Piece{Color: board.Black, Kind: board.Horse}},
	})
	require.NoError(t, err)

	q := search.Quiescence{Explore: search.QuiescentExploration, Eval: eval.Default()}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf}
	standPat := eval.Default().Evaluate(context.Background(), pos)

	_, score := q.QuietSearch(context.Background(), sctx, pos, board.Red)
	assert.Greater(t, float64(score), float64(standPat), "red should find the free rook-takes-horse capture")
}

func TestMoveListOrdersCapturesFirst(t *testing.T) {
	quiet := board.Move{From: board.NewSquare(board.FileA, 0), To: board.NewSquare(board.FileA, 1)}
	capture := board.Move{
		From:    board.NewSquare(board.FileB, 0),
		To:      board.NewSquare(board.FileB, 1),
		Capture: board.Piece{Color: board.Black, Kind: board.Rook},
	}

	ml := search.NewMoveList([]board.Move{quiet, capture}, search.MVVLVA)
	first, ok := ml.Next()
	require.True(t, ok)
	assert.True(t, first.Equals(capture))
}
