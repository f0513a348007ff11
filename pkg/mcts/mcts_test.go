package mcts_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/mcts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratRookVsKing(t *testing.T) (*board.Position, board.Color) {
	zt := board.NewZobristTable(7)
	e0 := board.NewSquare(board.FileE, 0)
	e9 := board.NewSquare(board.FileE, 9)
	a5 := board.NewSquare(board.FileA, 5)

	pos, err := board.NewPosition(zt, []board.Placement{
		{Square: e0, Piece: board.Piece{Color: board.Red, Kind: board.King}},
		{Square: e9, Piece: board.Piece{Color: board.Black, Kind: board.King}},
		{Square: a5, Piece: board.Piece{Color: board.Red, Kind: board.Rook}},
	})
	require.NoError(t, err)
	return pos, board.Red
}

func TestUCTReturnsVisitsForEveryLegalMove(t *testing.T) {
	pos, color := ratRookVsKing(t)
	u := mcts.UCT{Rand: rand.New(rand.NewSource(1))}

	ranked := u.Search(context.Background(), pos, color, 200)
	require.NotEmpty(t, ranked)

	total := 0
	for _, r := range ranked {
		total += r.Visits
	}
	assert.Equal(t, 200, total)
}

func TestRAVEPrefersTheRookCaptureOverAHangingPiece(t *testing.T) {
	zt := board.NewZobristTable(3)
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

	r := mcts.RAVE{Rand: rand.New(rand.NewSource(2))}
	ranked := r.Search(context.Background(), pos, board.Red, 300)
	require.NotEmpty(t, ranked)

	best := ranked[0]
	assert.True(t, best.Move.IsCapture(), "the most-visited root move should be the free capture")
}

func TestPolicyValueHonorsProgressiveWidening(t *testing.T) {
	pos, color := ratRookVsKing(t)
	pv := mcts.PolicyValue{Rand: rand.New(rand.NewSource(4))}

	ranked := pv.Search(context.Background(), pos, color, 64)
	require.NotEmpty(t, ranked)
	assert.LessOrEqual(t, len(ranked), len(board.LegalMoves(pos, color)))
}
