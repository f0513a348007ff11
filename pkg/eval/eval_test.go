package eval_test

import (
	"context"
	"testing"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialIsZeroOnSymmetricStart(t *testing.T) {
	zt := board.NewZobristTable(5)
	pos, err := board.NewInitialPosition(zt, 5)
	require.NoError(t, err)

	// Hidden pieces on both sides price identically (pool average), so a freshly dealt
	// board is materially balanced regardless of the shuffle.
	assert.Equal(t, eval.Score(0), eval.Material{}.Evaluate(context.Background(), pos))
}

func TestRevealBonusIsZeroSumAcrossThePool(t *testing.T) {
	// Weighted by how many of each kind the hidden pool holds, the bonuses (actual value
	// minus the pool average) cancel out.
	counts := map[board.Kind]int{board.Advisor: 2, board.Elephant: 2, board.Horse: 2, board.Rook: 2, board.Cannon: 2, board.Pawn: 5}
	var total eval.Score
	for k, n := range counts {
		total += eval.Score(n) * eval.RevealBonus(k)
	}
	assert.Equal(t, eval.Score(0), total)
}

func TestWinRateIsMonotonic(t *testing.T) {
	assert.True(t, eval.WinRate(1000) > eval.WinRate(0))
	assert.True(t, eval.WinRate(0) > eval.WinRate(-1000))
	assert.InDelta(t, 0.5, eval.WinRate(0), 0.001)
}

func TestHiddenDifferentialIsZeroOnASymmetricDeal(t *testing.T) {
	zt := board.NewZobristTable(6)
	pos, err := board.NewInitialPosition(zt, 6)
	require.NoError(t, err)

	// Freshly dealt: every non-king piece on both sides is still hidden, so the
	// early-game differential is symmetric.
	assert.Equal(t, eval.Score(0), eval.HiddenDifferential{}.Evaluate(context.Background(), pos))
}

func TestReportScoreUsesTheMateSentinelInsteadOfSaturating(t *testing.T) {
	assert.Equal(t, 10000.0, eval.ReportScore(eval.MaxScore-1))
	assert.Equal(t, -10000.0, eval.ReportScore(-eval.MaxScore+1))
	assert.False(t, eval.IsMateScore(eval.Score(150000))) // a plausible full-board material swing
	assert.InDelta(t, eval.Normalise(1000), eval.ReportScore(1000), 0.001)
}

func TestCheckPenaltyFavorsTheUncheckedSide(t *testing.T) {
	zt := board.NewZobristTable(1)
	e0 := board.NewSquare(board.FileE, 0)
	e9 := board.NewSquare(board.FileE, 9)
	pos, err := board.NewPosition(zt, []board.Placement{
		{Square: e0, Piece: board.Piece{Color: board.Red, Kind: board.King}},
		{Square: e9, Piece: board.Piece{Color: board.Black, Kind: board.King}},
	})
	require.NoError(t, err)

	// Both kings face off across an open file: both sides are in check, so the penalty
	// cancels out.
	assert.Equal(t, eval.Score(0), eval.Check{}.Evaluate(context.Background(), pos))
}
