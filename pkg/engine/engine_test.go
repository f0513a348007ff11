package engine_test

import (
	"context"
	"testing"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategiesIncludesEveryBundledName(t *testing.T) {
	names := engine.Names()
	for _, want := range []string{"random", "greedy", "minimax", "iterative", "pvs", "muses", "mcts", "mcts_rave", "mcts_eval"} {
		assert.Contains(t, names, want)
	}
}

func TestCreateRejectsUnknownStrategy(t *testing.T) {
	zt := board.NewZobristTable(1)
	_, err := engine.Create("not-a-strategy", zt, engine.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrUnknownStrategy)
}

func TestGreedyStrategyReturnsEveryLegalMoveRanked(t *testing.T) {
	zt := board.NewZobristTable(2)
	pos, err := board.NewInitialPosition(zt, 2)
	require.NoError(t, err)

	strat, err := engine.Create("greedy", zt, engine.Config{})
	require.NoError(t, err)

	legal := strat.LegalMoves(context.Background(), pos, board.Red)
	require.NotEmpty(t, legal)

	ranked, err := strat.BestMoves(context.Background(), pos, board.Red, 0)
	require.NoError(t, err)
	assert.Len(t, ranked, len(legal))
}

func TestMinimaxStrategyReturnsALegalMove(t *testing.T) {
	zt := board.NewZobristTable(3)
	pos, err := board.NewInitialPosition(zt, 3)
	require.NoError(t, err)

	strat, err := engine.Create("minimax", zt, engine.Config{})
	require.NoError(t, err)

	ranked, err := strat.BestMoves(context.Background(), pos, board.Red, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.True(t, board.IsLegal(pos, board.Red, ranked[0].Move))
}
