package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/jieqi-dev/engine/pkg/search"
	"github.com/jieqi-dev/engine/pkg/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bareKingsPlusRooks(t *testing.T) (*board.ZobristTable, *board.Position) {
	t.Helper()

	zt := board.NewZobristTable(1)
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
	return zt, pos
}

func TestIterativeLaunchRunsToDepthLimit(t *testing.T) {
	_, pos := bareKingsPlusRooks(t)
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	pvs := search.PVS{Eval: search.Quiescence{Explore: search.QuiescentExploration, Eval: eval.Default()}}

	it := &searchctl.Iterative{Root: pvs}
	opt := searchctl.Options{DepthLimit: lang.Some(uint(2))}

	h, out := it.Launch(context.Background(), pos, board.Red, tt, opt)

	var last search.PV
	for pv := range out {
		last = pv
	}
	assert.Equal(t, 2, last.Depth)
	assert.Equal(t, last, h.Halt())
}

func TestIterativeHaltStopsAnInFlightSearch(t *testing.T) {
	_, pos := bareKingsPlusRooks(t)
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	pvs := search.PVS{Eval: search.Quiescence{Explore: search.QuiescentExploration, Eval: eval.Default()}}

	it := &searchctl.Iterative{Root: pvs}
	h, _ := it.Launch(context.Background(), pos, board.Red, tt, searchctl.Options{})

	pv := h.Halt()
	assert.GreaterOrEqual(t, pv.Depth, 1)
}

func TestTimeControlLimitsKeepHardAtThreeTimesSoft(t *testing.T) {
	tc := searchctl.TimeControl{Budget: 300 * time.Millisecond}
	soft, hard := tc.Limits()
	assert.Equal(t, 100*time.Millisecond, soft)
	assert.Equal(t, 300*time.Millisecond, hard)
}

func TestEnforceTimeControlReturnsFalseWhenUnset(t *testing.T) {
	_, pos := bareKingsPlusRooks(t)
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	pvs := search.PVS{Eval: search.Quiescence{Explore: search.QuiescentExploration, Eval: eval.Default()}}
	it := &searchctl.Iterative{Root: pvs}

	h, _ := it.Launch(context.Background(), pos, board.Red, tt, searchctl.Options{})
	defer h.Halt()

	_, ok := searchctl.EnforceTimeControl(context.Background(), h, lang.Optional[searchctl.TimeControl]{})
	assert.False(t, ok)
}
