package search

import (
	"context"
	"errors"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
)

// ErrHalted is returned by Search when the context was cancelled before a result could be
// produced at all (the caller still has whatever the previous completed depth returned).
var ErrHalted = errors.New("search halted")

// Context carries the alpha-beta window and shared transposition table into a Search or
// QuietSearch call (spec §4.5). Unlike the teacher's chess-clock-aware Context, this one
// does not carry ponder/noise state: this engine has no move randomization or pondering.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
}

// Search is a full (non-quiescent) search over a position to a fixed depth, for the given
// side to move, returning the node count, the score from that side's perspective, and the
// principal variation.
type Search interface {
	Search(ctx context.Context, sctx *Context, pos *board.Position, color board.Color, depth int) (uint64, eval.Score, []board.Move, error)
}
