package search

import (
	"context"

	"github.com/jieqi-dev/engine/pkg/board"
)

// Selection defines move selection. It is required by quiescence search, but optional
// for full search. Selection returns true if the candidate move, not yet made on pos,
// should be explored.
type Selection func(ctx context.Context, move board.Move, pos *board.Position) bool

// IsAnyMove is a trivial selection of all moves. Default for full search.
func IsAnyMove(ctx context.Context, m board.Move, pos *board.Position) bool {
	return true
}

// NoMove is a trivial selection of no moves. Used to disable quiescence.
func NoMove(ctx context.Context, m board.Move, pos *board.Position) bool {
	return false
}

// IsQuickGain is the quiescence move selection: captures and reveals, since both can
// swing the evaluation sharply in a single ply (a capture changes material outright; a
// reveal resolves information the static evaluator otherwise has to guess at).
func IsQuickGain(ctx context.Context, m board.Move, pos *board.Position) bool {
	return m.IsCapture() || m.IsReveal()
}
