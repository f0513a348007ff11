package search

import (
	"context"

	"github.com/jieqi-dev/engine/pkg/board"
)

// Exploration defines move priority and selection at a given node. Limited exploration is
// required by quiescence search and can be used for forward pruning in full search.
// Default: explore every move in MVV-LVA order (spec §4.5).
type Exploration func(ctx context.Context, pos *board.Position, color board.Color) (func(board.Move) Priority, Selection)

// FullExploration explores every legal move, ordered by MVVLVA.
func FullExploration(ctx context.Context, pos *board.Position, color board.Color) (func(board.Move) Priority, Selection) {
	return MVVLVA, IsAnyMove
}

// QuiescentExploration limits exploration to captures and reveals, ordered by MVVLVA.
func QuiescentExploration(ctx context.Context, pos *board.Position, color board.Color) (func(board.Move) Priority, Selection) {
	return MVVLVA, IsQuickGain
}

func fullIfNotSet(e Exploration) Exploration {
	if e == nil {
		return FullExploration
	}
	return e
}
