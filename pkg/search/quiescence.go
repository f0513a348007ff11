package search

import (
	"context"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// QuietSearch quiets down a position reached at the horizon of the full search, so the
// static evaluator is never asked to score a position with a hanging capture or an
// about-to-resolve reveal still on the board.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, pos *board.Position, color board.Color) (uint64, eval.Score)
}

// Quiescence implements a configurable alpha-beta quiescence search: captures and reveals
// only, bottoming out in a stand-pat evaluation, grounded on the teacher's Quiescence
// generalized to Jieqi's extra "quiet move that isn't quiet" case, the reveal. The only
// pruning is the stand-pat cutoff against beta: there is no delta pruning and no depth
// limit, so it recurses until no selected move remains.
type Quiescence struct {
	Explore Exploration
	Eval    eval.Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, pos *board.Position, color board.Color) (uint64, eval.Score) {
	run := &runQuiescence{explore: fullIfNotSet(q.Explore), eval: q.Eval, pos: pos}
	score := run.search(ctx, color, sctx.Alpha, sctx.Beta)
	return run.nodes, score
}

type runQuiescence struct {
	explore Exploration
	eval    eval.Evaluator
	pos     *board.Position
	nodes   uint64
}

// search returns the score from color's perspective.
func (r *runQuiescence) search(ctx context.Context, color board.Color, alpha, beta eval.Score) eval.Score {
	if contextx.IsCancelled(ctx) {
		return 0
	}
	r.nodes++

	standPat := eval.Unit(color) * r.eval.Evaluate(ctx, r.pos)
	if standPat >= beta {
		return beta
	}
	alpha = eval.Max(alpha, standPat)

	priority, explore := r.explore(ctx, r.pos, color)
	moves := NewMoveList(board.PseudoLegalMoves(r.pos, color), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !explore(ctx, m, r.pos) {
			continue
		}

		annotated, undo := r.pos.Apply(m)
		if r.pos.IsChecked(color) {
			r.pos.Undo(undo)
			continue // illegal: leaves own king in check
		}

		score := -r.search(ctx, color.Opponent(), -beta, -alpha)
		r.pos.Undo(undo)
		_ = annotated

		if score >= beta {
			return beta
		}
		alpha = eval.Max(alpha, score)
	}
	return alpha
}
