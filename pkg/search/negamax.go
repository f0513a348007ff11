package search

import (
	"context"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// nullMoveReduction is the depth reduction used by null-move pruning, R in the usual
// notation. R=3 is used at every tier, "muses" included: no strategy has a reduction of
// its own.
const nullMoveReduction = 3

// futilityMargin is added to standing material before deciding a quiet move at the last
// ply cannot possibly raise alpha, per spec §4.5's forward-pruning list.
const futilityMargin = eval.Score(150)

// lateMoveThreshold is how many moves are searched at full depth before late move
// reduction starts trimming the rest of the list.
const lateMoveThreshold = 4

// PVS implements principal variation search: the first move at each node is searched with
// a full alpha-beta window, every subsequent move with a null window (cheap to refute),
// re-searched with the full window only if it beats alpha. Grounded on the teacher's PVS/
// AlphaBeta (same full-window-then-null-window shape, same TT probe/store discipline),
// extended with null-move pruning, futility pruning, late move reduction and killer/
// history move ordering per spec §4.5.
type PVS struct {
	Explore Exploration
	Eval    QuietSearch
}

func (p PVS) Search(ctx context.Context, sctx *Context, pos *board.Position, color board.Color, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{
		explore: fullIfNotSet(p.Explore),
		eval:    p.Eval,
		tt:      sctx.TT,
		pos:     pos,
		killers: map[int][2]board.Move{},
		history: map[board.Move]int{},
	}

	low, high := sctx.Alpha, sctx.Beta
	if low == 0 && high == 0 {
		low, high = eval.NegInf, eval.Inf
	}

	score, pv := run.search(ctx, color, depth, 0, low, high, true)
	if contextx.IsCancelled(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runPVS struct {
	explore Exploration
	eval    QuietSearch
	tt      TranspositionTable
	pos     *board.Position
	nodes   uint64

	killers map[int][2]board.Move
	history map[board.Move]int
}

// search returns the score from color's perspective and its principal variation.
func (m *runPVS) search(ctx context.Context, color board.Color, depth, ply int, alpha, beta eval.Score, allowNull bool) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return 0, nil
	}

	checked := m.pos.IsChecked(color)

	var ttMove board.Move
	if bound, d, score, move, ok := m.tt.Read(m.pos.HashForTurn(color)); ok {
		ttMove = move
		if d >= depth {
			switch {
			case bound == ExactBound:
				return score, nil
			case bound == LowerBound && score >= beta:
				return score, nil
			case bound == UpperBound && score <= alpha:
				return score, nil
			}
		}
	}

	if depth <= 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.pos, color)
		m.nodes += nodes
		m.tt.Write(m.pos.HashForTurn(color), ExactBound, ply, 0, score, board.Move{})
		return score, nil
	}

	// Null-move pruning: if passing the turn entirely still fails high, this node is so
	// good a real move will too, so skip it outright (spec §4.5). Never while in check --
	// there is no "pass" from check -- and never at shallow remaining depth. Passing the
	// turn costs nothing on Position itself: unlike a chess en-passant/castling-rights
	// snapshot, whose-turn-it-is carries no board state to save and restore.
	if allowNull && !checked && depth > nullMoveReduction {
		score, _ := m.search(ctx, color.Opponent(), depth-1-nullMoveReduction, ply+1, -beta, -beta+1, false)
		if -score >= beta {
			return beta, nil
		}
	}

	m.nodes++

	priority, explore := m.explore(ctx, m.pos, color)
	ordered := m.order(ttMove, ply, priority)

	moves := NewMoveList(board.PseudoLegalMoves(m.pos, color), ordered)

	hasLegalMove := false
	bound := UpperBound
	var pv []board.Move
	searched := 0

	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !explore(ctx, move, m.pos) && searched > 0 {
			continue
		}

		// Futility pruning: near the horizon, a quiet move that can't even clear alpha by
		// more than a material swing's worth of margin is not worth searching (spec §4.5).
		if depth == 1 && searched > 0 && !checked && !move.IsCapture() && !move.IsReveal() {
			if eval.Unit(color)*eval.Material{}.Evaluate(ctx, m.pos)+futilityMargin <= alpha {
				continue
			}
		}

		annotated, undo := m.pos.Apply(move)
		if m.pos.IsChecked(color) {
			m.pos.Undo(undo)
			continue // illegal: leaves own king in check
		}
		hasLegalMove = true

		childDepth := depth - 1
		if searched >= lateMoveThreshold && !checked && !annotated.IsCapture() && !annotated.IsReveal() && depth >= 3 {
			childDepth-- // late move reduction
		}

		var score eval.Score
		var line []board.Move
		if searched == 0 {
			score, line = m.search(ctx, color.Opponent(), childDepth, ply+1, -beta, -alpha, true)
			score = -score
		} else {
			score, line = m.search(ctx, color.Opponent(), childDepth, ply+1, -alpha-1, -alpha, true)
			score = -score
			if score > alpha && score < beta {
				score, line = m.search(ctx, color.Opponent(), depth-1, ply+1, -beta, -alpha, true)
				score = -score
			}
		}

		m.pos.Undo(undo)
		searched++

		if score > alpha {
			alpha = score
			pv = append([]board.Move{annotated}, line...)
			bound = ExactBound
		}
		if alpha >= beta {
			bound = LowerBound
			if !annotated.IsCapture() {
				m.recordKiller(ply, annotated)
				m.history[annotated] += depth * depth
			}
			break
		}
	}

	if !hasLegalMove {
		if checked {
			return eval.NegInf + eval.Score(ply), nil // checkmate: prefer the longer mate
		}
		return 0, nil // stalemate
	}

	m.tt.Write(m.pos.HashForTurn(color), bound, ply, depth, alpha, firstOrNone(pv))
	return alpha, pv
}

func (m *runPVS) recordKiller(ply int, move board.Move) {
	k := m.killers[ply]
	if k[0].Equals(move) {
		return
	}
	k[1] = k[0]
	k[0] = move
	m.killers[ply] = k
}

// order wraps the exploration priority with TT-move-first, then killer moves, then
// history-heuristic weight, grounded on the teacher's First wrapper generalized with the
// extra move-ordering tiers spec §4.5 calls for.
func (m *runPVS) order(ttMove board.Move, ply int, base func(board.Move) Priority) func(board.Move) Priority {
	killers := m.killers[ply]
	return func(mv board.Move) Priority {
		switch {
		case mv.Equals(ttMove):
			return 10000
		case mv.Equals(killers[0]):
			return 5000
		case mv.Equals(killers[1]):
			return 4900
		default:
			return base(mv) + Priority(m.history[mv])
		}
	}
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}
