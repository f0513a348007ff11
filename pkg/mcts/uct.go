package mcts

import (
	"context"
	"math"
	"math/rand"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// explorationConstant is UCB1's c, spec §4.6 "c ≈ √2".
const explorationConstant = math.Sqrt2

// maxPlayoutDepth caps a random playout before falling back to the static evaluator.
const maxPlayoutDepth = 80

// captureBias and revealBias weight a playout move's chance of being picked when at least
// one candidate of its kind is on offer, per spec §4.6 "biased to favour captures (p≈0.85)
// and reveals (p≈0.3)".
const captureBias = 0.85
const revealBias = 0.3

// UCT runs plain upper-confidence-bound tree search, grounded directly on spec §4.6's
// select/expand/simulate/backpropagate loop.
type UCT struct {
	Eval eval.Evaluator
	Rand *rand.Rand
}

func (u UCT) rng() *rand.Rand {
	if u.Rand != nil {
		return u.Rand
	}
	return rand.New(rand.NewSource(1))
}

func (u UCT) evaluator() eval.Evaluator {
	if u.Eval != nil {
		return u.Eval
	}
	return eval.Default()
}

// Search runs iterations simulations from pos with color to move, returning the root's
// children ranked by visit count.
func (u UCT) Search(ctx context.Context, pos *board.Position, color board.Color, iterations int) []Ranked {
	r := u.rng()
	a := newArena()
	root := a.alloc(noRef, board.Move{}, color.Opponent(), board.LegalMoves(pos, color))

	for i := 0; i < iterations; i++ {
		if contextx.IsCancelled(ctx) {
			break
		}
		u.iterate(ctx, a, root, pos, color, r)
	}
	return rankByVisits(a, root)
}

// iterate runs one select/expand/simulate/backpropagate pass, leaving pos exactly as found.
func (u UCT) iterate(ctx context.Context, a *arena, root ref, pos *board.Position, rootColor board.Color, r *rand.Rand) {
	var path []ref
	var undos []board.Undo
	cur := root
	turn := rootColor

	for {
		n := a.get(cur)
		if len(n.untried) > 0 || len(n.children) == 0 {
			break
		}
		cur = selectChild(a, cur)
		undos = append(undos, u.descend(pos, a.get(cur).move))
		path = append(path, cur)
		turn = turn.Opponent()
	}

	n := a.get(cur)
	if len(n.untried) > 0 {
		idx := r.Intn(len(n.untried))
		move := n.untried[idx]
		n.untried = append(n.untried[:idx:idx], n.untried[idx+1:]...)

		undo := u.descend(pos, move)
		mover := turn
		child := a.alloc(cur, undo.Move, mover, board.LegalMoves(pos, turn.Opponent()))
		n.children = append(n.children, child)

		undos = append(undos, undo)
		path = append(path, child)
		turn = turn.Opponent()
		cur = child
	}

	result := u.playout(ctx, pos, turn, rootColor, r, &undos)

	for i := len(path) - 1; i >= 0; i-- {
		nd := a.get(path[i])
		nd.visits++
		if nd.mover == rootColor {
			nd.wins += result
		} else {
			nd.wins += 1 - result
		}
	}
	a.get(root).visits++

	for i := len(undos) - 1; i >= 0; i-- {
		pos.Undo(undos[i])
	}
}

func (u UCT) descend(pos *board.Position, move board.Move) board.Undo {
	_, undo := pos.Apply(move)
	return undo
}

func selectChild(a *arena, parent ref) ref {
	p := a.get(parent)
	best := p.children[0]
	bestUCB := math.Inf(-1)
	for _, c := range p.children {
		cn := a.get(c)
		if cn.visits == 0 {
			return c
		}
		q := cn.wins / float64(cn.visits)
		ucb := q + explorationConstant*math.Sqrt(math.Log(float64(p.visits+1))/float64(cn.visits))
		if ucb > bestUCB {
			bestUCB = ucb
			best = c
		}
	}
	return best
}

// playout runs a biased random game from pos (side to move: turn) to a terminal state or
// maxPlayoutDepth, returning a result in [0;1] from rootColor's perspective. Every move
// played is appended to undos so the caller can unwind the whole path in one pass.
func (u UCT) playout(ctx context.Context, pos *board.Position, turn, rootColor board.Color, r *rand.Rand, undos *[]board.Undo) float64 {
	color := turn
	for ply := 0; ply < maxPlayoutDepth; ply++ {
		moves := board.LegalMoves(pos, color)
		if len(moves) == 0 {
			if pos.IsChecked(color) {
				if color == rootColor {
					return 0
				}
				return 1
			}
			return 0.5
		}

		move := pickBiased(moves, r)
		undo := u.descend(pos, move)
		*undos = append(*undos, undo)
		color = color.Opponent()
	}

	score := eval.Unit(rootColor) * u.evaluator().Evaluate(ctx, pos)
	return eval.WinRate(score)
}

// pickBiased favours captures and reveals per spec §4.6, falling back to uniform choice.
func pickBiased(moves []board.Move, r *rand.Rand) board.Move {
	var captures, reveals, quiet []board.Move
	for _, m := range moves {
		switch {
		case m.IsCapture():
			captures = append(captures, m)
		case m.IsReveal():
			reveals = append(reveals, m)
		default:
			quiet = append(quiet, m)
		}
	}

	if len(captures) > 0 && r.Float64() < captureBias {
		return captures[r.Intn(len(captures))]
	}
	if len(reveals) > 0 && r.Float64() < revealBias {
		return reveals[r.Intn(len(reveals))]
	}
	return moves[r.Intn(len(moves))]
}
