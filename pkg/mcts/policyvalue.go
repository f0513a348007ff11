package mcts

import (
	"context"
	"math"
	"math/rand"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// pucExplorationConstant is PUCT's c in spec §4.6's selection formula.
const pucExplorationConstant = 1.5

// shallowPlayoutDepth caps the policy-value hybrid's own playout before falling back to the
// evaluator, per spec §4.6 "shallow playout (≤8 plies)".
const shallowPlayoutDepth = 8

// playoutWeight and evalWeight mix the playout and evaluator win-rates into a final node
// value, per spec §4.6 "weight 0.3" / "weight 0.7".
const playoutWeight = 0.3
const evalWeight = 0.7

// PolicyValue is the mcts_eval hybrid: move priors from a cheap heuristic drive PUCT
// selection, and simulation blends a shallow playout with the static evaluator instead of
// playing to a terminal state (spec §4.6 "Policy-value hybrid").
type PolicyValue struct {
	Eval eval.Evaluator
	Rand *rand.Rand
}

func (p PolicyValue) rng() *rand.Rand {
	if p.Rand != nil {
		return p.Rand
	}
	return rand.New(rand.NewSource(1))
}

func (p PolicyValue) evaluator() eval.Evaluator {
	if p.Eval != nil {
		return p.Eval
	}
	return eval.Default()
}

func (p PolicyValue) Search(ctx context.Context, pos *board.Position, color board.Color, iterations int) []Ranked {
	r := p.rng()
	a := newArena()
	root := a.alloc(noRef, board.Move{}, color.Opponent(), board.LegalMoves(pos, color))

	for i := 0; i < iterations; i++ {
		if contextx.IsCancelled(ctx) {
			break
		}
		p.iterate(ctx, a, root, pos, color, r)
	}
	return rankByVisits(a, root)
}

func (p PolicyValue) iterate(ctx context.Context, a *arena, root ref, pos *board.Position, rootColor board.Color, r *rand.Rand) {
	var path []ref
	var undos []board.Undo
	cur := root
	turn := rootColor

	for {
		n := a.get(cur)
		if widenable(n) || len(n.children) == 0 {
			break
		}
		cur = selectPUCT(a, cur)
		_, undo := pos.Apply(a.get(cur).move)
		undos = append(undos, undo)
		path = append(path, cur)
		turn = turn.Opponent()
	}

	n := a.get(cur)
	if len(n.untried) > 0 {
		idx := priorityPick(n.untried, r)
		move := n.untried[idx]
		n.untried = append(n.untried[:idx:idx], n.untried[idx+1:]...)

		_, undo := pos.Apply(move)
		mover := turn
		child := a.alloc(cur, undo.Move, mover, board.LegalMoves(pos, turn.Opponent()))
		n.children = append(n.children, child)

		undos = append(undos, undo)
		path = append(path, child)
		turn = turn.Opponent()
		cur = child
	}

	result := p.value(ctx, pos, turn, rootColor, r, &undos)

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

// widenable reports whether this node should still expand another untried child, using
// progressive widening: spec §4.6 "a new child only when #children < 2*sqrt(N)".
func widenable(n *node) bool {
	if len(n.untried) == 0 {
		return false
	}
	limit := 2 * math.Sqrt(float64(n.visits))
	return float64(len(n.children)) < limit
}

func selectPUCT(a *arena, parent ref) ref {
	p := a.get(parent)
	best := p.children[0]
	bestVal := math.Inf(-1)
	for _, c := range p.children {
		cn := a.get(c)
		q := 0.5
		if cn.visits > 0 {
			q = cn.wins / float64(cn.visits)
		}
		prior := movePrior(cn.move)
		val := q + pucExplorationConstant*prior*math.Sqrt(float64(p.visits))/float64(1+cn.visits)
		if val > bestVal {
			bestVal = val
			best = c
		}
	}
	return best
}

// movePrior is the cheap move-prior heuristic of spec §4.6: captures add the victim's value
// over 200, reveals add 2 when they cross the river and 0.5 otherwise. The kind of the
// moving piece plays no part: rook, cannon and horse moves get no bonus of their own.
func movePrior(m board.Move) float64 {
	prior := 1.0
	if m.IsCapture() {
		prior += float64(eval.CaptureGain(m.Capture)) / 200
	}
	if m.IsReveal() {
		if m.To.OnOwnSide(board.Red) != m.From.OnOwnSide(board.Red) {
			prior += 2 // crossed the river
		} else {
			prior += 0.5
		}
	}
	return prior
}

func priorityPick(moves []board.Move, r *rand.Rand) int {
	total := 0.0
	weights := make([]float64, len(moves))
	for i, m := range moves {
		weights[i] = movePrior(m)
		total += weights[i]
	}
	x := r.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(moves) - 1
}

func (p PolicyValue) value(ctx context.Context, pos *board.Position, turn, rootColor board.Color, r *rand.Rand, undos *[]board.Undo) float64 {
	color := turn
	for ply := 0; ply < shallowPlayoutDepth; ply++ {
		moves := board.LegalMoves(pos, color)
		if len(moves) == 0 {
			if pos.IsChecked(color) {
				if color == rootColor {
					return 0
				}
				return 1
			}
			break
		}
		move := pickBiased(moves, r)
		_, undo := pos.Apply(move)
		*undos = append(*undos, undo)
		color = color.Opponent()
	}

	score := eval.Unit(rootColor) * p.evaluator().Evaluate(ctx, pos)
	evalResult := eval.WinRate(score)

	playoutResult := 0.5
	if final := board.LegalMoves(pos, color); len(final) == 0 && pos.IsChecked(color) {
		if color == rootColor {
			playoutResult = 0
		} else {
			playoutResult = 1
		}
	}

	return playoutWeight*playoutResult + evalWeight*evalResult
}
