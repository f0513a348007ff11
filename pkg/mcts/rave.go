package mcts

import (
	"context"
	"math"
	"math/rand"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// raveK is the k constant in spec §4.6's beta schedule, "k ≈ 1000".
const raveK = 1000.0

// raveExplorationConstant drops from plain UCT's √2 since RAVE itself supplies exploration
// (spec §4.6, "Exploration constant drops to ≈1.0").
const raveExplorationConstant = 1.0

// RAVE runs UCT augmented with rapid action value estimation / all-moves-as-first: besides
// a child's own visit/win tally, every sibling sharing its move gets credited from every
// simulation whose tree path (selection and expansion) played that move at any depth,
// giving new children a useful prior before they accumulate their own visits (spec §4.6
// "RAVE / AMAF"). Moves made during the random playout are not credited.
type RAVE struct {
	Eval eval.Evaluator
	Rand *rand.Rand
}

func (u RAVE) rng() *rand.Rand {
	if u.Rand != nil {
		return u.Rand
	}
	return rand.New(rand.NewSource(1))
}

func (u RAVE) evaluator() eval.Evaluator {
	if u.Eval != nil {
		return u.Eval
	}
	return eval.Default()
}

func (u RAVE) Search(ctx context.Context, pos *board.Position, color board.Color, iterations int) []Ranked {
	r := u.rng()
	a := newArena()
	root := a.alloc(noRef, board.Move{}, color.Opponent(), board.LegalMoves(pos, color))
	root0 := a.get(root)
	root0.raveVisits = map[board.Move]int{}
	root0.raveWins = map[board.Move]float64{}

	uct := UCT{Eval: u.evaluator(), Rand: r}

	for i := 0; i < iterations; i++ {
		if contextx.IsCancelled(ctx) {
			break
		}
		u.iterate(ctx, uct, a, root, pos, color, r)
	}
	return rankByVisits(a, root)
}

func (u RAVE) iterate(ctx context.Context, uct UCT, a *arena, root ref, pos *board.Position, rootColor board.Color, r *rand.Rand) {
	var path []ref
	var played []board.Move
	var undos []board.Undo
	cur := root
	turn := rootColor

	for {
		n := a.get(cur)
		if len(n.untried) > 0 || len(n.children) == 0 {
			break
		}
		cur = selectRAVE(a, cur)
		mv := a.get(cur).move
		undos = append(undos, uct.descend(pos, mv))
		played = append(played, moveKey(mv))
		path = append(path, cur)
		turn = turn.Opponent()
	}

	n := a.get(cur)
	if len(n.untried) > 0 {
		idx := r.Intn(len(n.untried))
		move := n.untried[idx]
		n.untried = append(n.untried[:idx:idx], n.untried[idx+1:]...)

		undo := uct.descend(pos, move)
		mover := turn
		child := a.alloc(cur, undo.Move, mover, board.LegalMoves(pos, turn.Opponent()))
		cn := a.get(child)
		cn.raveVisits = map[board.Move]int{}
		cn.raveWins = map[board.Move]float64{}
		n.children = append(n.children, child)

		undos = append(undos, undo)
		played = append(played, moveKey(undo.Move))
		path = append(path, child)
		turn = turn.Opponent()
		cur = child
	}

	result := uct.playout(ctx, pos, turn, rootColor, r, &undos)

	for i := len(path) - 1; i >= 0; i-- {
		nd := a.get(path[i])
		nd.visits++
		if nd.mover == rootColor {
			nd.wins += result
		} else {
			nd.wins += 1 - result
		}

		parent := a.get(nd.parent)
		for _, mv := range played {
			parent.raveVisits[mv]++
			if nd.mover == rootColor {
				parent.raveWins[mv] += result
			} else {
				parent.raveWins[mv] += 1 - result
			}
		}
	}
	a.get(root).visits++

	for i := len(undos) - 1; i >= 0; i-- {
		pos.Undo(undos[i])
	}
}

func selectRAVE(a *arena, parent ref) ref {
	p := a.get(parent)
	beta := math.Sqrt(raveK / (3*float64(p.visits) + raveK))

	best := p.children[0]
	bestVal := math.Inf(-1)
	for _, c := range p.children {
		cn := a.get(c)
		if cn.visits == 0 {
			return c
		}

		ucb := cn.wins/float64(cn.visits) + raveExplorationConstant*math.Sqrt(math.Log(float64(p.visits+1))/float64(cn.visits))

		rave := 0.5
		if rv, ok := p.raveVisits[moveKey(cn.move)]; ok && rv > 0 {
			rave = p.raveWins[moveKey(cn.move)] / float64(rv)
		}

		val := beta*rave + (1-beta)*ucb
		if val > bestVal {
			bestVal = val
			best = c
		}
	}
	return best
}
