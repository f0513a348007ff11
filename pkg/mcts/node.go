// Package mcts implements the Monte Carlo Tree Search family (C8): plain UCT, RAVE/AMAF,
// and a policy-value hybrid. No Go reference for MCTS exists anywhere in the example pack
// (morlock is a pure Alpha-Beta engine), so the package is grounded directly on spec §4.6's
// four-phase loop, written in the surrounding idiom established by pkg/search (arena-style
// slice storage instead of the teacher's pointer trees, so a whole search tree is discarded
// in one slice drop between requests rather than walked and freed node by node).
package mcts

import "github.com/jieqi-dev/engine/pkg/board"

// ref indexes into an arena's node slice. noRef marks "no parent" (the root).
type ref int32

const noRef ref = -1

// node is one position reached during search: the move that produced it, the color that
// made that move, and the usual visit/win tally plus the moves not yet expanded into a
// child. RAVE statistics, when used, live alongside it keyed by move.
type node struct {
	parent ref
	move   board.Move
	mover  board.Color

	children []ref
	untried  []board.Move

	visits int
	wins   float64

	raveVisits map[board.Move]int
	raveWins   map[board.Move]float64
}

// arena owns every node allocated during one search call; ref values are stable for the
// call's lifetime and meaningless afterward.
type arena struct {
	nodes []*node
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) alloc(parent ref, move board.Move, mover board.Color, untried []board.Move) ref {
	a.nodes = append(a.nodes, &node{parent: parent, move: move, mover: mover, untried: untried})
	return ref(len(a.nodes) - 1)
}

func (a *arena) get(r ref) *node {
	return a.nodes[r]
}

// Ranked is one root move and its search result, per spec §4.6 "return children sorted by
// visit count ... with score (win_rate-0.5)*2000".
type Ranked struct {
	Move   board.Move
	Score  float64
	Visits int
}

// rankByVisits returns the root's children as Ranked, sorted by visit count descending.
func rankByVisits(a *arena, root ref) []Ranked {
	n := a.get(root)
	ret := make([]Ranked, 0, len(n.children))
	for _, c := range n.children {
		cn := a.get(c)
		winRate := 0.5
		if cn.visits > 0 {
			winRate = cn.wins / float64(cn.visits)
		}
		ret = append(ret, Ranked{Move: cn.move, Score: (winRate - 0.5) * 2000, Visits: cn.visits})
	}
	for i := 1; i < len(ret); i++ {
		for j := i; j > 0 && ret[j].Visits > ret[j-1].Visits; j-- {
			ret[j], ret[j-1] = ret[j-1], ret[j]
		}
	}
	return ret
}

func moveKey(m board.Move) board.Move {
	return board.Move{Type: m.Type, From: m.From, To: m.To}
}
