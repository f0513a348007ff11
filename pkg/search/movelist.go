package search

import (
	"container/heap"
	"fmt"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
)

// Priority represents the move order priority.
type Priority int16

// MoveList is move priority queue for move ordering.
type MoveList struct {
	h moveHeap
}

// NewMoveList returns a new move list with the given priorities.
func NewMoveList(moves []board.Move, fn func(move board.Move) Priority) *MoveList {
	h := moveHeap(make([]elm, len(moves)))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next returns the next move. It is the highest priority move in the list.
func (ml *MoveList) Next() (board.Move, bool) {
	if ml.Size() == 0 {
		return board.Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   board.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int {
	return len(h)
}

func (h moveHeap) Less(i, j int) bool {
	return h[i].val > h[j].val
}

func (h moveHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *moveHeap) Push(x interface{}) {
	panic("fixed size heap")
}

func (h *moveHeap) Pop() interface{} {
	n := len(*h)
	ret := (*h)[n-1]
	*h = (*h)[0 : n-1]
	return ret
}

// revealPriority is the move-ordering bonus for revealing a hidden piece: a reveal resolves
// information asymmetry and is searched before quiet, already-settled moves (spec §4.5
// "reveal-move bonus").
const revealPriority = Priority(50)

// MVVLVA returns the most-valuable-victim move ordering priority: captures are ranked by
// the value of the captured piece (a tenth of its centipawn value, so every piece fits a
// Priority), and reveal moves get a flat bonus over other quiet moves. Unlike the teacher's
// MVVLVA (which also discounts by the attacker's own value), a Move here does not carry the
// mover's kind, so there is no least-valuable-attacker tie-breaking.
func MVVLVA(m board.Move) Priority {
	p := Priority(0)
	if m.IsCapture() {
		p = Priority(eval.CaptureGain(m.Capture) / 10)
	}
	if m.IsReveal() {
		p += revealPriority
	}
	return p
}

// First puts the given move first. Otherwise uses MVVLVA.
type First board.Move

func (f First) MVVLVA(m board.Move) Priority {
	if m.Equals(board.Move(f)) {
		return 1000
	}
	return MVVLVA(m)
}
