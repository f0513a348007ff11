package jieqigame_test

import (
	"testing"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/jieqigame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAppliesALegalMoveAndRejectsAnIllegalOne(t *testing.T) {
	zt := board.NewZobristTable(1)
	g, err := jieqigame.NewShuffled(zt, jieqigame.DefaultConfig())
	require.NoError(t, err)

	legal := board.LegalMoves(g.Position(), board.Red)
	require.NotEmpty(t, legal)

	_, ok := g.Push(legal[0])
	assert.True(t, ok)
	assert.Equal(t, board.Black, g.Turn())

	_, ok = g.Push(legal[0]) // same move again is almost certainly now illegal
	assert.False(t, ok)
}

func TestPopUndoesAPush(t *testing.T) {
	zt := board.NewZobristTable(1)
	g, err := jieqigame.NewShuffled(zt, jieqigame.DefaultConfig())
	require.NoError(t, err)

	before := g.Position().Hash()
	legal := board.LegalMoves(g.Position(), board.Red)
	require.NotEmpty(t, legal)

	m, ok := g.Push(legal[0])
	require.True(t, ok)

	undone, ok := g.Pop()
	require.True(t, ok)
	assert.True(t, undone.Equals(m))
	assert.Equal(t, board.Red, g.Turn())
	assert.Equal(t, before, g.Position().Hash())
}

func TestNoProgressLimitProducesADraw(t *testing.T) {
	zt := board.NewZobristTable(1)
	e0 := board.NewSquare(board.FileE, 0)
	e9 := board.NewSquare(board.FileE, 9)
	a5 := board.NewSquare(board.FileA, 5)

	pos, err := board.NewPosition(zt, []board.Placement{
		{Square: e0, Piece: board.Piece{Color: board.Red, Kind: board.King}},
		{Square: e9, Piece: board.Piece{Color: board.Black, Kind: board.King}},
		{Square: a5, Piece: board.Piece{Color: board.Red, Kind: board.Rook}},
	})
	require.NoError(t, err)

	cfg := jieqigame.Config{MaxRepetitions: 3, NoProgressLimit: 2}
	g := jieqigame.New(zt, pos, board.Red, cfg)

	moves := board.LegalMoves(g.Position(), board.Red)
	require.NotEmpty(t, moves)
	_, ok := g.Push(moves[0])
	require.True(t, ok)
	assert.Equal(t, board.Undecided, g.Result().Outcome)

	moves = board.LegalMoves(g.Position(), board.Black)
	require.NotEmpty(t, moves)
	_, ok = g.Push(moves[0])
	require.True(t, ok)

	assert.Equal(t, board.Draw, g.Result().Outcome)
	assert.Equal(t, board.NoProgress, g.Result().Reason)
}

func TestDelayRevealAnnotationOmitsRevealedKind(t *testing.T) {
	zt := board.NewZobristTable(1)
	g, err := jieqigame.NewShuffled(zt, jieqigame.Config{MaxRepetitions: 3, NoProgressLimit: 100, DelayReveal: true})
	require.NoError(t, err)

	var reveal board.Move
	found := false
	for _, m := range board.LegalMoves(g.Position(), board.Red) {
		if m.Type == board.Reveal {
			reveal, found = m, true
			break
		}
	}
	require.True(t, found)

	applied, ok := g.Push(reveal)
	require.True(t, ok)
	assert.NotEqual(t, board.NoKind, applied.RevealedKind)

	annotated := g.AnnotateMove(applied)
	assert.Equal(t, board.NoKind, annotated.RevealedKind)
}
