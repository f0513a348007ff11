package board_test

import (
	"testing"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSquareRoundTrip(t *testing.T) {
	for f := board.FileA; f <= board.FileI; f++ {
		for r := board.Rank(0); r < board.NumRanks; r++ {
			sq := board.NewSquare(f, r)
			assert.Equal(t, f, sq.File())
			assert.Equal(t, r, sq.Rank())

			parsed, err := board.ParseSquareStr(sq.String())
			require.NoError(t, err)
			assert.Equal(t, sq, parsed)
		}
	}
}

func TestParseMoveRoundTrip(t *testing.T) {
	tests := []string{"a0a1", "+b2h2=C", "i9i5"}
	for _, tt := range tests {
		m, err := board.ParseMove(tt)
		require.NoError(t, err)
		assert.Equal(t, tt, m.String())
	}
}

func TestPieceLetterHidesIdentity(t *testing.T) {
	hidden := board.Piece{Color: board.Red, Kind: board.Rook, Hidden: true}
	assert.Equal(t, 'X', hidden.Letter())

	revealed := board.Piece{Color: board.Black, Kind: board.Cannon, Hidden: false}
	assert.Equal(t, 'c', revealed.Letter())
}

func TestMovementTypeOfHiddenPieceIsStartSquare(t *testing.T) {
	sq := board.NewSquare(board.FileB, 0)
	assert.Equal(t, board.Horse, board.StartKind(sq))

	hidden := board.Piece{Color: board.Red, Kind: board.Cannon, Hidden: true}
	assert.Equal(t, board.Horse, board.MovementType(hidden, sq))

	revealed := board.Piece{Color: board.Red, Kind: board.Cannon, Hidden: false}
	assert.Equal(t, board.Cannon, board.MovementType(revealed, sq))
}

func newZobrist() *board.ZobristTable {
	return board.NewZobristTable(1)
}

func TestApplyUndoRestoresHash(t *testing.T) {
	zt := newZobrist()
	pos, err := board.NewInitialPosition(zt, 42)
	require.NoError(t, err)

	before := pos.Hash()
	moves := board.LegalMoves(pos, board.Red)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		annotated, undo := pos.Apply(m)
		assert.NotEqual(t, before, pos.Hash(), "hash should change after %v", annotated)
		pos.Undo(undo)
		assert.Equal(t, before, pos.Hash(), "hash should restore after undoing %v", annotated)
	}
}

func TestApplyRevealsHiddenPiece(t *testing.T) {
	zt := newZobrist()
	pos, err := board.NewInitialPosition(zt, 7)
	require.NoError(t, err)

	moves := board.LegalMoves(pos, board.Red)
	require.NotEmpty(t, moves)

	var reveal board.Move
	found := false
	for _, m := range moves {
		if m.IsReveal() {
			reveal, found = m, true
			break
		}
	}
	require.True(t, found, "initial position should have reveal moves available")

	annotated, _ := pos.Apply(reveal)
	assert.True(t, annotated.RevealedKind.IsValid())

	p, ok := pos.Piece(reveal.To)
	require.True(t, ok)
	assert.False(t, p.Hidden)
	assert.Equal(t, annotated.RevealedKind, p.Kind)
}

func TestInitialPositionHasNoChecks(t *testing.T) {
	zt := newZobrist()
	pos, err := board.NewInitialPosition(zt, 99)
	require.NoError(t, err)

	assert.False(t, pos.IsChecked(board.Red))
	assert.False(t, pos.IsChecked(board.Black))
}

func TestFlyingGeneralForbidsOpenFileFaceOff(t *testing.T) {
	zt := newZobrist()
	e0 := board.NewSquare(board.FileE, 0)
	e9 := board.NewSquare(board.FileE, 9)

	pos, err := board.NewPosition(zt, []board.Placement{
		{Square: e0, Piece: board.Piece{Color: board.Red, Kind: board.King}},
		{Square: e9, Piece: board.Piece{Color: board.Black, Kind: board.King}},
	})
	require.NoError(t, err)

	assert.True(t, pos.IsChecked(board.Red))
	assert.True(t, pos.IsChecked(board.Black))

	d0 := board.NewSquare(board.FileD, 0)
	legal := board.LegalMoves(pos, board.Red)
	require.NotEmpty(t, legal)

	escapesFaceOff := false
	for _, m := range legal {
		if m.To == d0 {
			escapesFaceOff = true
		}
	}
	assert.True(t, escapesFaceOff, "stepping off the e-file should escape the face-off")
}

func TestNewPositionRejectsExcessPiecesOfOneKind(t *testing.T) {
	zt := newZobrist()
	e0 := board.NewSquare(board.FileE, 0)
	e9 := board.NewSquare(board.FileE, 9)

	placements := []board.Placement{
		{Square: e0, Piece: board.Piece{Color: board.Red, Kind: board.King}},
		{Square: e9, Piece: board.Piece{Color: board.Black, Kind: board.King}},
	}
	// Five red rooks: three more than the canonical two.
	rookSquares := []board.Square{
		board.NewSquare(board.FileA, 0), board.NewSquare(board.FileA, 1),
		board.NewSquare(board.FileA, 2), board.NewSquare(board.FileA, 3),
		board.NewSquare(board.FileA, 4),
	}
	for _, sq := range rookSquares {
		placements = append(placements, board.Placement{Square: sq, Piece: board.Piece{Color: board.Red, Kind: board.Rook}})
	}

	_, err := board.NewPosition(zt, placements)
	assert.Error(t, err)
}

func TestNewPositionRejectsMoreThanSixteenPiecesForOneColor(t *testing.T) {
	zt := newZobrist()
	e0 := board.NewSquare(board.FileE, 0)
	e9 := board.NewSquare(board.FileE, 9)

	placements := []board.Placement{
		{Square: e0, Piece: board.Piece{Color: board.Red, Kind: board.King}},
		{Square: e9, Piece: board.Piece{Color: board.Black, Kind: board.King}},
	}
	// 16 hidden red pieces of unknown kind (as decoded from a redacted state string, where
	// a hidden piece's true identity is never revealed) on Red's 15 non-king starting
	// squares plus a9, plus the king above, totals 17: over budget even though no single
	// kind's count (all still NoKind) is ever checked.
	nonKingStarts := []board.Square{
		board.NewSquare(board.FileA, 0), board.NewSquare(board.FileB, 0), board.NewSquare(board.FileC, 0), board.NewSquare(board.FileD, 0),
		board.NewSquare(board.FileF, 0), board.NewSquare(board.FileG, 0), board.NewSquare(board.FileH, 0), board.NewSquare(board.FileI, 0),
		board.NewSquare(board.FileB, 2), board.NewSquare(board.FileH, 2),
		board.NewSquare(board.FileA, 3), board.NewSquare(board.FileC, 3), board.NewSquare(board.FileE, 3), board.NewSquare(board.FileG, 3), board.NewSquare(board.FileI, 3),
		board.NewSquare(board.FileA, 9),
	}
	require.Len(t, nonKingStarts, 16)
	for _, sq := range nonKingStarts {
		placements = append(placements, board.Placement{Square: sq, Piece: board.Piece{Color: board.Red, Hidden: true}})
	}

	_, err := board.NewPosition(zt, placements)
	assert.Error(t, err)
}
