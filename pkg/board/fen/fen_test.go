package fen_test

import (
	"testing"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeInitialRoundTrips(t *testing.T) {
	zt := board.NewZobristTable(1)

	pos, captured, turn, viewer, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)
	assert.Empty(t, captured)
	assert.Equal(t, board.Red, turn)
	assert.Equal(t, fen.ViewerNone, viewer)

	assert.Equal(t, fen.Initial, fen.Encode(pos, captured, turn, viewer))
}

func TestCapturedRedactionHidesOpponentKnowledge(t *testing.T) {
	zt := board.NewZobristTable(1)
	pos, err := board.NewInitialPosition(zt, 1)
	require.NoError(t, err)

	captured := []fen.Captured{
		{Piece: board.Piece{Color: board.Black, Kind: board.Rook}, By: board.Red, WasHidden: true},
	}

	// A piece of Black's is one of black's losses, so it belongs in the second
	// (colon-separated) segment regardless of viewer.
	// The capturing side (and an omniscient debug view) see the real kind.
	assert.Contains(t, fen.Encode(pos, captured, board.Red, fen.ViewerRed), " -:r ")
	assert.Contains(t, fen.Encode(pos, captured, board.Red, fen.ViewerNone), " -:r ")

	// The opponent, who never saw it flipped, only sees the redaction marker.
	assert.Contains(t, fen.Encode(pos, captured, board.Red, fen.ViewerBlack), " -:x ")
}

func TestDecodeRejectsMalformedState(t *testing.T) {
	zt := board.NewZobristTable(1)

	_, _, _, _, err := fen.Decode(zt, "not a state string")
	assert.Error(t, err)
}

func TestDecodeRejectsBoardPlusCapturedOverBudget(t *testing.T) {
	zt := board.NewZobristTable(1)

	// Black still has 16 pieces on the board (one king plus 15 hidden), and the captured
	// list claims Red has also captured a 17th black piece: more than the 16-per-colour
	// budget spec §7.1/§8 allow, even though the board string alone is well formed.
	state := "xxxxkxxxx/9/1x5x1/x1x1x1x1x/9/9/9/9/9/4K4 -:r r -"
	_, _, _, _, err := fen.Decode(zt, state)
	assert.Error(t, err)
}
