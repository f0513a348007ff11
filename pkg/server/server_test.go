package server_test

import (
	"context"
	"testing"

	"github.com/jieqi-dev/engine/pkg/board/fen"
	"github.com/jieqi-dev/engine/pkg/engine"
	"github.com/jieqi-dev/engine/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalMovesRejectsAMalformedState(t *testing.T) {
	srv := server.New(engine.New(0))
	_, err := srv.LegalMoves(context.Background(), "not a state string")

	var se *server.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, server.KindMalformedState, se.Kind)
}

func TestLegalMovesReturnsEveryMoveFromTheInitialState(t *testing.T) {
	srv := server.New(engine.New(0))
	moves, err := srv.LegalMoves(context.Background(), fen.Initial)

	require.NoError(t, err)
	assert.NotEmpty(t, moves)
}

func TestBestMovesRejectsAnUnknownStrategy(t *testing.T) {
	srv := server.New(engine.New(0))
	_, err := srv.BestMoves(context.Background(), fen.Initial, "not-a-strategy", 1, engine.Config{})

	var se *server.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, server.KindUnknownStrategy, se.Kind)
}

func TestBestMovesReturnsARequestedStrategysTopMove(t *testing.T) {
	srv := server.New(engine.New(0))
	candidates, err := srv.BestMoves(context.Background(), fen.Initial, "greedy", 1, engine.Config{})

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.NotEmpty(t, candidates[0].Move)
}

func TestStrategiesListsEveryBundledName(t *testing.T) {
	srv := server.New(engine.New(0))
	names := srv.Strategies(context.Background())

	assert.Contains(t, names, "greedy")
	assert.Contains(t, names, "pvs")
}
