package main

import (
	"testing"

	"github.com/jieqi-dev/engine/pkg/board/fen"
	"github.com/stretchr/testify/assert"
)

func TestRunWithNoArgumentsReportsAnArgumentError(t *testing.T) {
	assert.Equal(t, exitArgError, run(nil))
}

func TestRunMovesSucceedsOnTheInitialState(t *testing.T) {
	assert.Equal(t, exitOK, run([]string{"moves", "--fen", fen.Initial}))
}

func TestRunMovesReportsAMalformedState(t *testing.T) {
	assert.Equal(t, exitMalformedState, run([]string{"moves", "--fen", "garbage"}))
}

func TestRunMovesRequiresTheFenFlag(t *testing.T) {
	assert.Equal(t, exitArgError, run([]string{"moves"}))
}

func TestRunBestReportsAnUnknownStrategy(t *testing.T) {
	assert.Equal(t, exitUnknownStrategy, run([]string{"best", "--fen", fen.Initial, "--strategy", "not-a-strategy"}))
}

func TestRunBestSucceedsWithAKnownStrategy(t *testing.T) {
	assert.Equal(t, exitOK, run([]string{"best", "--fen", fen.Initial, "--strategy", "greedy", "--json"}))
}

func TestRunListSucceeds(t *testing.T) {
	assert.Equal(t, exitOK, run([]string{"list", "--json"}))
}
