package engine

import (
	"fmt"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/seekerror/build"
)

var version = build.NewVersion(0, 1, 0)

// Name returns the engine's name and version, in the teacher's Name()/Author() convention
// (pkg/engine/engine.go), reused here purely for CLI/server banner text.
func Name() string {
	return fmt.Sprintf("jieqi %v", version)
}

// Engine binds a single Zobrist table to the strategy registry: every strategy created
// through it shares one hash scheme, so positions and transposition table entries it
// produces are comparable across strategy instances within one process.
type Engine struct {
	zt *board.ZobristTable
}

// New builds an Engine with the given Zobrist seed.
func New(seed int64) *Engine {
	return &Engine{zt: board.NewZobristTable(seed)}
}

// Zobrist returns the engine's shared Zobrist table.
func (e *Engine) Zobrist() *board.ZobristTable {
	return e.zt
}

// Create builds a Strategy by name, per spec §4.7 "users call create(name, config)".
func (e *Engine) Create(name string, cfg Config) (Strategy, error) {
	return Create(name, e.zt, cfg)
}

// Strategies returns every registered strategy name, per spec §4.8's strategies() operation.
func (e *Engine) Strategies() []string {
	return Names()
}
