// Package engine implements the named-strategy registry (C9): a process-wide map from
// strategy name to constructor, populated at start-up, grounded on the teacher's
// pkg/engine/engine.go functional-options/version-stamping idiom but restructured from a
// single stateful mutex-guarded board engine into the stateless-per-request shape spec §1/
// §2/C10 requires. Spec §9's design note resolves the reference's decorator-populated
// module-level registry into an explicit init-time map (still populated exactly once,
// before the first request, with no mutation afterward).
package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jieqi-dev/engine/pkg/board"
)

// ErrUnknownStrategy is returned by Create for a name not present in the registry (spec §7
// error kind 3), tested with errors.Is at the server/CLI boundary.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Config configures a strategy instance at creation time: depth/time limits, TT size, and
// the random seed used for strategy-internal randomness (random playouts, the random
// strategy's own choice). The Zobrist table is not seeded from here: it comes from the seed
// passed to New.
type Config struct {
	Depth  uint          // ply depth limit; 0 means strategy-default
	Budget time.Duration // wall-clock budget; 0 means strategy-default
	HashMB uint          // transposition table size in MB; 0 means strategy-default
	Seed   int64
}

// Constructor builds a Strategy bound to a Zobrist table and a Config.
type Constructor func(zt *board.ZobristTable, cfg Config) Strategy

var registry = map[string]Constructor{}

func register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Create looks up name in the registry and builds a Strategy from cfg.
func Create(name string, zt *board.ZobristTable, cfg Config) (Strategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, name)
	}
	return ctor(zt, cfg), nil
}

// Names returns every registered strategy name, sorted.
func Names() []string {
	ret := make([]string, 0, len(registry))
	for name := range registry {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
