// Package searchctl contains the iterative-deepening harness and time control wrapped
// around a single pkg/search.Search.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options. The caller may set these per request.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth. Zero means no limit.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given wall-clock budget.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages iterative-deepening searches over a single position.
type Launcher interface {
	// Launch starts a new iterative-deepening search from pos for color, returning a PV
	// channel for each depth as it completes. The channel closes when the search is
	// exhausted or halted. Unlike the teacher's Launcher (which forks a *board.Board), this
	// one takes a *board.Position plus the side to move directly, since Position does not
	// carry whose turn it is as internal state.
	Launch(ctx context.Context, pos *board.Position, color board.Color, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the caller manage a running search: stop it early and collect its best result
// so far. Idempotent.
type Handle interface {
	Halt() search.PV
}
