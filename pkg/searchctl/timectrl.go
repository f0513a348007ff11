package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl is a flat per-search wall-clock budget (spec §4.5's "per-search wall-clock
// limit"), unlike the teacher's chess-clock TimeControl (separate White/Black remaining
// time plus a moves-to-go count): a stateless request has no running clock to account
// against, only a budget for this one search.
type TimeControl struct {
	Budget time.Duration
}

// Limits returns a soft and hard limit. After the soft limit, no new iterative-deepening
// depth is started; the hard limit force-halts whatever depth is in flight, grounded on the
// teacher's soft/hard split (same ratio: hard is 3x soft) but derived from a single budget
// instead of a remaining-clock computation.
func (t TimeControl) Limits() (time.Duration, time.Duration) {
	soft := t.Budget / 3
	hard := t.Budget
	return soft, hard
}

func (t TimeControl) String() string {
	return fmt.Sprintf("%.1fs", t.Budget.Seconds())
}

// EnforceTimeControl enforces the time control limits, if any. Returns the soft limit.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl]) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits()
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limit for search: %v", c)
	return soft, true
}
