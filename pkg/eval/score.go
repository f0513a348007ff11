// Package eval contains static position evaluation for Jieqi positions (spec §4.4, C6).
package eval

import (
	"fmt"
	"math"

	"github.com/jieqi-dev/engine/pkg/board"
)

// Score is a signed position or move score in centipawns, from the perspective of Red.
// Score must stay within +/- 1,000,000; NegInf/Inf sit one past the crop boundary so
// search code can use them as sentinels without colliding with a legitimate evaluation.
type Score float32

const (
	NegInf         = MinScore - 1
	MinScore Score = -1000000
	MaxScore Score = 1000000
	Inf            = MaxScore + 1
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", s)
}

// Unit returns the signed unit for the color: 1 for Red and -1 for Black, so a score can be
// flipped to the side-to-move's perspective for negamax.
func Unit(c board.Color) Score {
	if c == board.Red {
		return 1
	}
	return -1
}

// Crop clamps a Score into [MinScore;MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// normaliseK sets the scale at which raw evaluations saturate toward +/-1000. Grounded on
// the reference evaluator's get_win_probability, which uses a comparable constant to keep
// routine material swings in the linear region and large ones near +/-1.
const normaliseK = 20000.0

// Normalise maps a raw Score onto a bounded [-1000;1000] scale via tanh, used to report a
// "centipawn-like" figure that saturates instead of diverging for won/lost endgames.
func Normalise(s Score) float64 {
	return 1000 * math.Tanh(float64(s)/normaliseK)
}

// WinRate maps a normalised score onto a win probability in [0;1] for the side it favors,
// via a logistic curve, per spec §9's "human-readable confidence" design note.
func WinRate(s Score) float64 {
	return 1 / (1 + math.Exp(-Normalise(s)/500))
}

// mateThreshold marks a raw Score as a forced-mate score rather than an ordinary material/
// positional evaluation. Search encodes "mate in p plies" as NegInf+p for the losing side
// (and its negation, one ply up, for the winning side), so any score within this margin of
// the +/-MaxScore boundary is a mate score: a full two-army material sum never approaches it.
const mateThreshold = MaxScore - 100000

// IsMateScore reports whether s represents a forced mate.
func IsMateScore(s Score) bool {
	return s >= mateThreshold || s <= -mateThreshold
}

// ReportScore maps a raw Score onto spec §6's external reporting scale: the usual
// [-1000;1000] normalised figure, except a forced mate reports as the fixed sentinel
// +/-10000 ("mate in 0") instead of saturating through Normalise like any other large
// material edge would.
func ReportScore(s Score) float64 {
	if IsMateScore(s) {
		if s > 0 {
			return 10000
		}
		return -10000
	}
	return Normalise(s)
}
