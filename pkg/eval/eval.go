// Package eval contains static position evaluation for Jieqi positions (spec §4.4, C6).
package eval

import (
	"context"

	"github.com/jieqi-dev/engine/pkg/board"
)

// Evaluator is a static position evaluator: the score of pos from Red's perspective.
type Evaluator interface {
	Evaluate(ctx context.Context, pos *board.Position) Score
}

// Material is the material-balance evaluator: the sum of PieceValue for every piece on the
// board, signed by color (spec §4.4's baseline evaluator, grounded on the teacher's
// Material evaluator summing NominalValue by color).
type Material struct{}

func (Material) Evaluate(_ context.Context, pos *board.Position) Score {
	var score Score
	pos.ForEach(func(_ board.Square, p board.Piece) {
		v := PieceValue(p)
		if p.Color == board.Black {
			v = -v
		}
		score += v
	})
	return score
}

// Positional adds piece-square bonuses on top of material, for revealed pieces only.
type Positional struct{}

func (Positional) Evaluate(_ context.Context, pos *board.Position) Score {
	var score Score
	pos.ForEach(func(sq board.Square, p board.Piece) {
		v := PieceValue(p)
		if !p.Hidden {
			v += PositionalBonus(p.Kind, p.Color, sq)
		}
		if p.Color == board.Black {
			v = -v
		}
		score += v
	})
	return score
}

// Mobility rewards the side with more pseudo-legal moves available, a cheap proxy for piece
// activity (spec §4.4 "mobility term"): Weight times red's count minus black's, from Red's
// perspective whoever is to move.
type Mobility struct {
	Weight Score
}

func (m Mobility) Evaluate(_ context.Context, pos *board.Position) Score {
	weight := m.Weight
	if weight == 0 {
		weight = 2
	}
	red := len(board.PseudoLegalMoves(pos, board.Red))
	black := len(board.PseudoLegalMoves(pos, board.Black))
	return weight * Score(red-black)
}

// Check penalizes being in check, since it constrains the side to move (spec §4.4: -500 for
// the side to move if in check, +500 if the opponent is in check).
type Check struct {
	Penalty Score
}

func (c Check) Evaluate(_ context.Context, pos *board.Position) Score {
	penalty := c.Penalty
	if penalty == 0 {
		penalty = 500
	}
	var score Score
	if pos.IsChecked(board.Red) {
		score -= penalty
	}
	if pos.IsChecked(board.Black) {
		score += penalty
	}
	return score
}

// startingHiddenPieces is the number of non-king pieces dealt face-down at the start of a
// game (15 per color: 2 each of advisor/elephant/horse/rook/cannon, 5 pawns; spec §3).
const startingHiddenPieces = 30

// HiddenDifferential prices the information asymmetry of still-hidden pieces early in the
// game, and the board-control value of already-revealed pieces once most of the board has
// been revealed (spec §4.4 "hidden-piece differential": own hidden count worth +50 each over
// the opponent's early game; own revealed count worth +30 each late game). Phase is read off
// the position itself -- how many of the 30 originally hidden pieces are still face-down --
// since Position carries no ply counter of its own.
type HiddenDifferential struct{}

func (HiddenDifferential) Evaluate(_ context.Context, pos *board.Position) Score {
	var hiddenRed, hiddenBlack, revealedRed, revealedBlack, stillHidden int
	pos.ForEach(func(_ board.Square, p board.Piece) {
		if p.Hidden {
			stillHidden++
			if p.Color == board.Red {
				hiddenRed++
			} else {
				hiddenBlack++
			}
		} else if p.Kind != board.King {
			if p.Color == board.Red {
				revealedRed++
			} else {
				revealedBlack++
			}
		}
	})

	if 2*stillHidden >= startingHiddenPieces {
		return 50 * Score(hiddenRed-hiddenBlack)
	}
	return 30 * Score(revealedRed-revealedBlack)
}

// Weighted combines several evaluators into one, summing their scores. Spec §9 resolves
// the reference's many hand-tuned heuristic terms into this short, composable list rather
// than porting every one of them verbatim.
type Weighted []Evaluator

func (w Weighted) Evaluate(ctx context.Context, pos *board.Position) Score {
	var total Score
	for _, e := range w {
		total += e.Evaluate(ctx, pos)
	}
	return Crop(total)
}

// Default is the evaluator used by the search package unless overridden: material plus
// piece-square bonuses, mobility, a check penalty, and the hidden-piece differential.
func Default() Evaluator {
	return Weighted{Positional{}, Mobility{}, Check{}, HiddenDifferential{}}
}
