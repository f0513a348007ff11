// Package jieqigame layers game-session bookkeeping -- move history, threefold repetition,
// the no-progress draw counter, and the captured-piece list a viewer is shown -- on top of a
// bare board.Position. None of this is needed to generate or validate a single move (that is
// pkg/board's job); it is the state a session needs to carry across a whole game.
//
// Grounded on original_source/jieqi/game.py's JieqiGame/GameConfig (the config knobs and the
// position_counts repetition tracker) and the teacher's pkg/board/board.go (the node-history,
// repetitions map[Hash]int, and noprogress-counter idiom, generalized from two-value
// checkmate/stalemate/insufficient-material draws to the threefold-repetition and
// no-progress rules spec §4.2 requires).
package jieqigame

import (
	"fmt"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/board/fen"
)

// Config holds the per-game knobs original_source's GameConfig exposes as dataclass fields.
type Config struct {
	// MaxRepetitions is the occurrence count of an identical (position, turn) pair that
	// produces a draw. Spec §4.2's rule is threefold, game.py's default is the same: 3.
	MaxRepetitions int
	// NoProgressLimit is the number of consecutive plies without a capture before the game
	// is adjudicated a draw, generalizing the teacher's noprogressPlyLimit. game.py has no
	// equivalent knob; the default is carried over unchanged from the teacher's chess value.
	NoProgressLimit int
	// Seed determines the initial hidden-piece shuffle (board.NewInitialPosition's seed).
	Seed int64
	// DelayReveal defers a reveal move's identity annotation: AnnotateMove omits
	// RevealedKind for a move made under this flag, matching game.py's delay_reveal (the
	// mover sees the identity immediately; a textual viewer does not, until told).
	DelayReveal bool
}

// DefaultConfig returns the configuration of a plain, untimed, non-delayed game.
func DefaultConfig() Config {
	return Config{MaxRepetitions: 3, NoProgressLimit: 100}
}

// node is one position on the game's move stack, enough to undo back to it exactly.
type node struct {
	hash       board.ZobristHash
	move       board.Move
	undo       board.Undo
	mover      board.Color
	noprogress int
	captured   bool
}

// Game wraps a board.Position with the session-level state a full Jieqi game needs: whose
// turn it is, the repetition table, the no-progress counter, and the captured-piece list a
// redacted viewer is shown. Not thread-safe.
type Game struct {
	zt  *board.ZobristTable
	cfg Config

	pos  *board.Position
	turn board.Color

	noprogress  int
	repetitions map[board.ZobristHash]int
	history     []node
	captured    []fen.Captured
	result      board.Result
}

// New starts a game from an already-built position (e.g. decoded from a state string).
func New(zt *board.ZobristTable, pos *board.Position, turn board.Color, cfg Config) *Game {
	g := &Game{
		zt:          zt,
		cfg:         cfg,
		pos:         pos,
		turn:        turn,
		repetitions: map[board.ZobristHash]int{},
	}
	g.repetitions[g.key()]++
	return g
}

// NewShuffled starts a fresh game with a newly shuffled initial position, per cfg.Seed.
func NewShuffled(zt *board.ZobristTable, cfg Config) (*Game, error) {
	pos, err := board.NewInitialPosition(zt, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("shuffle initial position: %w", err)
	}
	return New(zt, pos, board.Red, cfg), nil
}

func (g *Game) key() board.ZobristHash {
	return g.pos.HashForTurn(g.turn)
}

// Position returns the current, live position. Callers must not mutate it directly; use
// Push/Pop to keep the game's bookkeeping consistent.
func (g *Game) Position() *board.Position {
	return g.pos
}

func (g *Game) Turn() board.Color {
	return g.turn
}

func (g *Game) NoProgress() int {
	return g.noprogress
}

func (g *Game) Result() board.Result {
	return g.result
}

// Captured returns the pieces removed from the board so far, in capture order.
func (g *Game) Captured() []fen.Captured {
	return g.captured
}

// AnnotateMove strips a reveal move's RevealedKind when the game is configured to delay
// reveals, matching original_source's delay_reveal: the mover already knows what the piece
// is (Apply filled it in), but a viewer is not told until the game chooses to disclose it.
func (g *Game) AnnotateMove(m board.Move) board.Move {
	if g.cfg.DelayReveal && m.IsReveal() {
		m.RevealedKind = board.NoKind
	}
	return m
}

// Push applies m if it is legal for the side to move, updating the repetition table,
// no-progress counter, captured-piece list, and terminal result. Returns false if m is not
// legal; the game is unchanged in that case.
func (g *Game) Push(m board.Move) (board.Move, bool) {
	if g.result.Outcome != board.Undecided {
		return board.Move{}, false
	}
	if !board.IsLegal(g.pos, g.turn, m) {
		return board.Move{}, false
	}

	mover := g.turn
	applied, undo := g.pos.Apply(m)

	n := node{
		move:       applied,
		undo:       undo,
		mover:      mover,
		noprogress: g.noprogress,
		captured:   applied.IsCapture(),
	}
	if applied.IsCapture() {
		g.captured = append(g.captured, fen.Captured{
			Piece:     applied.Capture,
			By:        mover,
			WasHidden: applied.Capture.Hidden,
		})
		g.noprogress = 0
	} else {
		g.noprogress++
	}

	g.turn = g.turn.Opponent()
	n.hash = g.key()
	g.history = append(g.history, n)
	g.repetitions[n.hash]++

	g.adjudicate()
	return applied, true
}

// Pop reverses the most recent Push. Returns false if the game has no history.
func (g *Game) Pop() (board.Move, bool) {
	if len(g.history) == 0 {
		return board.Move{}, false
	}

	n := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.repetitions[n.hash]--
	if g.repetitions[n.hash] == 0 {
		delete(g.repetitions, n.hash)
	}
	if n.captured {
		g.captured = g.captured[:len(g.captured)-1]
	}

	g.pos.Undo(n.undo)
	g.turn = n.mover
	g.noprogress = n.noprogress
	g.result = board.Result{}

	return n.move, true
}

// adjudicate evaluates every spec §4.2 terminal condition after a move has been pushed: no
// legal move for the side now to move (checkmate or stalemate), the no-progress limit, and
// threefold repetition of the same (position, turn) pair.
func (g *Game) adjudicate() {
	if result, ok := board.IsTerminal(g.pos, g.turn); ok {
		g.result = result
		return
	}
	if g.noprogress >= g.cfg.NoProgressLimit {
		g.result = board.Result{Outcome: board.Draw, Reason: board.NoProgress}
		return
	}
	if g.repetitions[g.key()] >= g.cfg.MaxRepetitions {
		g.result = board.Result{Outcome: board.Draw, Reason: board.Repetition}
	}
}

// HasRevealed reports whether color has made at least one reveal move this game,
// generalizing the teacher's Board.HasCastled query.
func (g *Game) HasRevealed(color board.Color) bool {
	for _, n := range g.history {
		if n.mover == color && n.move.IsReveal() {
			return true
		}
	}
	return false
}

func (g *Game) String() string {
	return fmt.Sprintf("game{turn=%v, noprogress=%v, plies=%v, result=%v}", g.turn, g.noprogress, len(g.history), g.result)
}
