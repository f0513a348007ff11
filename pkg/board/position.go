package board

import (
	"fmt"
)

// Position is a sparse (mailbox, not bitboard) snapshot of where every piece sits, plus
// enough bookkeeping to make moves exactly reversible: the zobrist hash and the table used
// to maintain it incrementally. Game-level state -- move history, no-progress counters,
// repetition tables, the captured-piece list a viewer is shown -- lives one layer up, since
// none of it is needed to generate or validate a single move (spec §4.1/§4.2).
//
// Grounded on original_source/backend/jieqi/board.py's square-indexed board plus the
// teacher's Position constructor-validates-invariants idiom.
type Position struct {
	board [NumSquares]Piece
	empty [NumSquares]bool

	zt   *ZobristTable
	hash ZobristHash
}

// maxPerKind is the canonical per-colour count of each non-king kind dealt at the start of
// a game (spec §3, §8's "per-kind count exceeded" / "counts per colour <= 16" invariants):
// 2 each of advisor/elephant/horse/rook/cannon, 5 pawns.
var maxPerKind = map[Kind]int{
	Advisor: 2, Elephant: 2, Horse: 2, Rook: 2, Cannon: 2, Pawn: 5,
}

// maxPiecesPerColor is 1 king plus the 15 pieces maxPerKind allows.
const maxPiecesPerColor = 16

// NewPosition builds a position from placements, validating the invariants spec §4.2 and
// §8 require of any well-formed board: exactly one king per color, every hidden piece on
// one of the 32 starting squares, no more than maxPiecesPerColor pieces for a color, and no
// kind exceeding its canonical per-colour count.
func NewPosition(zt *ZobristTable, placements []Placement) (*Position, error) {
	pos := &Position{zt: zt}
	for i := range pos.empty {
		pos.empty[i] = true
	}

	kings := map[Color]int{}
	total := map[Color]int{}
	byKind := map[Color]map[Kind]int{Red: {}, Black: {}}
	for _, pl := range placements {
		if !pl.Square.IsValid() {
			return nil, fmt.Errorf("invalid square: %v", pl.Square)
		}
		if !pos.empty[pl.Square] {
			return nil, fmt.Errorf("duplicate placement on %v", pl.Square)
		}
		if pl.Piece.Hidden && !IsStartSquare(pl.Square) {
			return nil, fmt.Errorf("hidden piece on non-starting square %v", pl.Square)
		}
		pos.set(pl.Square, pl.Piece)
		if pl.Piece.Kind == King && !pl.Piece.Hidden {
			kings[pl.Piece.Color]++
		}
		total[pl.Piece.Color]++
		// A piece's actual kind is only countable toward its canonical per-kind limit if it
		// is known here: revealed pieces always carry it, hidden ones only when built from a
		// seeded deal (NewInitialPosition) rather than decoded from a redacted state string.
		if pl.Piece.Kind != NoKind && pl.Piece.Kind != King {
			byKind[pl.Piece.Color][pl.Piece.Kind]++
		}
	}
	if kings[Red] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("invalid number of revealed kings: red=%d black=%d", kings[Red], kings[Black])
	}
	for _, c := range []Color{Red, Black} {
		if total[c] > maxPiecesPerColor {
			return nil, fmt.Errorf("too many pieces for %v: %d (max %d)", c, total[c], maxPiecesPerColor)
		}
		for k, max := range maxPerKind {
			if n := byKind[c][k]; n > max {
				return nil, fmt.Errorf("too many %v pieces for %v: %d (max %d)", k, c, n, max)
			}
		}
	}

	pos.hash = zt.HashPlacement(pos)
	return pos, nil
}

// Placement pairs a square with the piece standing on it, used to build or describe a
// Position without exposing its internal storage.
type Placement struct {
	Square Square
	Piece  Piece
}

func (p Placement) String() string {
	return fmt.Sprintf("%c@%v", p.Piece.Letter(), p.Square)
}

// Piece returns the piece on sq, if any.
func (p *Position) Piece(sq Square) (Piece, bool) {
	if p.empty[sq] {
		return Piece{}, false
	}
	return p.board[sq], true
}

func (p *Position) set(sq Square, piece Piece) {
	p.board[sq] = piece
	p.empty[sq] = false
}

func (p *Position) clear(sq Square) {
	p.board[sq] = Piece{}
	p.empty[sq] = true
}

// ForEach calls fn for every occupied square, in ascending square order.
func (p *Position) ForEach(fn func(sq Square, piece Piece)) {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if !p.empty[sq] {
			fn(sq, p.board[sq])
		}
	}
}

// FindKing returns the square of color's revealed king. A position built by NewPosition
// always has exactly one.
func (p *Position) FindKing(color Color) (Square, bool) {
	var found Square
	ok := false
	p.ForEach(func(sq Square, piece Piece) {
		if !ok && !piece.Hidden && piece.Kind == King && piece.Color == color {
			found, ok = sq, true
		}
	})
	return found, ok
}

// Hash returns the current piece-placement zobrist hash, incrementally maintained across
// Apply/Undo. It does not distinguish side to move; see HashForTurn.
func (p *Position) Hash() ZobristHash {
	return p.hash
}

// HashForTurn returns the zobrist hash combined with the side-to-move key for color, for
// use as a transposition table key (the same placement with a different mover is a
// different search node).
func (p *Position) HashForTurn(color Color) ZobristHash {
	return p.zt.ToggleTurn(p.hash, color)
}

// Undo is the record needed to exactly reverse an Apply call (spec §4.2's exact-reversibility
// requirement). It carries the moving piece's pre-move state (hidden or not) and the
// captured piece (if any), including that piece's own hidden/revealed state at the moment of
// capture -- the information a game layer needs to know what a viewer was shown.
type Undo struct {
	Move     Move
	Moving   Piece
	Captured Piece
}

// Apply executes m, mutating the position and the incremental hash, and returns the
// move annotated with its actual capture and (for a Reveal move) the kind that was exposed,
// plus an Undo record that reverses the mutation exactly.
func (p *Position) Apply(m Move) (Move, Undo) {
	moving, _ := p.Piece(m.From)
	captured, hadCapture := p.Piece(m.To)

	undo := Undo{Move: m, Moving: moving}
	if hadCapture {
		undo.Captured = captured
	}

	p.hash = p.zt.Toggle(p.hash, moving, m.From)
	if hadCapture {
		p.hash = p.zt.Toggle(p.hash, captured, m.To)
	}

	result := moving
	if m.Type == Reveal {
		result.Hidden = false
	}

	p.clear(m.From)
	p.set(m.To, result)
	p.hash = p.zt.Toggle(p.hash, result, m.To)

	m.RevealedKind = NoKind
	if m.Type == Reveal {
		m.RevealedKind = moving.Kind
	}
	if hadCapture {
		m.Capture = captured
	} else {
		m.Capture = Piece{}
	}
	return m, undo
}

// Undo reverses the mutation made by the Apply call that produced u.
func (p *Position) Undo(u Undo) {
	if cur, ok := p.Piece(u.Move.To); ok {
		p.hash = p.zt.Toggle(p.hash, cur, u.Move.To)
	}

	if u.Captured != (Piece{}) {
		p.set(u.Move.To, u.Captured)
		p.hash = p.zt.Toggle(p.hash, u.Captured, u.Move.To)
	} else {
		p.clear(u.Move.To)
	}

	p.set(u.Move.From, u.Moving)
	p.hash = p.zt.Toggle(p.hash, u.Moving, u.Move.From)
}

// IsChecked reports whether color's king is currently attacked.
func (p *Position) IsChecked(color Color) bool {
	king, ok := p.FindKing(color)
	if !ok {
		return false
	}
	return IsAttacked(p, king, color.Opponent())
}

func (p *Position) String() string {
	var out [NumSquares]byte
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if piece, ok := p.Piece(sq); ok {
			out[sq] = byte(piece.Letter())
		} else {
			out[sq] = '.'
		}
	}

	s := ""
	for r := int(NumRanks) - 1; r >= 0; r-- {
		for f := 0; f < int(NumFiles); f++ {
			s += string(out[NewSquare(File(f), Rank(r))])
		}
		if r > 0 {
			s += "/"
		}
	}
	return s
}
