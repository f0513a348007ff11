package board

import (
	"fmt"
	"strings"
)

// MoveType distinguishes a plain move by an already-revealed piece from a reveal-and-move
// by a still-hidden piece (spec §3 "Move descriptor"). Every move made by a hidden piece is
// Reveal; every move made by a revealed piece is Plain.
type MoveType uint8

const (
	Plain MoveType = iota
	Reveal
)

// Move is a not-necessarily-legal move descriptor, plus bookkeeping used by Apply/Undo.
// Capture and the pre-move Hidden flag of the moving piece are recorded so Undo is exactly
// reversible; RevealedKind is filled in by Apply for Reveal moves, for use by the textual
// codec's post-execution annotation ("+a0a1=R").
type Move struct {
	Type     MoveType
	From, To Square

	// Capture is the piece captured by this move, if any (the zero Piece otherwise).
	Capture Piece

	// RevealedKind is set by Apply for Reveal moves: the actual kind that was exposed.
	RevealedKind Kind
}

// IsCapture reports whether the move captures a piece.
func (m Move) IsCapture() bool {
	return m.Capture != (Piece{})
}

// IsReveal reports whether this move reveals a hidden piece.
func (m Move) IsReveal() bool {
	return m.Type == Reveal
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Type == o.Type
}

// String renders the move in the textual move format from spec §4.3:
// "[+]<file><rank><file><rank>[=<piece-letter>]".
func (m Move) String() string {
	var sb strings.Builder
	if m.IsReveal() {
		sb.WriteByte('+')
	}
	fmt.Fprintf(&sb, "%v%v", m.From, m.To)
	if m.IsReveal() && m.RevealedKind.IsValid() {
		fmt.Fprintf(&sb, "=%c", m.RevealedKind.letter())
	}
	return sb.String()
}

// ParseMove parses a move string as described in spec §4.3. The trailing "=<letter>"
// annotation, if present, is informational only (it is produced by Apply, not consumed by
// it) and is accepted but not required.
func ParseMove(str string) (Move, error) {
	s := str
	reveal := false
	if strings.HasPrefix(s, "+") {
		reveal = true
		s = s[1:]
	}

	annotated := Kind(NoKind)
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return Move{}, fmt.Errorf("invalid move: %q", str)
		}
		k, ok := ParseKindLetter(rune(s[idx+1]))
		if !ok {
			return Move{}, fmt.Errorf("invalid revealed kind in move: %q", str)
		}
		annotated = k
		s = s[:idx]
	}

	runes := []rune(s)
	if len(runes) != 4 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from in move %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to in move %q: %w", str, err)
	}

	typ := Plain
	if reveal {
		typ = Reveal
	}
	return Move{Type: typ, From: from, To: to, RevealedKind: annotated}, nil
}

// PrintMoves renders a sequence of moves space separated, for logging.
func PrintMoves(moves []Move) string {
	var parts []string
	for _, m := range moves {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " ")
}
