package board

// Kind represents a Jieqi piece kind, ignoring color and hidden/revealed state. 3 bits.
type Kind uint8

const (
	NoKind Kind = iota
	King
	Advisor
	Elephant
	Horse
	Rook
	Cannon
	Pawn
)

const (
	ZeroKind Kind = King
	NumKinds Kind = 7
)

func (k Kind) IsValid() bool {
	return King <= k && k <= Pawn
}

// letter is the upper-case (Red) encoding used by the state-string codec (spec C5).
func (k Kind) letter() byte {
	switch k {
	case King:
		return 'K'
	case Rook:
		return 'R'
	case Horse:
		return 'H'
	case Cannon:
		return 'C'
	case Elephant:
		return 'E'
	case Advisor:
		return 'A'
	case Pawn:
		return 'P'
	default:
		return '?'
	}
}

func ParseKindLetter(r rune) (Kind, bool) {
	switch r {
	case 'K', 'k':
		return King, true
	case 'R', 'r':
		return Rook, true
	case 'H', 'h':
		return Horse, true
	case 'C', 'c':
		return Cannon, true
	case 'E', 'e':
		return Elephant, true
	case 'A', 'a':
		return Advisor, true
	case 'P', 'p':
		return Pawn, true
	default:
		return NoKind, false
	}
}

func (k Kind) String() string {
	switch k {
	case NoKind:
		return "-"
	default:
		return string(rune(k.letter()))
	}
}

// Piece is a Jieqi piece: its color, actual kind, and whether it is still hidden
// (face-down). Hidden pieces move according to the movement type of the square they
// occupy, not their actual kind; see MovementType.
type Piece struct {
	Color  Color
	Kind   Kind
	Hidden bool
}

// Letter returns the single-character board encoding: the actual kind letter
// (case-coded by color) if revealed, or 'X'/'x' if hidden (spec §4.3).
func (p Piece) Letter() rune {
	if p.Hidden {
		if p.Color == Red {
			return 'X'
		}
		return 'x'
	}
	r := rune(p.Kind.letter())
	if p.Color == Black {
		r = r + ('a' - 'A')
	}
	return r
}

func (p Piece) String() string {
	state := "hidden"
	if !p.Hidden {
		state = "revealed"
	}
	return p.Color.String() + " " + p.Kind.String() + " (" + state + ")"
}
