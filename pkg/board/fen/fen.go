// Package fen contains utilities for reading and writing Jieqi positions in the compact
// state-string notation from spec §4.3: "<board> <captured> <turn> <viewer>".
package fen

import (
	"fmt"
	"strings"

	"github.com/jieqi-dev/engine/pkg/board"
)

// Initial is the state string of a freshly dealt game, viewed omnisciently, before the
// per-color shuffle is applied (every non-king piece hidden).
const Initial = "xxxxkxxxx/9/1x5x1/x1x1x1x1x/9/9/X1X1X1X1X/1X5X1/9/XXXXKXXXX - r -"

// Viewer selects whose knowledge a state string is redacted for: ViewerRed and ViewerBlack
// hide the other side's knowledge of pieces they have not personally captured, while
// ViewerNone renders the full, unredacted position (spec §4.3 "debug serialization").
type Viewer uint8

const (
	ViewerNone Viewer = iota
	ViewerRed
	ViewerBlack
)

func ParseViewer(s string) (Viewer, error) {
	switch s {
	case "-":
		return ViewerNone, nil
	case "r":
		return ViewerRed, nil
	case "b":
		return ViewerBlack, nil
	default:
		return 0, fmt.Errorf("invalid viewer: %q", s)
	}
}

func (v Viewer) String() string {
	switch v {
	case ViewerRed:
		return "r"
	case ViewerBlack:
		return "b"
	default:
		return "-"
	}
}

// Captured is a piece removed from the board. WasHidden records whether it was still
// face-down at the moment of capture, which governs redaction: a viewer other than the
// capturing color only learns its kind once it is captured by them or is shown in an
// unredacted (ViewerNone) serialization.
type Captured struct {
	Piece     board.Piece
	By        board.Color
	WasHidden bool
}

func (c Captured) letter(viewer Viewer) rune {
	if c.WasHidden && viewer != ViewerNone && viewer != toViewer(c.By) {
		return board.Piece{Color: c.Piece.Color, Hidden: true}.Letter()
	}
	return board.Piece{Color: c.Piece.Color, Kind: c.Piece.Kind}.Letter()
}

func toViewer(c board.Color) Viewer {
	if c == board.Red {
		return ViewerRed
	}
	return ViewerBlack
}

// Decode parses a state string into a position, the captured-piece lists, the side to
// move, and the viewer it was redacted for.
func Decode(zt *board.ZobristTable, s string) (*board.Position, []Captured, board.Color, Viewer, error) {
	parts := strings.Fields(s)
	if len(parts) != 4 {
		return nil, nil, 0, 0, fmt.Errorf("invalid state string (want 4 fields): %q", s)
	}

	pieces, err := decodeBoard(parts[0])
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("invalid board in %q: %w", s, err)
	}
	pos, err := board.NewPosition(zt, pieces)
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("invalid position in %q: %w", s, err)
	}

	turn, err := board.ParseColor(parts[2])
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("invalid turn in %q: %w", s, err)
	}

	viewer, err := ParseViewer(parts[3])
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("invalid viewer in %q: %w", s, err)
	}

	captured, err := decodeCaptured(parts[1], viewer)
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("invalid captured list in %q: %w", s, err)
	}

	if err := checkPieceBudget(pieces, captured); err != nil {
		return nil, nil, 0, 0, fmt.Errorf("invalid state in %q: %w", s, err)
	}

	return pos, captured, turn, viewer, nil
}

// checkPieceBudget enforces spec §7.1's "captured-piece count plus board count exceeding 32
// per side" and §8's "... per colour <= 16" invariants across the two halves of a state
// string together, since neither decodeBoard nor decodeCaptured alone can see both.
func checkPieceBudget(pieces []board.Placement, captured []Captured) error {
	const maxPerColor = 16
	onBoard := map[board.Color]int{}
	for _, pl := range pieces {
		onBoard[pl.Piece.Color]++
	}
	lost := map[board.Color]int{}
	for _, c := range captured {
		lost[c.Piece.Color]++
	}
	for _, color := range []board.Color{board.Red, board.Black} {
		if total := onBoard[color] + lost[color]; total > maxPerColor {
			return fmt.Errorf("%v has %d pieces on board plus %d captured, exceeds %d", color, onBoard[color], lost[color], maxPerColor)
		}
	}
	return nil
}

// Encode renders a position, captured lists, side to move and viewer as a state string.
func Encode(pos *board.Position, captured []Captured, turn board.Color, viewer Viewer) string {
	return fmt.Sprintf("%v %v %v %v", encodeBoard(pos), encodeCaptured(captured, viewer), turn, viewer)
}

func decodeBoard(s string) ([]board.Placement, error) {
	ranks := strings.Split(s, "/")
	if len(ranks) != int(board.NumRanks) {
		return nil, fmt.Errorf("expected %d ranks, got %d", board.NumRanks, len(ranks))
	}

	var placements []board.Placement
	for i, rankStr := range ranks {
		r := board.Rank(int(board.NumRanks) - 1 - i)
		f := board.FileA
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '9':
				f += board.File(ch - '0')
			case ch == 'X' || ch == 'x':
				color := board.Red
				if ch == 'x' {
					color = board.Black
				}
				placements = append(placements, board.Placement{
					Square: board.NewSquare(f, r),
					Piece:  board.Piece{Color: color, Hidden: true},
				})
				f++
			default:
				kind, ok := board.ParseKindLetter(ch)
				if !ok {
					return nil, fmt.Errorf("invalid board character: %q", string(ch))
				}
				color := board.Red
				if ch >= 'a' && ch <= 'z' {
					color = board.Black
				}
				placements = append(placements, board.Placement{
					Square: board.NewSquare(f, r),
					Piece:  board.Piece{Color: color, Kind: kind, Hidden: false},
				})
				f++
			}
			if f > board.NumFiles {
				return nil, fmt.Errorf("rank %d overflows board width", i)
			}
		}
		if f != board.NumFiles {
			return nil, fmt.Errorf("rank %d has wrong width", i)
		}
	}
	return placements, nil
}

func encodeBoard(pos *board.Position) string {
	var sb strings.Builder
	for i := 0; i < int(board.NumRanks); i++ {
		r := board.Rank(int(board.NumRanks) - 1 - i)
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			p, ok := pos.Piece(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				fmt.Fprintf(&sb, "%d", blanks)
				blanks = 0
			}
			sb.WriteRune(p.Letter())
		}
		if blanks > 0 {
			fmt.Fprintf(&sb, "%d", blanks)
		}
		if i < int(board.NumRanks)-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// decodeCaptured parses "<red-losses>:<black-losses>" (spec §4.3: "two colon-separated
// lists -- red's losses then black's losses"): the first list is the red pieces Black has
// captured, the second is the black pieces Red has captured. A redacted entry ('x'/'X')
// decodes to a Captured with WasHidden true and Kind unknown (NoKind); Decode never
// re-derives an identity the viewer was not shown.
func decodeCaptured(s string, viewer Viewer) ([]Captured, error) {
	if s == "-" {
		return nil, nil
	}
	halves := strings.SplitN(s, ":", 2)
	if len(halves) != 2 {
		return nil, fmt.Errorf("expected <red>:<black>, got %q", s)
	}

	var out []Captured
	lostColor := []board.Color{board.Red, board.Black}
	for i, half := range halves {
		if half == "-" {
			continue
		}
		capturedColor := lostColor[i]
		by := capturedColor.Opponent()
		for _, ch := range half {
			if ch == 'x' || ch == 'X' {
				out = append(out, Captured{Piece: board.Piece{Color: capturedColor, Hidden: true}, By: by, WasHidden: true})
				continue
			}
			kind, ok := board.ParseKindLetter(ch)
			if !ok {
				return nil, fmt.Errorf("invalid captured piece: %q", string(ch))
			}
			out = append(out, Captured{Piece: board.Piece{Color: capturedColor, Kind: kind}, By: by})
		}
	}
	return out, nil
}

func encodeCaptured(captured []Captured, viewer Viewer) string {
	if len(captured) == 0 {
		return "-"
	}
	var red, black strings.Builder
	for _, c := range captured {
		r := c.letter(viewer)
		if c.Piece.Color == board.Red {
			red.WriteRune(r)
		} else {
			black.WriteRune(r)
		}
	}
	out := func(sb strings.Builder) string {
		if sb.Len() == 0 {
			return "-"
		}
		return sb.String()
	}
	return out(red) + ":" + out(black)
}
