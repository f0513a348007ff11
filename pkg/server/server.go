// Package server implements the stateless request server (C10): legal_moves, best_moves,
// and strategies over a parsed state-string, per spec §4.8. Grounded directly on spec §4.8
// itself rather than any teacher file — morlock is a UCI/console engine with a stateful
// session, not a stateless request server, so there is no teacher precedent for this shape.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/board/fen"
	"github.com/jieqi-dev/engine/pkg/engine"
)

// Kind classifies a Server error into one of spec §7's user-visible error kinds. Deadline
// cancellation (kind 4) and invariant violations (kind 5) never reach here: the former is
// absorbed by searchctl and always returns a best-so-far result, the latter is a programming
// error that panics instead of being reported as a request failure.
type Kind int

const (
	KindNone Kind = iota
	KindMalformedState
	KindIllegalMove
	KindUnknownStrategy
)

func (k Kind) String() string {
	switch k {
	case KindMalformedState:
		return "malformed_state"
	case KindIllegalMove:
		return "illegal_move"
	case KindUnknownStrategy:
		return "unknown_strategy"
	default:
		return "none"
	}
}

// Error is a Server request failure, carrying the error kind spec §7 requires the public
// boundary (CLI exit code, server error response) to distinguish.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Candidate is one ranked move in a best_moves response.
type Candidate struct {
	Move  string  `json:"move"`
	Score float64 `json:"score"`
}

// Server answers legal_moves/best_moves/strategies requests over a parsed state-string. It
// carries no session: every call fully parses its own state-string argument (spec §4.8).
type Server struct {
	eng *engine.Engine
}

func New(eng *engine.Engine) *Server {
	return &Server{eng: eng}
}

func (s *Server) decode(state string) (*board.Position, board.Color, error) {
	pos, _, turn, _, err := fen.Decode(s.eng.Zobrist(), state)
	if err != nil {
		return nil, 0, &Error{Kind: KindMalformedState, Err: err}
	}
	return pos, turn, nil
}

// LegalMoves returns every legal move from state, in move-string form (spec §4.3).
func (s *Server) LegalMoves(_ context.Context, state string) ([]string, error) {
	pos, turn, err := s.decode(state)
	if err != nil {
		return nil, err
	}

	moves := board.LegalMoves(pos, turn)
	ret := make([]string, len(moves))
	for i, m := range moves {
		ret[i] = m.String()
	}
	return ret, nil
}

// BestMoves returns the top-n moves from state as ranked by the named strategy.
func (s *Server) BestMoves(ctx context.Context, state, strategy string, n int, cfg engine.Config) ([]Candidate, error) {
	pos, turn, err := s.decode(state)
	if err != nil {
		return nil, err
	}

	strat, err := s.eng.Create(strategy, cfg)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownStrategy) {
			return nil, &Error{Kind: KindUnknownStrategy, Err: err}
		}
		return nil, err
	}

	ranked, err := strat.BestMoves(ctx, pos, turn, n)
	if err != nil {
		return nil, err
	}

	ret := make([]Candidate, len(ranked))
	for i, r := range ranked {
		ret[i] = Candidate{Move: r.Move.String(), Score: r.Score}
	}
	return ret, nil
}

// Strategies returns every registered strategy name.
func (s *Server) Strategies(_ context.Context) []string {
	return s.eng.Strategies()
}
