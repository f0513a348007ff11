package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/jieqi-dev/engine/pkg/board"
	"github.com/jieqi-dev/engine/pkg/eval"
	"github.com/jieqi-dev/engine/pkg/mcts"
	"github.com/jieqi-dev/engine/pkg/search"
	"github.com/jieqi-dev/engine/pkg/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Ranked is a move and a score normalised to [-1000;1000] from the searching side's
// perspective, or ±10000 for a found mate (eval.ReportScore), per spec §4.8/§6's CLI JSON
// schema.
type Ranked struct {
	Move  board.Move
	Score float64
}

// Strategy implements the two-operation contract spec §9's design note calls for: any
// registered strategy can list legal moves and rank candidates, regardless of the search
// family underneath.
type Strategy interface {
	LegalMoves(ctx context.Context, pos *board.Position, color board.Color) []board.Move
	BestMoves(ctx context.Context, pos *board.Position, color board.Color, n int) ([]Ranked, error)
}

// legalMoves is embedded by every strategy: listing legal moves does not depend on which
// search family a strategy otherwise uses.
type legalMoves struct{}

func (legalMoves) LegalMoves(_ context.Context, pos *board.Position, color board.Color) []board.Move {
	return board.LegalMoves(pos, color)
}

func defaultConfig(cfg Config, depth uint, budget time.Duration, hashMB uint) (uint, time.Duration, uint, int64) {
	d, b, h, s := depth, budget, hashMB, cfg.Seed
	if cfg.Depth > 0 {
		d = cfg.Depth
	}
	if cfg.Budget > 0 {
		b = cfg.Budget
	}
	if cfg.HashMB > 0 {
		h = cfg.HashMB
	}
	return d, b, h, s
}

func init() {
	register("random", newRandomStrategy)
	register("greedy", newGreedyStrategy)
	register("minimax", newMinimaxStrategy)
	register("iterative", newIterativeStrategy)
	register("pvs", newPVSStrategy)
	register("muses", newMusesStrategy)
	register("mcts", newMCTSStrategy)
	register("mcts_rave", newMCTSRaveStrategy)
	register("mcts_eval", newMCTSEvalStrategy)
}

// rankByStaticEval scores every move by the static evaluator of the position it leads to,
// used as the cheap fallback ranking every strategy starts from before (if at all) refining
// its own best move's score with a deeper search.
func rankByStaticEval(pos *board.Position, color board.Color, moves []board.Move, ev eval.Evaluator) []Ranked {
	ranked := make([]Ranked, len(moves))
	for i, m := range moves {
		annotated, undo := pos.Apply(m)
		score := eval.Unit(color) * ev.Evaluate(context.Background(), pos)
		pos.Undo(undo)
		ranked[i] = Ranked{Move: annotated, Score: eval.ReportScore(score)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

func truncate(ranked []Ranked, n int) []Ranked {
	if n > 0 && n < len(ranked) {
		return ranked[:n]
	}
	return ranked
}

// --- random ---

type randomStrategy struct {
	legalMoves
	r *rand.Rand
}

func newRandomStrategy(_ *board.ZobristTable, cfg Config) Strategy {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	return &randomStrategy{r: rand.New(rand.NewSource(seed))}
}

func (s *randomStrategy) BestMoves(_ context.Context, pos *board.Position, color board.Color, n int) ([]Ranked, error) {
	moves := board.LegalMoves(pos, color)
	if len(moves) == 0 {
		return nil, nil
	}
	s.r.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })

	ranked := make([]Ranked, len(moves))
	for i, m := range moves {
		ranked[i] = Ranked{Move: m, Score: 0}
	}
	return truncate(ranked, n), nil
}

// --- greedy ---

type greedyStrategy struct {
	legalMoves
}

func newGreedyStrategy(_ *board.ZobristTable, _ Config) Strategy {
	return &greedyStrategy{}
}

func (greedyStrategy) BestMoves(_ context.Context, pos *board.Position, color board.Color, n int) ([]Ranked, error) {
	moves := board.LegalMoves(pos, color)
	if len(moves) == 0 {
		return nil, nil
	}
	return truncate(rankByStaticEval(pos, color, moves, eval.Default()), n), nil
}

// --- alpha-beta family (minimax, iterative, pvs, muses) ---

// searchStrategy wraps the consolidated pkg/search.PVS negamax, grounded on spec §4.7's
// "(search-family, depth-or-budget, eval-weights)" record: every alpha-beta strategy is
// the same engine, differing only in depth/iterative-deepening/TT configuration, since the
// spec's several named tiers are configurations of one feature-complete Negamax rather than
// separate implementations (see DESIGN.md).
type searchStrategy struct {
	legalMoves
	depth     uint
	iterative bool
	budget    time.Duration
	tt        search.TranspositionTable
	pvs       search.PVS
}

func newSearchStrategy(zt *board.ZobristTable, cfg Config, depth uint, iterative bool, budget time.Duration, hashMB uint) *searchStrategy {
	d, b, h, _ := defaultConfig(cfg, depth, budget, hashMB)

	var tt search.TranspositionTable = search.NoTranspositionTable{}
	if h > 0 {
		tt = search.NewTranspositionTable(context.Background(), uint64(h)<<20)
	}

	q := search.Quiescence{Explore: search.QuiescentExploration, Eval: eval.Default()}
	return &searchStrategy{
		depth:     d,
		iterative: iterative,
		budget:    b,
		tt:        tt,
		pvs:       search.PVS{Eval: q},
	}
}

func newMinimaxStrategy(zt *board.ZobristTable, cfg Config) Strategy {
	return newSearchStrategy(zt, cfg, 2, false, 0, 0)
}

func newIterativeStrategy(zt *board.ZobristTable, cfg Config) Strategy {
	return newSearchStrategy(zt, cfg, 6, true, 5*time.Second, 16)
}

func newPVSStrategy(zt *board.ZobristTable, cfg Config) Strategy {
	return newSearchStrategy(zt, cfg, 8, true, 10*time.Second, 32)
}

func newMusesStrategy(zt *board.ZobristTable, cfg Config) Strategy {
	return newSearchStrategy(zt, cfg, 10, true, 15*time.Second, 64)
}

func (s *searchStrategy) BestMoves(ctx context.Context, pos *board.Position, color board.Color, n int) ([]Ranked, error) {
	legal := board.LegalMoves(pos, color)
	if len(legal) == 0 {
		return nil, nil
	}
	ranked := rankByStaticEval(pos, color, legal, eval.Default())

	var best board.Move
	var bestScore eval.Score
	var err error

	if s.iterative {
		best, bestScore, err = s.runIterative(ctx, pos, color)
	} else {
		best, bestScore, err = s.runFixedDepth(ctx, pos, color)
	}
	if err != nil && err != search.ErrHalted {
		return nil, err
	}
	if best != (board.Move{}) {
		promote(ranked, best, eval.ReportScore(bestScore))
	}

	return truncate(ranked, n), nil
}

func (s *searchStrategy) runFixedDepth(ctx context.Context, pos *board.Position, color board.Color) (board.Move, eval.Score, error) {
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf, TT: s.tt}
	_, score, pv, err := s.pvs.Search(ctx, sctx, pos, color, int(s.depth))
	if err != nil || len(pv) == 0 {
		return board.Move{}, 0, err
	}
	return pv[0], score, nil
}

func (s *searchStrategy) runIterative(ctx context.Context, pos *board.Position, color board.Color) (board.Move, eval.Score, error) {
	launcher := &searchctl.Iterative{Root: s.pvs}
	opt := searchctl.Options{}
	if s.depth > 0 {
		opt.DepthLimit = lang.Some(s.depth)
	}
	if s.budget > 0 {
		opt.TimeControl = lang.Some(searchctl.TimeControl{Budget: s.budget})
	}

	wctx, cancel := context.WithTimeout(ctx, s.budget+time.Second)
	defer cancel()

	_, out := launcher.Launch(wctx, pos, color, s.tt, opt)
	var last search.PV
	for pv := range out {
		last = pv
	}
	if len(last.Moves) == 0 {
		return board.Move{}, 0, fmt.Errorf("no move found")
	}
	return last.Moves[0], last.Score, nil
}

func promote(ranked []Ranked, move board.Move, score float64) {
	for i, r := range ranked {
		if r.Move.Equals(move) {
			ranked[i].Score = score
			copy(ranked[1:i+1], ranked[0:i])
			ranked[0] = Ranked{Move: r.Move, Score: score}
			return
		}
	}
}

// --- MCTS family (mcts, mcts_rave, mcts_eval) ---

type mctsSearcher interface {
	Search(ctx context.Context, pos *board.Position, color board.Color, iterations int) []mcts.Ranked
}

type mctsStrategy struct {
	legalMoves
	engine     mctsSearcher
	iterations int
}

func newMCTSStrategy(_ *board.ZobristTable, cfg Config) Strategy {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	return &mctsStrategy{engine: mcts.UCT{Rand: rand.New(rand.NewSource(seed))}, iterations: iterationsFor(cfg)}
}

func newMCTSRaveStrategy(_ *board.ZobristTable, cfg Config) Strategy {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	return &mctsStrategy{engine: mcts.RAVE{Rand: rand.New(rand.NewSource(seed))}, iterations: iterationsFor(cfg)}
}

func newMCTSEvalStrategy(_ *board.ZobristTable, cfg Config) Strategy {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	return &mctsStrategy{engine: mcts.PolicyValue{Rand: rand.New(rand.NewSource(seed))}, iterations: iterationsFor(cfg)}
}

func iterationsFor(cfg Config) int {
	if cfg.Depth > 0 {
		return int(cfg.Depth) * 500
	}
	return 2000
}

func (s *mctsStrategy) BestMoves(ctx context.Context, pos *board.Position, color board.Color, n int) ([]Ranked, error) {
	result := s.engine.Search(ctx, pos, color, s.iterations)
	ranked := make([]Ranked, len(result))
	for i, r := range result {
		ranked[i] = Ranked{Move: r.Move, Score: r.Score}
	}
	return truncate(ranked, n), nil
}

