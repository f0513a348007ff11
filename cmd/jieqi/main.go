// Command jieqi is the CLI surface described by spec §6: moves, best, and list subcommands
// over the engine's legal-move generation and strategy registry. Grounded on the teacher's
// cmd/morlock/main.go flag idiom (custom flag.Usage text, explicit os.Exit codes), restructured
// as a flag.NewFlagSet-per-subcommand dispatch instead of a stdin-driven UCI/console REPL,
// since spec §6 names three fixed one-shot subcommands rather than a long-lived session.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jieqi-dev/engine/pkg/engine"
	"github.com/jieqi-dev/engine/pkg/server"
)

const (
	exitOK = iota
	exitArgError
	exitMalformedState
	exitUnknownStrategy
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitArgError
	}

	ctx := context.Background()
	eng := engine.New(0)
	srv := server.New(eng)

	switch args[0] {
	case "moves":
		return runMoves(ctx, srv, args[1:])
	case "best":
		return runBest(ctx, srv, args[1:])
	case "list":
		return runList(ctx, srv, args[1:])
	default:
		usage()
		return exitArgError
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: jieqi <command> [options]

Commands:
  moves  --fen <state-string>                                [--json]
  best   --fen <state-string> --strategy <name>
         [--depth <int>] [--time <seconds>] [--n <count>] [--seed <int>] [--json]
  list                                                        [--json]
`)
}

func runMoves(ctx context.Context, srv *server.Server, args []string) int {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	state := fs.String("fen", "", "state-string to generate legal moves for")
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if *state == "" {
		fmt.Fprintln(os.Stderr, "moves: --fen is required")
		return exitArgError
	}

	moves, err := srv.LegalMoves(ctx, *state)
	if err != nil {
		return reportError(err)
	}

	if *asJSON {
		printJSON(struct {
			Moves []string `json:"moves"`
		}{moves})
	} else {
		for _, m := range moves {
			fmt.Println(m)
		}
	}
	return exitOK
}

func runBest(ctx context.Context, srv *server.Server, args []string) int {
	fs := flag.NewFlagSet("best", flag.ContinueOnError)
	state := fs.String("fen", "", "state-string to search from")
	strategy := fs.String("strategy", "", "registered strategy name")
	depth := fs.Uint("depth", 0, "ply depth limit")
	seconds := fs.Float64("time", 0, "wall-clock budget in seconds")
	n := fs.Int("n", 1, "number of candidate moves to return")
	seed := fs.Int64("seed", 0, "random seed")
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if *state == "" || *strategy == "" {
		fmt.Fprintln(os.Stderr, "best: --fen and --strategy are required")
		return exitArgError
	}

	cfg := engine.Config{Depth: *depth, Seed: *seed}
	if *seconds > 0 {
		cfg.Budget = time.Duration(*seconds * float64(time.Second))
	}

	candidates, err := srv.BestMoves(ctx, *state, *strategy, *n, cfg)
	if err != nil {
		return reportError(err)
	}

	if *asJSON {
		printJSON(struct {
			Strategy string              `json:"strategy"`
			Moves    []server.Candidate `json:"moves"`
		}{*strategy, candidates})
	} else {
		for _, c := range candidates {
			fmt.Printf("%v %.2f\n", c.Move, c.Score)
		}
	}
	return exitOK
}

func runList(_ context.Context, srv *server.Server, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}

	names := srv.Strategies(context.Background())
	if *asJSON {
		printJSON(struct {
			Strategies []string `json:"strategies"`
		}{names})
	} else {
		for _, n := range names {
			fmt.Println(n)
		}
	}
	return exitOK
}

func reportError(err error) int {
	var se *server.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case server.KindMalformedState:
			fmt.Fprintln(os.Stderr, err)
			return exitMalformedState
		case server.KindUnknownStrategy:
			fmt.Fprintln(os.Stderr, err)
			return exitUnknownStrategy
		}
	}
	fmt.Fprintln(os.Stderr, err)
	return exitArgError
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
