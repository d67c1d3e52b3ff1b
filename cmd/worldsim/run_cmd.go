package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rulegraph/worldsim/internal/config"
	"github.com/rulegraph/worldsim/internal/model"
	"github.com/rulegraph/worldsim/internal/provenance"
	"github.com/rulegraph/worldsim/internal/registry"
	"github.com/rulegraph/worldsim/internal/resolver"
	"github.com/rulegraph/worldsim/internal/sim"
	"github.com/rulegraph/worldsim/internal/validator"
)

// runRunCmd loads a World, resolves its LawCards, validates the pair,
// simulates, and writes a provenance lockfile. args accepts the World
// document path either positionally (`<world.json> [flags]`, the primary
// form) or via `--world`, which both Run's positional dispatch and the
// `run` alias route here unchanged.
//
// Exit codes:
//
//	0 = run completed
//	2 = usage or validation failure
//	1 = resolver or simulation failure
func runRunCmd(args []string, stdout, stderr io.Writer) int {
	var positionalWorld string
	rest := args
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		positionalWorld = rest[0]
		rest = rest[1:]
	}

	cmd := flag.NewFlagSet("worldsim", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		worldFlag string
		lockPath  string
		dt        float64
		steps     int
	)
	cmd.StringVar(&worldFlag, "world", "", "Path to a World document (alias for the positional argument)")
	cmd.StringVar(&lockPath, "lock", "run.lock.json", "Path to write the run lockfile")
	cmd.Float64Var(&dt, "dt", 0, "Override the World's configured step size (seconds)")
	cmd.IntVar(&steps, "steps", 0, "Override the World's configured step count")

	if err := cmd.Parse(rest); err != nil {
		return 2
	}

	worldPath := positionalWorld
	if worldFlag != "" {
		worldPath = worldFlag
	}
	if worldPath == "" {
		_, _ = fmt.Fprintln(stderr, "error: a world document path is required")
		return 2
	}

	world, err := model.LoadWorldFile(worldPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	config.Apply(world, config.Overrides{DtSeconds: dt, Steps: steps})

	refs := make([]string, 0, len(world.Dynamics))
	for _, d := range world.Dynamics {
		refs = append(refs, d.Ref)
	}
	cards, err := resolver.ResolveCards(refs)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	report := validator.Validate(world, cards)
	if !report.OK {
		for _, issue := range report.Issues {
			_, _ = fmt.Fprintf(stdout, "VALIDATION: %s: %s\n", issue.Path, issue.Message)
		}
		return 2
	}

	result, err := sim.Simulate(context.Background(), world, cards, registry.NewDefault())
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	lock := provenance.Build(result, cards, time.Now().UTC())
	if err := provenance.WriteFile(lock, lockPath); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	slog.Debug("run complete", "runId", result.RunID, "steps", result.Steps)
	_, _ = fmt.Fprintf(stdout, "Steps=%d dt=%g drifts=%v lock=%s\n", result.Steps, result.DtSeconds, result.Drifts, lockPath)
	return 0
}
