// Command sweeprun runs a parameter-sweep experiment described by a YAML
// tree description (spec §6) against a pool of worker processes, then prints
// either a ranked comparison table or an optimisation summary.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lucasbern/sweeprun"
	"github.com/lucasbern/sweeprun/config"
	"github.com/lucasbern/sweeprun/exec"
	"github.com/lucasbern/sweeprun/metrics"
	"github.com/lucasbern/sweeprun/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var workersOverride int
	var dryRun bool

	cmd := &cobra.Command{
		Use:          "sweeprun <config.yaml>",
		Short:        "Run a parameter-sweep experiment described by a YAML tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], workersOverride, dryRun)
		},
	}
	cmd.Flags().IntVar(&workersOverride, "workers", 0, "override the worker count declared in the config file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate the configuration without executing any task")
	return cmd
}

func run(path string, workersOverride int, dryRun bool) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	result, err := config.Build(cfg, log)
	if err != nil {
		return err
	}

	workers := result.Workers
	if workersOverride > 0 {
		workers = workersOverride
	}

	if dryRun {
		log.Info().Str("name", cfg.Name).Int("workers", workers).Msg("sweeprun: configuration is valid")
		return nil
	}

	start := time.Now()
	pool := exec.NewPool(workers, result.WorkDir, log, metrics.NewBasicProvider())

	if err := sweeprun.Run(result.Root, pool, result.Fixed); err != nil {
		return err
	}

	switch root := result.Root.(type) {
	case *sweeprun.ComparisonNode:
		report.PrintRankedComparison(root)
	case *sweeprun.OptimisedNode:
		report.PrintOptimisationSummary(root)
	}

	log.Info().
		Str("name", cfg.Name).
		Dur("elapsed", time.Since(start)).
		Msg("sweeprun: run finished")
	return nil
}
