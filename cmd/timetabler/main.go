// Command timetabler is the CLI driver: it loads a problem document, runs
// one or all four search strategies, and writes the resulting solution
// document (or a validation-only report).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/campusforge/timetabler/pkg/model"
	"github.com/campusforge/timetabler/pkg/search"
	"github.com/campusforge/timetabler/pkg/solve"
)

var (
	flagFile       string
	flagConfigPath string
	flagEnv        string
	flagOut        string
	flagStrategy   string
	flagVerbose    bool
	flagTimeout    time.Duration
	flagCompareOut string

	rootCmd = &cobra.Command{
		Use:           "timetabler",
		Short:         "Weekly timetable scheduler built on constraint search",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Run one search strategy and write the solution document",
		RunE:  runSolve,
	}

	compareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Run all four search strategies and report metrics side by side",
		RunE:  runCompare,
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate a problem document without running search",
		RunE:  runValidate,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "path to the problem document (required)")
	_ = rootCmd.MarkPersistentFlagRequired("file")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "optional YAML defaults layered under the document's config block")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "logging environment: development (default) or production")

	solveCmd.Flags().StringVar(&flagOut, "out", "", "write the solution document here instead of stdout")
	solveCmd.Flags().StringVar(&flagStrategy, "strategy", "", "override the document's config.strategy")
	solveCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "also print a human-readable schedule")
	solveCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "cooperative search deadline, 0 disables it")

	compareCmd.Flags().StringVar(&flagCompareOut, "compare-out", "", "write comparison metrics as CSV here")
	compareCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "cooperative search deadline, 0 disables it")

	rootCmd.AddCommand(solveCmd, compareCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "timetabler:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error kind to the driver's three-code contract: 2 for
// malformed/invalid input, 1 for anything else, 0 (handled by main falling
// through without calling os.Exit) for success or documented infeasibility.
func exitCodeFor(err error) int {
	switch err.(type) {
	case model.InputMalformedError, model.ReferenceUnresolvedError, model.InvariantViolatedError:
		return 2
	default:
		return 1
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	logger := solve.NewLogger(flagEnv)
	defer logger.Sync()
	log := solve.ForRun(logger, uuid.NewString())

	problem, err := solve.LoadWithDefaults(flagFile, flagConfigPath)
	if err != nil {
		log.Error("failed to load problem document", zap.Error(err))
		return err
	}

	cfg, err := solve.ResolveConfig(problem, flagStrategy)
	if err != nil {
		log.Error("config invalid", zap.Error(err))
		return err
	}
	if cfg.Strategy == "all" {
		return runCompare(cmd, args)
	}

	var deadline time.Time
	if flagTimeout > 0 {
		deadline = time.Now().Add(flagTimeout)
	}

	result, err := solve.Run(problem, cfg, deadline)
	if err != nil {
		if _, timedOut := err.(model.TimeoutError); !timedOut {
			log.Error("run failed", zap.Error(err))
			return err
		}
		log.Warn("run timed out", zap.Error(err))
	}

	log.Info("run complete",
		zap.String("status", result.Document.Meta.Status),
		zap.Int("events_scheduled", result.Document.Meta.EventsScheduled),
		zap.Int("events_total", result.Document.Meta.EventsTotal),
	)

	if err := writeJSON(flagOut, result.Document); err != nil {
		return err
	}
	if flagVerbose {
		fmt.Print(solve.FormatSchedule(problem, result.Document))
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger := solve.NewLogger(flagEnv)
	defer logger.Sync()
	runID := uuid.NewString()
	log := solve.ForRun(logger, runID)

	problem, err := solve.LoadWithDefaults(flagFile, flagConfigPath)
	if err != nil {
		log.Error("failed to load problem document", zap.Error(err))
		return err
	}

	cfg, err := solve.ResolveConfig(problem, "all")
	if err != nil {
		log.Error("config invalid", zap.Error(err))
		return err
	}

	var deadline time.Time
	if flagTimeout > 0 {
		deadline = time.Now().Add(flagTimeout)
	}

	results, err := solve.Compare(problem, cfg, deadline)
	if err != nil {
		if _, timedOut := err.(model.TimeoutError); !timedOut {
			log.Error("compare failed", zap.Error(err))
			return err
		}
		log.Warn("compare timed out partway through", zap.Error(err))
	}

	outcomes := make([]search.Outcome, 0, len(results))
	for _, r := range results {
		outcomes = append(outcomes, r.Outcome)
		log.Info("strategy complete",
			zap.String("strategy", r.Outcome.Strategy),
			zap.String("status", r.Outcome.Status),
			zap.Int("iterations", r.Outcome.Metrics.Iterations),
		)
	}

	if flagCompareOut != "" {
		file, ferr := os.Create(flagCompareOut)
		if ferr != nil {
			return ferr
		}
		defer file.Close()

		rows := solve.ComparisonRows(runID, outcomes)
		if werr := solve.WriteComparisonCSV(file, rows); werr != nil {
			return werr
		}
	}

	for _, r := range results {
		fmt.Printf("%-6s status=%-8s iterations=%-6d expanded=%-6d max_frontier=%-6d\n",
			r.Outcome.Strategy, r.Outcome.Status, r.Outcome.Metrics.Iterations, r.Outcome.Metrics.Expanded, r.Outcome.Metrics.MaxFrontierSize)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := solve.LoadWithDefaults(flagFile, flagConfigPath); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func writeJSON(path string, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("timetabler: cannot encode solution document: %w", err)
	}
	if path == "" {
		_, err := os.Stdout.Write(append(encoded, '\n'))
		return err
	}
	return os.WriteFile(path, append(encoded, '\n'), 0o644)
}
