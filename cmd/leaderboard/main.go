// Command leaderboard parses a cleaned quiz file and writes the ranked
// cumulative leaderboard CSV beside it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"quizboard/internal/board"
	"quizboard/internal/config"
	"quizboard/internal/domain/scoring"
	"quizboard/pkg/logger"
	"quizboard/pkg/metrics"
)

const previewRows = 5

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `leaderboard - cumulative quiz leaderboard builder

Parses every result line in a cleaned quiz file, scores participants on
participation, accuracy and speed, and writes <stem>_leaderboard.csv next
to the input.

Usage:
  leaderboard [flags] [input-file]

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	input := flag.String("input", "", "cleaned quiz file to aggregate (defaults to the configured cleaned artifact)")
	configPath := flag.String("config", "", "path to a YAML configuration file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if err := run(*input, *configPath, *verbose); err != nil {
		os.Stderr.WriteString("leaderboard failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(input, configPath string, verbose bool) error {
	// A local .env can hold QUIZBOARD_* overrides; absence is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	if configPath != "" {
		if err := os.Setenv("QUIZBOARD_CONFIG", configPath); err != nil {
			return err
		}
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	log := logger.Named("leaderboard-cli")
	runID := uuid.NewString()
	log.Info(ctx, "starting leaderboard run", logger.String("run_id", runID))

	path := input
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		path = defaultCleanedPath(cfg)
	}

	builder := board.New(
		board.WithLeaderboardSuffix(cfg.LeaderboardSuffix),
		board.WithScorer(scoring.New(
			scoring.WithWeights(cfg.ParticipationWeight, cfg.AccuracyWeight, cfg.SpeedWeight),
			scoring.WithSpeedThreshold(cfg.SpeedThresholdSeconds),
		)),
		board.WithLogger(log),
	)

	report, err := builder.Run(ctx, path)
	if errors.Is(err, board.ErrNoResults) {
		fmt.Printf("No valid quiz results found in %s\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	if summary, gatherErr := metrics.Summary(); gatherErr == nil {
		log.Debug(ctx, "run metrics", logger.String("run_id", runID), logger.Any("counters", summary))
	}

	fmt.Printf("Leaderboard for %s\n", path)
	fmt.Printf("  results: %d parsed, %d skipped, %d rejected\n",
		report.ResultsParsed, report.LinesSkipped, report.ResultsRejected)
	fmt.Printf("  participants: %d\n", len(report.Rows))
	fmt.Printf("  output: %s\n\n", report.OutputPath)

	printPreview(report)
	return nil
}

// defaultCleanedPath derives the cleaner's output path from configuration, so
// the two commands chain without arguments.
func defaultCleanedPath(cfg *config.Config) string {
	base := filepath.Base(cfg.RawFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(cfg.ProcessedDir, stem+cfg.CleanedSuffix)
}

// printPreview writes the top rows to stdout as an aligned table.
func printPreview(report *board.Report) {
	n := len(report.Rows)
	if n > previewRows {
		n = previewRows
	}
	fmt.Printf("Top %d:\n", n)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Rank\tUsername\tQuizzes\tAvg Points\tAvg Time\tFinal\tRemark")
	for _, r := range report.Rows[:n] {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.1f\t%.2f\t%s\n",
			r.Rank, r.Username, r.QuizzesParticipated, r.AvgPoints, r.AvgTime, r.FinalScore, r.Remark)
	}
	_ = w.Flush()
}
