// Command clean filters a raw quiz chat export down to result lines and
// writes the cleaned artifact into the processed directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"quizboard/internal/clean"
	"quizboard/internal/config"
	"quizboard/pkg/logger"
	"quizboard/pkg/metrics"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `clean - quiz chat-export cleaner

Filters metadata and noise out of a raw chat export, normalizes spacing
between quiz blocks, and writes <stem>_cleaned.txt into the processed
directory. A .bak copy of the input is kept beside it.

Usage:
  clean [flags] [input-file]

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	input := flag.String("input", "", "raw chat export to clean (defaults to the configured raw_file)")
	configPath := flag.String("config", "", "path to a YAML configuration file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if err := run(*input, *configPath, *verbose); err != nil {
		os.Stderr.WriteString("clean failed: " + err.Error() + "\n")
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

	log := logger.Named("clean-cli")
	runID := uuid.NewString()
	log.Info(ctx, "starting cleaner run", logger.String("run_id", runID))

	path := input
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		path = cfg.RawFile
	}

	cleaner := clean.New(
		clean.WithProcessedDir(cfg.ProcessedDir),
		clean.WithBackupSuffix(cfg.BackupSuffix),
		clean.WithCleanedSuffix(cfg.CleanedSuffix),
		clean.WithLogger(log),
	)

	report, err := cleaner.Run(ctx, path)
	if errors.Is(err, clean.ErrNoContent) {
		fmt.Printf("Nothing to clean: no quiz content found in %s\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	if summary, gatherErr := metrics.Summary(); gatherErr == nil {
		log.Debug(ctx, "run metrics", logger.String("run_id", runID), logger.Any("counters", summary))
	}

	fmt.Printf("Cleaned %s\n", path)
	fmt.Printf("  lines: %d read, %d kept, %d dropped, %d blanks inserted\n",
		report.LinesRead, report.LinesKept, report.LinesDropped, report.BlankLinesInserted)
	fmt.Printf("  results: %d valid, %d anomalies\n", report.ValidResults, len(report.Anomalies))
	for _, a := range report.Anomalies {
		fmt.Printf("    line %d: %s\n", a.LineNumber, a.Content)
	}
	fmt.Printf("  backup:  %s\n", report.BackupPath)
	fmt.Printf("  output:  %s\n", report.OutputPath)
	return nil
}
