// Package board implements the aggregator stage: a cleaned quiz file is
// parsed into individual results, folded into the cumulative leaderboard, and
// written out as CSV beside the input.
package board

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quizboard/internal/adapters/csvout"
	"quizboard/internal/domain/model"
	"quizboard/internal/domain/parse"
	"quizboard/internal/domain/scoring"
	"quizboard/pkg/logger"
	"quizboard/pkg/metrics"
)

const defaultLeaderboardSuffix = "_leaderboard.csv"

// Report summarizes one aggregator run.
type Report struct {
	ResultsParsed   int
	LinesSkipped    int
	ResultsRejected int
	Rows            []model.LeaderboardRow
	OutputPath      string
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithLeaderboardSuffix sets the suffix appended to the input stem for the
// CSV artifact.
func WithLeaderboardSuffix(suffix string) Option {
	return func(b *Builder) {
		if suffix != "" {
			b.leaderboardSuffix = suffix
		}
	}
}

// WithScorer sets the scoring aggregator used to rank parsed results.
func WithScorer(scorer *scoring.Aggregator) Option {
	return func(b *Builder) {
		if scorer != nil {
			b.scorer = scorer
		}
	}
}

// WithLogger sets a custom logger for the stage.
func WithLogger(log logger.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// Builder turns a cleaned quiz file into the ranked leaderboard CSV.
type Builder struct {
	leaderboardSuffix string
	scorer            *scoring.Aggregator
	log               logger.Logger
}

// New constructs a Builder with default configuration.
func New(opts ...Option) *Builder {
	b := &Builder{
		leaderboardSuffix: defaultLeaderboardSuffix,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.scorer == nil {
		b.scorer = scoring.New()
	}
	if b.log == nil {
		b.log = logger.Get().Named("board")
	}
	return b
}

// Run parses every result line in inputPath, ranks the participants and
// writes the leaderboard CSV next to the input. Lines that do not look like
// results are skipped; lines that match the grammar but yield an unusable
// result are rejected with a warning. When no line parses at all, no CSV is
// written and ErrNoResults is returned.
func (b *Builder) Run(ctx context.Context, inputPath string) (*Report, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStageDuration("aggregate", float64(time.Since(start).Milliseconds()))
	}()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	report := &Report{}
	results := b.collect(ctx, strings.Split(string(data), "\n"), report)
	if len(results) == 0 {
		b.log.Warn(ctx, "no results parsed", logger.String("input", inputPath))
		return nil, ErrNoResults
	}

	report.Rows = b.scorer.Leaderboard(results)
	metrics.UpdateParticipants(len(report.Rows))

	outPath := artifactPath(inputPath, b.leaderboardSuffix)
	if err := csvout.Write(outPath, report.Rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	report.OutputPath = outPath

	b.log.Info(ctx, "leaderboard written",
		logger.String("path", outPath),
		logger.Int("results", report.ResultsParsed),
		logger.Int("participants", len(report.Rows)),
		logger.Int("skipped", report.LinesSkipped),
		logger.Int("rejected", report.ResultsRejected),
	)
	return report, nil
}

// collect parses result lines, counting skips and rejects as it goes. Blank
// lines are structural spacing and pass silently.
func (b *Builder) collect(ctx context.Context, lines []string, report *Report) []model.QuizResult {
	results := make([]model.QuizResult, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		res, err := parse.Result(line)
		switch {
		case errors.Is(err, parse.ErrNoMatch):
			report.LinesSkipped++
			metrics.RecordLineSkipped()
			b.log.Debug(ctx, "line skipped", logger.Int("line", i+1), logger.String("content", strings.TrimSpace(line)))
		case errors.Is(err, parse.ErrRejected):
			report.ResultsRejected++
			metrics.RecordResultRejected()
			b.log.Warn(ctx, "result rejected", logger.Int("line", i+1), logger.String("content", strings.TrimSpace(line)))
		case err == nil:
			report.ResultsParsed++
			metrics.RecordResultParsed()
			results = append(results, res)
		}
	}
	return results
}

// artifactPath derives the CSV path from the input stem, in the same
// directory as the input.
func artifactPath(inputPath, suffix string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inputPath), stem+suffix)
}
