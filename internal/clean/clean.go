// Package clean implements the cleaner stage: a raw chat export is filtered
// down to quiz-result lines, respaced between quiz blocks, validated, and
// written out as the cleaned text artifact.
package clean

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quizboard/internal/adapters/backup"
	"quizboard/internal/domain/parse"
	"quizboard/internal/domain/textline"
	"quizboard/pkg/logger"
	"quizboard/pkg/metrics"
)

// Default stage configuration constants.
const (
	defaultProcessedDir  = "data/processed"
	defaultBackupSuffix  = ".bak"
	defaultCleanedSuffix = "_cleaned.txt"

	dirPermission  = 0o755
	filePermission = 0o644
)

// Anomaly is a rank-marked line in the cleaned output that does not fit the
// result grammar. Reported for operator visibility; never blocks the write.
type Anomaly struct {
	LineNumber int
	Content    string
}

// Report summarizes one cleaner run.
type Report struct {
	LinesRead          int
	LinesDropped       int
	LinesKept          int
	BlankLinesInserted int
	ValidResults       int
	Anomalies          []Anomaly
	BackupPath         string
	OutputPath         string
}

// Option applies a configuration option to the Cleaner.
type Option func(*Cleaner)

// WithProcessedDir sets the directory the cleaned artifact is written to.
func WithProcessedDir(dir string) Option {
	return func(c *Cleaner) {
		if dir != "" {
			c.processedDir = dir
		}
	}
}

// WithBackupSuffix sets the suffix of the pre-mutation input copy.
func WithBackupSuffix(suffix string) Option {
	return func(c *Cleaner) {
		if suffix != "" {
			c.backupSuffix = suffix
		}
	}
}

// WithCleanedSuffix sets the suffix appended to the input stem for the
// cleaned artifact.
func WithCleanedSuffix(suffix string) Option {
	return func(c *Cleaner) {
		if suffix != "" {
			c.cleanedSuffix = suffix
		}
	}
}

// WithLogger sets a custom logger for the stage.
func WithLogger(log logger.Logger) Option {
	return func(c *Cleaner) {
		if log != nil {
			c.log = log
		}
	}
}

// Cleaner transforms a raw export file into the cleaned text artifact.
type Cleaner struct {
	processedDir  string
	backupSuffix  string
	cleanedSuffix string
	log           logger.Logger
}

// New constructs a Cleaner with default configuration.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{
		processedDir:  defaultProcessedDir,
		backupSuffix:  defaultBackupSuffix,
		cleanedSuffix: defaultCleanedSuffix,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = logger.Get().Named("cleaner")
	}
	return c
}

// Run cleans inputPath and writes the artifact into the processed directory.
//
// The input is read whole, backed up beside itself, filtered, respaced and
// validated in memory, then written in one shot. A failed write triggers a
// best-effort restore of the input from the backup. When filtering removes
// every line, no file is written and ErrNoContent is returned.
func (c *Cleaner) Run(ctx context.Context, inputPath string) (*Report, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStageDuration("clean", float64(time.Since(start).Milliseconds()))
	}()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	bak, err := backup.Create(inputPath, c.backupSuffix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackup, err)
	}
	c.log.Info(ctx, "backup created", logger.String("path", bak))

	report := &Report{BackupPath: bak}

	kept := c.filter(ctx, strings.Split(string(data), "\n"), report)
	if len(kept) == 0 {
		c.log.Warn(ctx, "nothing survived filtering", logger.String("input", inputPath))
		return nil, ErrNoContent
	}

	final := c.respace(kept, report)
	c.validate(ctx, final, report)

	outPath := filepath.Join(c.processedDir, artifactName(inputPath, c.cleanedSuffix))
	if err := c.write(outPath, final); err != nil {
		if restoreErr := backup.Restore(inputPath, c.backupSuffix); restoreErr != nil {
			c.log.Error(ctx, "rollback failed", logger.Error(restoreErr))
		} else {
			c.log.Warn(ctx, "input restored from backup after failed write")
		}
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	report.OutputPath = outPath

	c.log.Info(ctx, "cleaned file written",
		logger.String("path", outPath),
		logger.Int("lines_read", report.LinesRead),
		logger.Int("lines_kept", report.LinesKept),
		logger.Int("valid_results", report.ValidResults),
		logger.Int("anomalies", len(report.Anomalies)),
	)
	return report, nil
}

// filter drops metadata, noise-phrase and empty lines, keeping the rest
// verbatim.
func (c *Cleaner) filter(ctx context.Context, lines []string, report *Report) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		report.LinesRead++
		metrics.RecordLineRead()

		if rule, drop := textline.DropRule(line); drop {
			report.LinesDropped++
			metrics.RecordLineDropped(rule)
			c.log.Debug(ctx, "line dropped", logger.String("rule", rule), logger.String("line", strings.TrimSpace(line)))
			continue
		}
		report.LinesKept++
		metrics.RecordLineKept()
		kept = append(kept, line)
	}
	return kept
}

// respace walks the retained lines and inserts blank lines according to the
// transition table. Filtering already removed every empty line, so this pass
// only ever inserts; it never suppresses.
func (c *Cleaner) respace(kept []string, report *Report) []string {
	out := make([]string, 0, len(kept))
	prev := textline.None
	for _, line := range kept {
		cur := textline.Classify(line)
		if n := textline.BlankLinesBefore(prev, cur); n > 0 {
			for i := 0; i < n; i++ {
				out = append(out, "")
			}
			report.BlankLinesInserted += n
			metrics.RecordBlankLinesInserted(n)
		}
		out = append(out, line)
		prev = cur
	}
	return out
}

// validate re-scans the final sequence and flags rank-marked lines that do
// not fit the result grammar. Reporting only; the write proceeds regardless.
func (c *Cleaner) validate(ctx context.Context, final []string, report *Report) {
	for i, line := range final {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t := textline.Classify(line)
		if t != textline.Gold && t != textline.Number {
			continue
		}
		if parse.Matches(line) {
			report.ValidResults++
			continue
		}
		report.Anomalies = append(report.Anomalies, Anomaly{LineNumber: i + 1, Content: strings.TrimSpace(line)})
		metrics.RecordAnomaly()
		c.log.Warn(ctx, "malformed result line",
			logger.Int("line", i+1),
			logger.String("content", strings.TrimSpace(line)),
		)
	}
}

func (c *Cleaner) write(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return err
	}
	content := strings.Join(lines, "\n") + "\n"
	return os.WriteFile(path, []byte(content), filePermission)
}

// artifactName derives the output filename from the input stem.
func artifactName(inputPath, suffix string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}
