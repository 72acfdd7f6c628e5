package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if QUIZBOARD_CONFIG is set
//  3. env (prefix QUIZBOARD_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("QUIZBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: QUIZBOARD_RAW_FILE, QUIZBOARD_PROCESSED_DIR, ...
	// Map env keys like QUIZBOARD_PROCESSED_DIR -> processed_dir (flat keys).
	// Underscores are preserved to match koanf tags on the struct.
	envProvider := env.Provider("QUIZBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "quizboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.ProcessedDir == "" {
		return nil, fmt.Errorf("%w: processed_dir must not be empty", ErrInvalidConfig)
	}
	if cfg.CleanedSuffix == "" || cfg.LeaderboardSuffix == "" {
		return nil, fmt.Errorf("%w: artifact suffixes must not be empty", ErrInvalidConfig)
	}
	if cfg.ParticipationWeight < 0 || cfg.AccuracyWeight < 0 || cfg.SpeedWeight < 0 {
		return nil, fmt.Errorf("%w: score weights must not be negative", ErrInvalidConfig)
	}
	if cfg.SpeedThresholdSeconds <= 0 {
		return nil, fmt.Errorf("%w: speed_threshold_seconds must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
