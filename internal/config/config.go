// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"path/filepath"
)

// Config contains process configuration shared by both pipeline stages.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// RawFile is the default raw chat-export path for the cleaner.
	RawFile string `koanf:"raw_file"`

	// ProcessedDir is where cleaned files are written.
	ProcessedDir string `koanf:"processed_dir"`

	// BackupSuffix is appended to the input path for the pre-mutation copy.
	BackupSuffix string `koanf:"backup_suffix"`

	// CleanedSuffix is appended to the input stem for the cleaned artifact.
	CleanedSuffix string `koanf:"cleaned_suffix"`

	// LeaderboardSuffix is appended to the input stem for the CSV artifact.
	LeaderboardSuffix string `koanf:"leaderboard_suffix"`

	// ParticipationWeight, AccuracyWeight and SpeedWeight scale the three
	// composite-score components.
	ParticipationWeight float64 `koanf:"participation_weight"`
	AccuracyWeight      float64 `koanf:"accuracy_weight"`
	SpeedWeight         float64 `koanf:"speed_weight"`

	// SpeedThresholdSeconds is the average completion time at or under which
	// the speed component saturates.
	SpeedThresholdSeconds float64 `koanf:"speed_threshold_seconds"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		RawFile:               filepath.Join("data", "raw", "quiz_export.txt"),
		ProcessedDir:          filepath.Join("data", "processed"),
		BackupSuffix:          ".bak",
		CleanedSuffix:         "_cleaned.txt",
		LeaderboardSuffix:     "_leaderboard.csv",
		ParticipationWeight:   50,
		AccuracyWeight:        25,
		SpeedWeight:           25,
		SpeedThresholdSeconds: 50,
	}
}
