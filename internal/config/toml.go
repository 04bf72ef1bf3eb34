// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quiz    QuizConfig    `toml:"quiz"`
	History HistoryConfig `toml:"history"`
}

// QuizConfig maps quiz-related settings.
type QuizConfig struct {
	Number  *int    `toml:"number"`
	Verb    *string `toml:"verb"`
	Tense   *string `toml:"tense"`
	Person  *string `toml:"person"`
	DeckDir *string `toml:"deck-dir"`
}

// HistoryConfig maps quiz-history settings.
type HistoryConfig struct {
	Enabled *bool `toml:"enabled"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
