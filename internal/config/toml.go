// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Player      PlayerConfig      `toml:"player"`
	Game        GameConfig        `toml:"game"`
	Progression ProgressionConfig `toml:"progression"`
}

// PlayerConfig maps player identity settings.
type PlayerConfig struct {
	Name *string `toml:"name"`
}

// GameConfig maps typing session settings.
type GameConfig struct {
	MaxLineChars *int `toml:"max-line-chars"`
}

// ProgressionConfig maps level-unlock thresholds.
type ProgressionConfig struct {
	RequiredPlays *int `toml:"required-plays"`
	RequiredScore *int `toml:"required-score"`
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
