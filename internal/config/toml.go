// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Player     PlayerConfig     `toml:"player"`
	Game       GameConfig       `toml:"game"`
	Commentary CommentaryConfig `toml:"commentary"`
}

// PlayerConfig maps player settings.
type PlayerConfig struct {
	Name *string `toml:"name"`
}

// GameConfig maps round pacing and sound settings. Delays are in
// milliseconds.
type GameConfig struct {
	StartDelayMs *int  `toml:"start-delay-ms"`
	ShuffleMs    *int  `toml:"shuffle-ms"`
	RevealMs     *int  `toml:"reveal-ms"`
	TransitionMs *int  `toml:"transition-ms"`
	Sound        *bool `toml:"sound"`
}

// CommentaryConfig maps commentary settings. Credentials come from the
// environment only.
type CommentaryConfig struct {
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
