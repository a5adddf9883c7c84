package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "bigcalc.toml"

type appConfig struct {
	REPL   replConfig   `toml:"repl"`
	Output outputConfig `toml:"output"`
	Batch  batchConfig  `toml:"batch"`
	Cache  cacheConfig  `toml:"cache"`

	// Path is where the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type replConfig struct {
	Prompt    string `toml:"prompt"`
	SkipBlank bool   `toml:"skip_blank"`
}

type outputConfig struct {
	Color string `toml:"color"`
}

type batchConfig struct {
	Jobs int    `toml:"jobs"`
	UI   string `toml:"ui"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func defaultConfig() appConfig {
	return appConfig{
		Output: outputConfig{Color: "auto"},
		Batch:  batchConfig{UI: switchAuto.String()},
	}
}

func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads explicitPath, or the nearest bigcalc.toml above startDir.
// A missing discovered file yields defaults; a missing explicit one is an error.
func loadConfig(explicitPath, startDir string) (appConfig, error) {
	path := explicitPath
	if path == "" {
		found, ok, err := findConfigFile(startDir)
		if err != nil {
			return appConfig{}, err
		}
		if !ok {
			return defaultConfig(), nil
		}
		path = found
	}

	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return appConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return appConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return appConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *appConfig) validate() error {
	if _, err := parseSwitch("color", c.Output.Color); err != nil {
		return fmt.Errorf("[output] color: %w", err)
	}
	if _, err := parseSwitch("ui", c.Batch.UI); err != nil {
		return fmt.Errorf("[batch] ui: %w", err)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("[batch] jobs must be >= 0, got %d", c.Batch.Jobs)
	}
	return nil
}
