// Package config loads the locator's tunables from an optional YAML
// file layered over built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/JoeYang1412/HighlightLocator/fingerprint"
	"github.com/JoeYang1412/HighlightLocator/search"
	"gopkg.in/yaml.v3"
)

// Config aggregates every tunable the tool exposes.
type Config struct {
	Fingerprint fingerprint.Config `yaml:"fingerprint"`
	Search      search.Config      `yaml:"search"`
	DownloadDir string             `yaml:"download_dir"`
	SegmentDir  string             `yaml:"segment_dir"`
}

// Default returns the configuration the tool ships with.
func Default() Config {
	return Config{
		Fingerprint: fingerprint.DefaultConfig(),
		Search:      search.DefaultConfig(),
		DownloadDir: "yt_dlp",
		SegmentDir:  "segment",
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged; fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %q: %v", path, err)
	}

	if err := cfg.Fingerprint.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
