// Package config loads the build-output configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/Mutaz-Awad/docusaurus/pkg/outputpath"
)

// Config mirrors the build-output section of the site configuration.
// TrailingSlash is a tri-state: absent means "unknown, probe both layouts".
type Config struct {
	OutDir        string `yaml:"outDir"`
	TrailingSlash *bool  `yaml:"trailingSlash"`
	CacheDir      string `yaml:"cacheDir"`
	MinimumFreeGB int    `yaml:"minimumFreeGB"`
	Workers       int    `yaml:"workers"`
}

// Load reads and parses the config file at path and applies defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if config.OutDir == "" {
		config.OutDir = "build"
	}
	if config.MinimumFreeGB == 0 {
		config.MinimumFreeGB = 1
	}

	return config, nil
}

// TrailingSlashMode converts the nullable YAML flag into the enumerated
// mode the resolver branches on.
func (c Config) TrailingSlashMode() outputpath.TrailingSlash {
	if c.TrailingSlash == nil {
		return outputpath.TrailingSlashUnknown
	}
	if *c.TrailingSlash {
		return outputpath.TrailingSlashAlways
	}
	return outputpath.TrailingSlashNever
}
