// Package config loads the run configuration for a sitelog-to-STA batch.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SitelogsConfig describes where the raw sitelogs are picked up. The files
// are expected on local disk, the download is someone else's job.
type SitelogsConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"` // glob, default "*.log"
}

// OutputConfig describes the STA-file to write.
type OutputConfig struct {
	Path          string `yaml:"path"`
	FormatVersion string `yaml:"format_version"` // 1.01 or 1.03
	Compress      bool   `yaml:"compress"`       // gzip the written file
	Remark        string `yaml:"remark"`         // remark column content
}

// Config is the complete run configuration.
type Config struct {
	Sitelogs SitelogsConfig `yaml:"sitelogs"`
	Output   OutputConfig   `yaml:"output"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.Sitelogs.Pattern = "*.log"
	cfg.Output.FormatVersion = "1.03"
	cfg.Output.Remark = "SITELOG"
	return cfg
}

// Load reads the YAML config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) check() error {
	if cfg.Sitelogs.Dir == "" {
		return fmt.Errorf("sitelogs.dir is required")
	}
	if cfg.Sitelogs.Pattern == "" {
		cfg.Sitelogs.Pattern = "*.log"
	}
	if v := cfg.Output.FormatVersion; v != "1.01" && v != "1.03" {
		return fmt.Errorf("unsupported output.format_version: %q", v)
	}
	return nil
}
