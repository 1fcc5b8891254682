package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the demo server configuration.
type Config struct {
	Listen       string `yaml:"listen"`
	File         string `yaml:"file"`       // .kml or .kmz to serve
	ClientDir    string `yaml:"client_dir"` // static map client
	IncludeIndex bool   `yaml:"include_index"`
	MaxKMLMB     int    `yaml:"max_kml_mb"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:       ":8080",
		ClientDir:    "../client",
		IncludeIndex: true,
		MaxKMLMB:     256,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
