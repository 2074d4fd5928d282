package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file, fills unset fields from Default and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return finish(&cfg)
}

// LoadDefault returns the validated default configuration
func LoadDefault() (*Config, error) {
	cfg := Config{}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := mergo.Merge(cfg, Default()); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}

	modelsDir, err := ExpandTilde(cfg.Transcriber.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("expand transcriber.models_dir: %w", err)
	}
	cfg.Transcriber.ModelsDir = modelsDir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ExpandTilde replaces a leading ~ with the user's home directory
func ExpandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
