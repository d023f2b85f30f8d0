package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quill/interpreter"
)

const FileName = ".quill.yaml"

// Config holds the user settings read from the YAML config file.
type Config struct {
	Path         string `yaml:"-"`
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	History      string `yaml:"history"`
	MaxDepth     int    `yaml:"max_depth"`
	Color        bool   `yaml:"color"`
}

func Default() Config {
	return Config{
		Prompt:       ">>> ",
		Continuation: "... ",
		History:      "~/.quill_history",
		MaxDepth:     interpreter.DefaultMaxDepth,
		Color:        true,
	}
}

// DefaultPath is $HOME/.quill.yaml, or "" when no home directory is known.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads path over the defaults. A missing or empty file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return cfg, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	cfg.Path = abs

	file, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", abs, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	if cfg.MaxDepth < 1 {
		return cfg, fmt.Errorf("config: %s: max_depth must be positive, got %d", abs, cfg.MaxDepth)
	}
	cfg.History = expandHome(cfg.History)
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// InterpreterOptions maps the settings onto interpreter options.
func (c Config) InterpreterOptions() []interpreter.Option {
	return []interpreter.Option{interpreter.WithMaxDepth(c.MaxDepth)}
}
