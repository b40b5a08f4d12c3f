package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile  = ".gotox.yaml"
	defaultHistoryFile = ".gotox_history"
	defaultPrompt      = "gotox> "
)

// Config holds the CLI settings read from the YAML config file.
type Config struct {
	Prompt          string `yaml:"prompt"`
	HistoryFile     string `yaml:"history_file"`
	Color           *bool  `yaml:"color"`
	Debug           bool   `yaml:"debug"`
	MaxErrors       int    `yaml:"max_errors"`
	MaxStringLength int    `yaml:"max_string_length"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Prompt:      defaultPrompt,
		HistoryFile: filepath.Join("~", defaultHistoryFile),
	}
}

// ColorEnabled reports whether the config allows colour output.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// LoadConfig reads the config file at path. An empty path selects
// ~/.gotox.yaml, which may be absent; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, defaultConfigFile)
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	return decodeConfig(file, path)
}

func decodeConfig(r io.Reader, path string) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file keeps every default.
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(path string) error {
	errs := ValidationError{Path: path}
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must not be empty")
	}
	if c.MaxErrors < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_errors must not be negative, got %d", c.MaxErrors))
	}
	if c.MaxStringLength < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_string_length must not be negative, got %d", c.MaxStringLength))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// historyPath resolves the history file, expanding a leading "~".
// An empty result disables history.
func (c *Config) historyPath() string {
	p := c.HistoryFile
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, p[1:])
	}
	return p
}
