// Package config resolves application settings: built-in defaults, then an
// optional YAML file, then PLANBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Generator selects the plan generator implementation.
type Generator string

const (
	GeneratorStub Generator = "stub"
	GeneratorLLM  Generator = "llm"
)

func (g Generator) Valid() bool { return g == GeneratorStub || g == GeneratorLLM }

type Config struct {
	// DBPath is the SQLite fast tier cache.
	DBPath string `yaml:"db_path"`
	// DataFile is the routine file tier location. Empty means ask on first
	// save when interactive.
	DataFile         string    `yaml:"data_file"`
	LogLevel         string    `yaml:"log_level"`
	Generator        Generator `yaml:"generator"`
	PlanTimeoutMs    int       `yaml:"plan_timeout_ms"`
	PersistTimeoutMs int       `yaml:"persist_timeout_ms"`
	StubDelayMs      int       `yaml:"stub_delay_ms"`
}

// Default returns settings rooted at home.
func Default(home string) Config {
	return Config{
		DBPath:           filepath.Join(home, ".planboard", "planboard.db"),
		LogLevel:         "warn",
		Generator:        GeneratorStub,
		PlanTimeoutMs:    60000,
		PersistTimeoutMs: 10000,
		StubDelayMs:      2000,
	}
}

// Path returns the config file location: PLANBOARD_CONFIG or
// ~/.planboard/config.yaml.
func Path(home string) string {
	if p := os.Getenv("PLANBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home, ".planboard", "config.yaml")
}

// Load resolves the configuration. A missing file is not an error.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return LoadFrom(home, Path(home))
}

// LoadFrom resolves the configuration from an explicit home and file.
func LoadFrom(home, path string) (Config, error) {
	cfg := Default(home)
	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PLANBOARD_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("PLANBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PLANBOARD_GENERATOR"); v != "" {
		cfg.Generator = Generator(strings.ToLower(v))
	}
	envInt("PLANBOARD_PLAN_TIMEOUT_MS", &cfg.PlanTimeoutMs)
	envInt("PLANBOARD_PERSIST_TIMEOUT_MS", &cfg.PersistTimeoutMs)
	envInt("PLANBOARD_STUB_DELAY_MS", &cfg.StubDelayMs)
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		*dst = n
	}
}

func (c Config) Validate() error {
	if !c.Generator.Valid() {
		return fmt.Errorf("generator: invalid value %q (expected stub or llm)", c.Generator)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DBPath == "" {
		return errors.New("db_path: must not be empty")
	}
	return nil
}

func (c Config) PlanTimeout() time.Duration {
	return time.Duration(c.PlanTimeoutMs) * time.Millisecond
}

func (c Config) PersistTimeout() time.Duration {
	return time.Duration(c.PersistTimeoutMs) * time.Millisecond
}

func (c Config) StubDelay() time.Duration {
	return time.Duration(c.StubDelayMs) * time.Millisecond
}

// Level is the parsed LogLevel.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: invalid value %q", s)
	}
	return l, nil
}

// YAML renders the effective configuration.
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshalling config: %w", err)
	}
	return string(data), nil
}
