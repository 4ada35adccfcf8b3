package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/insightdelivered/holerite-analyzer/internal/classifier"
	"github.com/insightdelivered/holerite-analyzer/internal/margin"
)

// Environment variables read by Load.
const (
	EnvPort       = "HOLERITE_PORT"
	EnvWorkers    = "HOLERITE_WORKERS"
	EnvPolicy     = "HOLERITE_POLICY"
	EnvVocabulary = "HOLERITE_VOCABULARY"
	EnvLogLevel   = "HOLERITE_LOG_LEVEL"
	EnvLogDev     = "HOLERITE_LOG_DEV"
)

// Config holds the runtime settings shared by the CLI and the API server.
type Config struct {
	Port           string
	Workers        int
	Policy         string
	VocabularyPath string
	LogLevel       string
	LogDevelopment bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:     "8080",
		Workers:  4,
		Policy:   margin.Tiered.Name,
		LogLevel: "info",
	}
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env.
// Load does not validate; callers apply their overrides and then call
// Validate.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	if v := os.Getenv(EnvPort); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv(EnvPolicy); v != "" {
		cfg.Policy = v
	}
	if v := os.Getenv(EnvVocabulary); v != "" {
		cfg.VocabularyPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogDev); v != "" {
		dev, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogDev, err)
		}
		cfg.LogDevelopment = dev
	}

	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := margin.PolicyByName(c.Policy); err != nil {
		return err
	}
	return nil
}

// MarginPolicy resolves the configured policy name.
func (c Config) MarginPolicy() (margin.Policy, error) {
	return margin.PolicyByName(c.Policy)
}

// Vocabulary loads the configured vocabulary file, or the built-in
// vocabulary when no file is set.
func (c Config) Vocabulary() (classifier.Vocabulary, error) {
	if c.VocabularyPath == "" {
		return classifier.DefaultVocabulary(), nil
	}
	return classifier.LoadVocabulary(c.VocabularyPath)
}
