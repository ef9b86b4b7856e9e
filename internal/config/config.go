package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	validate = validator.New()
	// dotenvFiles are read before the environment; existing variables win.
	dotenvFiles = []string{".env"}
)

// LogConfig controls the root logger and native log forwarding.
type LogConfig struct {
	Level        string `validate:"oneof=debug info warn warning error"`
	Format       string `validate:"oneof=text json"`
	ForwardLevel string `validate:"oneof=debug info warn warning error"`
}

// Config holds runtime configuration for the bridge service.
type Config struct {
	Port      string `validate:"required,numeric"`
	Timezone  string `validate:"omitempty,timezone"`
	Bridge    BridgeConfig
	Emulation EmulationConfig
	Snapshots SnapshotConfig
	Log       LogConfig
	Metrics   MetricsConfig
}

// Load reads .env (when present) and the environment, then validates the result.
func Load() (Config, error) {
	if err := loadDotenv(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:      envOrDefault(envPort, defaultPort),
		Timezone:  envOrDefault(envTimezone, ""),
		Bridge:    loadBridge(),
		Emulation: loadEmulation(),
		Snapshots: loadSnapshots(),
		Log: LogConfig{
			Level:        strings.ToLower(envOrDefault(envLogLevel, defaultLogLevel)),
			Format:       strings.ToLower(envOrDefault(envLogFormat, defaultLogFormat)),
			ForwardLevel: strings.ToLower(envOrDefault(envLogForwardLevel, defaultForwardLevel)),
		},
		Metrics: loadMetrics(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves Timezone, falling back to the process zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func loadDotenv() error {
	for _, path := range dotenvFiles {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
