package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration aliases time.Duration for config fields.
type Duration = time.Duration

// parsedEnv returns fallback when key is unset or parse rejects the raw value.
func parsedEnv[T any](key string, fallback T, parse func(string) (T, bool)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return fallback
}

func envOrDefault(key, defaultValue string) string {
	return parsedEnv(key, defaultValue, func(raw string) (string, bool) { return raw, true })
}

// intEnvOrDefault passes negative values through so validation can reject them.
func intEnvOrDefault(key string, defaultValue int) int {
	return parsedEnv(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil
	})
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parsedEnv(key, defaultValue, func(raw string) (time.Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return parsedEnv(key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off":
			return false, true
		}
		return false, false
	})
}
