package config

// EmulationConfig controls the desktop fixture harness.
type EmulationConfig struct {
	Enabled        bool
	City           string   `validate:"oneof=sf london"`
	Units          string   `validate:"oneof=metric imperial"`
	ReplayInterval Duration `validate:"gt=0"`
}

func loadEmulation() EmulationConfig {
	return EmulationConfig{
		Enabled:        boolEnvOrDefault(envEmulation, false),
		City:           envOrDefault(envEmulationCity, defaultCity),
		Units:          envOrDefault(envEmulationUnits, defaultUnits),
		ReplayInterval: durationEnvOrDefault(envEmulationReplay, defaultReplayInterval),
	}
}
