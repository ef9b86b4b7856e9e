package config

// BridgeConfig controls how the native host reaches the bridge.
type BridgeConfig struct {
	// Mode is listen (host connects to Path) or dial (we connect to URL).
	Mode         string   `validate:"oneof=listen dial"`
	Path         string   `validate:"required,startswith=/"`
	URL          string   `validate:"required_if=Mode dial"`
	PingInterval Duration `validate:"gt=0"`
	ReconnectMax Duration `validate:"gt=0"`
}

// Dial reports whether the bridge connects out to the host.
func (b BridgeConfig) Dial() bool {
	return b.Mode == BridgeModeDial
}

func loadBridge() BridgeConfig {
	return BridgeConfig{
		Mode:         envOrDefault(envBridgeMode, defaultBridgeMode),
		Path:         envOrDefault(envBridgePath, defaultBridgePath),
		URL:          envOrDefault(envBridgeURL, ""),
		PingInterval: durationEnvOrDefault(envBridgePing, defaultBridgePing),
		ReconnectMax: durationEnvOrDefault(envBridgeReconnect, defaultReconnectMax),
	}
}
