package config

// MetricsConfig matches metrics.TelemetryConfig field for field; the server
// converts one into the other directly.
type MetricsConfig struct {
	Enabled      bool
	Port         string `validate:"omitempty,numeric"`
	ServiceName  string `validate:"required_with=OtlpEndpoint"`
	OtlpEndpoint string
	OtlpInsecure bool
}

// ScrapeAddr is the listen address for the Prometheus endpoint.
func (m MetricsConfig) ScrapeAddr() string {
	return ":" + m.Port
}

func loadMetrics() MetricsConfig {
	m := MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
	}
	m.OtlpInsecure = boolEnvOrDefault(envOtelInsecure, true)
	return m
}
