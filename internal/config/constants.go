package config

import "time"

const (
	envPort            = "PORT"
	envBridgeMode      = "BRIDGE_MODE"
	envBridgePath      = "BRIDGE_PATH"
	envBridgeURL       = "BRIDGE_URL"
	envBridgePing      = "BRIDGE_PING_INTERVAL"
	envBridgeReconnect = "BRIDGE_RECONNECT_MAX"
	envTimezone        = "LOCAL_TIMEZONE"
	envEmulation       = "EMULATION_ENABLED"
	envEmulationCity   = "EMULATION_CITY"
	envEmulationUnits  = "EMULATION_UNITS"
	envEmulationReplay = "EMULATION_REPLAY_INTERVAL"
	envSnapshotDir     = "SNAPSHOT_DIR"
	envSnapshotKeep    = "SNAPSHOT_RETENTION"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envLogForwardLevel = "LOG_FORWARD_LEVEL"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort         = "4000"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "widgetbridge"
	defaultBridgeMode   = BridgeModeListen
	defaultBridgePath   = "/bridge"
	defaultBridgePing   = 30 * Duration(time.Second)
	defaultReconnectMax = 30 * Duration(time.Second)
	defaultCity         = "sf"
	defaultUnits        = "metric"
	// Fixtures are static; a slow replay just keeps observers exercised.
	defaultReplayInterval = 30 * Duration(time.Second)
	defaultSnapshotKeep   = 20
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultForwardLevel   = "warn"
)

// Bridge modes.
const (
	BridgeModeListen = "listen"
	BridgeModeDial   = "dial"
)
