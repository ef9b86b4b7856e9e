package resources

// BatteryState mirrors the host's charging state codes.
type BatteryState int

const (
	BatteryUnplugged    BatteryState = 0
	BatteryCharging     BatteryState = 1
	BatteryFullyCharged BatteryState = 2
)

// Battery describes the device battery.
type Battery struct {
	Percentage     float64      `json:"percentage"`
	State          BatteryState `json:"state"`
	Source         string       `json:"source"`
	TimeUntilEmpty float64      `json:"timeUntilEmpty"`
	Serial         string       `json:"serial"`
	Health         float64      `json:"health"`
}

// Memory is expressed in megabytes.
type Memory struct {
	Used      float64 `json:"used"`
	Free      float64 `json:"free"`
	Available float64 `json:"available"`
}

// Processor describes CPU load.
type Processor struct {
	Load  float64 `json:"load"`
	Count int     `json:"count"`
}

// Snapshot is the canonical resource usage.
type Snapshot struct {
	Battery   Battery   `json:"battery"`
	Memory    Memory    `json:"memory"`
	Processor Processor `json:"processor"`
}

// Default returns the empty snapshot used before the first update.
func Default() Snapshot {
	return Snapshot{}
}
