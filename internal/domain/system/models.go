package system

// Snapshot is the canonical device and OS state.
type Snapshot struct {
	DeviceName                  string  `json:"deviceName"`
	DeviceType                  string  `json:"deviceType"`
	DeviceModel                 string  `json:"deviceModel"`
	DeviceModelPromotional      string  `json:"deviceModelPromotional"`
	SystemVersion               string  `json:"systemVersion"`
	DeviceDisplayHeight         float64 `json:"deviceDisplayHeight"`
	DeviceDisplayWidth          float64 `json:"deviceDisplayWidth"`
	DeviceDisplayBrightness     float64 `json:"deviceDisplayBrightness"`
	IsTwentyFourHourTimeEnabled bool    `json:"isTwentyFourHourTimeEnabled"`
	IsLowPowerModeEnabled       bool    `json:"isLowPowerModeEnabled"`
	IsNetworkConnected          bool    `json:"isNetworkConnected"`
}

// Default returns the empty snapshot used before the first update.
func Default() Snapshot {
	return Snapshot{}
}
