package communications

// WiFi describes the wireless connection.
type WiFi struct {
	Enabled bool   `json:"enabled"`
	Bars    int    `json:"bars"`
	SSID    string `json:"ssid"`
}

// Telephony describes the cellular connection. Type is one of "", 2G, 3G, CDMA, LTE, 5G.
type Telephony struct {
	AirplaneMode bool   `json:"airplaneMode"`
	Bars         int    `json:"bars"`
	Operator     string `json:"operator"`
	Type         string `json:"type"`
}

// BluetoothDevice is a paired device.
type BluetoothDevice struct {
	Name               string  `json:"name"`
	Address            string  `json:"address"`
	Battery            float64 `json:"battery"`
	SupportsBattery    bool    `json:"supportsBattery"`
	IsAccessory        bool    `json:"isAccessory"`
	IsAppleAudioDevice bool    `json:"isAppleAudioDevice"`
	MajorClass         int     `json:"majorClass"`
	MinorClass         int     `json:"minorClass"`
}

// Bluetooth describes the bluetooth radio.
type Bluetooth struct {
	Enabled      bool              `json:"enabled"`
	Scanning     bool              `json:"scanning"`
	Discoverable bool              `json:"discoverable"`
	Devices      []BluetoothDevice `json:"devices"`
}

// Snapshot is the canonical connectivity state.
type Snapshot struct {
	WiFi      WiFi      `json:"wifi"`
	Telephony Telephony `json:"telephony"`
	Bluetooth Bluetooth `json:"bluetooth"`
}

// Default returns the empty snapshot used before the first update.
func Default() Snapshot {
	return Snapshot{Bluetooth: Bluetooth{Devices: []BluetoothDevice{}}}
}
