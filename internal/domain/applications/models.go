package applications

// Metadata describes one installed application.
type Metadata struct {
	Name                string `json:"name"`
	Identifier          string `json:"identifier"`
	Icon                string `json:"icon"`
	Badge               string `json:"badge"`
	IsInstalling        bool   `json:"isInstalling"`
	IsSystemApplication bool   `json:"isSystemApplication"`
}

// Snapshot is the canonical application list.
type Snapshot struct {
	AllApplications []Metadata `json:"allApplications"`
}

// Default returns the empty snapshot used before the first update.
func Default() Snapshot {
	return Snapshot{AllApplications: []Metadata{}}
}
