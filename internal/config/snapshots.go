package config

// SnapshotConfig controls capture of accepted host payloads. An empty Dir disables capture.
type SnapshotConfig struct {
	Dir       string
	Retention int `validate:"gt=0"`
}

// Enabled reports whether captures are written.
func (s SnapshotConfig) Enabled() bool {
	return s.Dir != ""
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Dir:       envOrDefault(envSnapshotDir, ""),
		Retention: intEnvOrDefault(envSnapshotKeep, defaultSnapshotKeep),
	}
}
