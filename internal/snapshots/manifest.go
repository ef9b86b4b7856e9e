package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest tracks what has been captured per namespace.
type Manifest struct {
	Version     int                      `json:"version"`
	GeneratedAt time.Time                `json:"generatedAt"`
	Retention   Retention                `json:"retention"`
	Namespaces  map[string]NamespaceMeta `json:"namespaces"`
}

type Retention struct {
	Captures int `json:"captures"`
}

type NamespaceMeta struct {
	Captures     []string  `json:"captures"`
	LastCaptured time.Time `json:"lastCaptured"`
}

func defaultManifest(retention int) Manifest {
	return Manifest{
		Version:    1,
		Retention:  Retention{Captures: retention},
		Namespaces: map[string]NamespaceMeta{},
	}
}

func readManifest(path string, retention int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retention), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retention), err
	}
	if m.Namespaces == nil {
		m.Namespaces = map[string]NamespaceMeta{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now
	path := filepath.Join(basePath, manifestName)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
