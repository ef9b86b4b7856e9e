package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
	"github.com/preston-bernstein/widgetbridge/internal/emulation"
	"github.com/preston-bernstein/widgetbridge/internal/snapshots"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// Smoke test to ensure serve honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
	if _, err := run(t, "serve"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmulatePrintsSection(t *testing.T) {
	out, err := run(t, "emulate", "--city", "london", "--namespace", "weather", "--timezone", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Weather struct {
			City string `json:"city"`
		} `json:"weather"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got %v: %s", err, out)
	}
	if resp.Weather.City != "London" {
		t.Fatalf("expected London weather, got %q", resp.Weather.City)
	}
}

func TestEmulatePrintsAllGlobals(t *testing.T) {
	out, err := run(t, "emulate", "--timezone", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var all map[string]any
	if err := json.Unmarshal([]byte(out), &all); err != nil {
		t.Fatalf("expected JSON output, got %v", err)
	}
	for _, key := range []string{"weather", "batteryPercent", "events", "reminders"} {
		if _, ok := all[key]; !ok {
			t.Fatalf("expected %s in globals", key)
		}
	}
}

func TestEmulateReplaysCaptures(t *testing.T) {
	dir := t.TempDir()
	w := snapshots.NewWriter(dir, 1)
	if err := w.Write(domain.NamespaceResources, []byte(`{"battery":{"percentage":12}}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "emulate", "--from", dir, "--namespace", "battery", "--timezone", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var battery map[string]any
	if err := json.Unmarshal([]byte(out), &battery); err != nil {
		t.Fatalf("expected JSON output, got %v", err)
	}
	if battery["batteryPercent"] != float64(12) {
		t.Fatalf("expected captured battery level, got %v", battery["batteryPercent"])
	}

	if _, err := run(t, "emulate", "--from", t.TempDir()); err == nil {
		t.Fatalf("expected error for empty capture dir")
	}
}

func TestEmulateRejectsBadFlags(t *testing.T) {
	cases := [][]string{
		{"emulate", "--city", "paris"},
		{"emulate", "--units", "kelvin"},
		{"emulate", "--namespace", "nope"},
	}
	for _, args := range cases {
		if _, err := run(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestNormalizeJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	payload, err := emulation.WeatherFixture(emulation.CitySanFrancisco, emulation.UnitsMetric)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	jsonPath := filepath.Join(dir, "weather.json")
	if err := os.WriteFile(jsonPath, payload, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	yamlPath := filepath.Join(dir, "weather.yaml")
	if err := os.WriteFile(yamlPath, []byte("metadata:\n  address:\n    city: Oslo\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "normalize", jsonPath, "--timezone", "UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "San Francisco") {
		t.Fatalf("expected normalized snapshot, got %s", out)
	}

	// A payload missing required sections is rejected rather than defaulted.
	if _, err := run(t, "normalize", yamlPath); err == nil {
		t.Fatalf("expected incomplete YAML payload to be rejected")
	}
}

func TestNormalizeMissingFile(t *testing.T) {
	if _, err := run(t, "normalize", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
