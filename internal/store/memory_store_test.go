package store

import "testing"

func TestMemoryStoreAssignAndGet(t *testing.T) {
	s := NewMemoryStore()

	s.Assign("battery", map[string]any{"batteryPercent": 80.0, "ramFree": 12.0})

	if got := len(s.All()); got != 2 {
		t.Fatalf("expected 2 bindings, got %d", got)
	}
	v, ok := s.Get("batteryPercent")
	if !ok {
		t.Fatalf("expected to find batteryPercent")
	}
	if v != 80.0 {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("expected missing key to return false")
	}
	if _, ok := s.Section("missing"); ok {
		t.Fatalf("expected missing section to return false")
	}
}

func TestMemoryStoreLastWriterWins(t *testing.T) {
	s := NewMemoryStore()
	s.Assign("system", map[string]any{"deviceName": "old"})
	s.Assign("system", map[string]any{"deviceName": "new"})

	v, _ := s.Get("deviceName")
	if v != "new" {
		t.Fatalf("expected latest write to win, got %v", v)
	}

	s.Assign("statusbar", map[string]any{"bluetooth": true})
	if got := s.Sections(); len(got) != 2 || got[0] != "statusbar" || got[1] != "system" {
		t.Fatalf("expected sorted sections, got %v", got)
	}
}

func TestMemoryStoreAllReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.Assign("music", map[string]any{"title": "original"})

	all := s.All()
	all["title"] = "mutated"

	section, ok := s.Section("music")
	if !ok {
		t.Fatalf("expected to find section")
	}
	if section["title"] != "original" {
		t.Fatalf("expected store to remain unchanged, got %v", section["title"])
	}
}
