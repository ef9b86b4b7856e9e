// Package snapshots captures raw host payloads to disk so they can be
// replayed later through the same normalization path as live updates.
package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

const defaultRetention = 20

// Writer persists captures and the manifest, keeping the newest captures per namespace.
type Writer struct {
	basePath  string
	retention int
	now       func() time.Time

	mu sync.Mutex
}

// NewWriter constructs a writer rooted at basePath keeping retention captures per namespace.
func NewWriter(basePath string, retention int) *Writer {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Writer{
		basePath:  basePath,
		retention: retention,
		now:       time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Write stores raw as the newest capture for ns. A payload identical to the
// newest capture only refreshes the manifest.
func (w *Writer) Write(ns domain.Namespace, raw json.RawMessage) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if !ns.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownNamespace, ns)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("capture %s: %w", ns, err)
	}
	data := buf.Bytes()

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now().UTC()
	stamps, err := listCaptures(w.basePath, ns)
	if err != nil {
		return err
	}
	if n := len(stamps); n > 0 {
		existing, err := os.ReadFile(CapturePath(w.basePath, ns, stamps[n-1]))
		if err == nil && bytes.Equal(existing, data) {
			return w.updateManifest(ns, stamps, now)
		}
	}

	stamp := now.Format(stampLayout)
	target := CapturePath(w.basePath, ns, stamp)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	if !containsStamp(stamps, stamp) {
		stamps = append(stamps, stamp)
		sort.Strings(stamps)
	}
	return w.updateManifest(ns, w.prune(ns, stamps), now)
}

func (w *Writer) updateManifest(ns domain.Namespace, stamps []string, now time.Time) error {
	m, _ := readManifest(filepath.Join(w.basePath, manifestName), w.retention)
	m.Retention.Captures = w.retention
	m.Namespaces[string(ns)] = NamespaceMeta{
		Captures:     stamps,
		LastCaptured: now,
	}
	return writeManifest(w.basePath, m, now)
}

// prune removes all but the newest retention captures. Stamps must be sorted.
func (w *Writer) prune(ns domain.Namespace, stamps []string) []string {
	if len(stamps) <= w.retention {
		return stamps
	}
	drop := len(stamps) - w.retention
	for _, stamp := range stamps[:drop] {
		_ = os.Remove(CapturePath(w.basePath, ns, stamp))
	}
	return append([]string(nil), stamps[drop:]...)
}

func containsStamp(stamps []string, stamp string) bool {
	for _, s := range stamps {
		if s == stamp {
			return true
		}
	}
	return false
}

// listCaptures returns the capture stamps for ns in ascending order.
func listCaptures(basePath string, ns domain.Namespace) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(basePath, string(ns)))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	stamps := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		stamps = append(stamps, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(stamps)
	return stamps, nil
}
