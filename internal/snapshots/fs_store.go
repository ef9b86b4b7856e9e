package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

// ErrNoCapture is returned when a namespace has nothing on disk.
var ErrNoCapture = errors.New("no capture")

// FSStore reads captures written by Writer.
type FSStore struct {
	basePath string
}

// NewFSStore constructs a store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// Latest returns the newest capture for ns.
func (s *FSStore) Latest(ns domain.Namespace) (json.RawMessage, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	stamps, err := listCaptures(s.basePath, ns)
	if err != nil {
		return nil, err
	}
	if len(stamps) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoCapture, ns)
	}
	return s.Load(ns, stamps[len(stamps)-1])
}

// Load returns one capture by stamp.
func (s *FSStore) Load(ns domain.Namespace, stamp string) (json.RawMessage, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	if stamp == "" {
		return nil, errors.New("capture stamp required")
	}
	data, err := os.ReadFile(CapturePath(s.basePath, ns, stamp))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w for %s at %s", ErrNoCapture, ns, stamp)
		}
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("capture %s/%s: invalid JSON", ns, stamp)
	}
	return data, nil
}

// Captured lists the namespaces with at least one capture, in registration order.
func (s *FSStore) Captured() ([]domain.Namespace, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	var out []domain.Namespace
	for _, ns := range domain.Namespaces() {
		stamps, err := listCaptures(s.basePath, ns)
		if err != nil {
			return nil, err
		}
		if len(stamps) > 0 {
			out = append(out, ns)
		}
	}
	return out, nil
}

// Manifest reads the manifest written alongside the captures.
func (s *FSStore) Manifest() (Manifest, error) {
	if s == nil {
		return Manifest{}, errors.New("snapshot store not configured")
	}
	return readManifest(filepath.Join(s.basePath, manifestName), 0)
}
