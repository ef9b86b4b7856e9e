package store

import (
	"sort"
	"sync"
)

// MemoryStore keeps the flat legacy bindings in memory. Bindings are grouped
// by the section that last wrote them; a key written by two sections belongs
// to the latest writer.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]any
	sections map[string][]string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string]any),
		sections: make(map[string][]string),
	}
}

// Assign writes every binding of a section and records which keys it owns.
func (s *MemoryStore) Assign(section string, bindings map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(bindings))
	for k, v := range bindings {
		s.values[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s.sections[section] = keys
}

// Get retrieves a single binding.
func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// All returns a copy of every binding.
func (s *MemoryStore) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]any, len(s.values))
	for k, v := range s.values {
		result[k] = v
	}
	return result
}

// Section returns a copy of the bindings a section last wrote.
func (s *MemoryStore) Section(section string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, ok := s.sections[section]
	if !ok {
		return nil, false
	}
	result := make(map[string]any, len(keys))
	for _, k := range keys {
		result[k] = s.values[k]
	}
	return result, true
}

// Sections lists the section names written so far.
func (s *MemoryStore) Sections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.sections))
	for name := range s.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
