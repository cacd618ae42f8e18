// Package store provides in-memory profile.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/region-engine/profile"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	profiles map[string]profile.Profile
}

func NewMemory() *Memory {
	return &Memory{profiles: make(map[string]profile.Profile)}
}

// Save inserts p. Names are unique.
func (m *Memory) Save(_ context.Context, p profile.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[p.Name]; ok {
		return profile.ErrDuplicateProfile
	}
	m.profiles[p.Name] = p
	return nil
}

func (m *Memory) Get(_ context.Context, name string) (profile.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[name]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

// List returns profiles sorted by name.
func (m *Memory) List(_ context.Context) ([]profile.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]profile.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[name]; !ok {
		return profile.ErrProfileNotFound
	}
	delete(m.profiles, name)
	return nil
}

var _ profile.Store = (*Memory)(nil)
