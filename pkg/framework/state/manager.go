// Package state keeps in-memory preset snapshots of a control vector.
package state

import (
	"fmt"
	"slices"
	"sync"

	"github.com/justyntemme/vst2go/pkg/framework/param"
)

// Manager stores named snapshots for a control vector of fixed length.
// It is safe for concurrent use from control threads.
type Manager struct {
	mu        sync.RWMutex
	size      int
	snapshots map[string]param.Preset
	order     []string
}

// NewManager creates a manager for vectors of size values
func NewManager(size int) *Manager {
	return &Manager{
		size:      size,
		snapshots: make(map[string]param.Preset),
	}
}

// Size returns the vector length every snapshot must have
func (m *Manager) Size() int {
	return m.size
}

// Save stores a copy of values under name, replacing any snapshot with
// the same name, and returns it.
func (m *Manager) Save(name string, values []float32) (param.Preset, error) {
	if len(values) != m.size {
		return param.Preset{}, fmt.Errorf("snapshot %q: %d values, want %d", name, len(values), m.size)
	}
	p := param.Preset{Name: name, Values: slices.Clone(values)}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[name]; !ok {
		m.order = append(m.order, name)
	}
	m.snapshots[name] = p
	return p.Clone(), nil
}

// Get returns a copy of the named snapshot
func (m *Manager) Get(name string) (param.Preset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.snapshots[name]
	if !ok {
		return param.Preset{}, false
	}
	return p.Clone(), true
}

// Delete removes the named snapshot
func (m *Manager) Delete(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[name]; !ok {
		return false
	}
	delete(m.snapshots, name)
	m.order = slices.DeleteFunc(m.order, func(n string) bool { return n == name })
	return true
}

// Names lists snapshots in the order they were first saved
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Apply copies p into dst after checking its length.
func (m *Manager) Apply(p param.Preset, dst []float32) error {
	if len(p.Values) != m.size {
		return fmt.Errorf("preset %q: %d values, want %d", p.Name, len(p.Values), m.size)
	}
	if len(dst) < m.size {
		return fmt.Errorf("preset %q: destination holds %d values, want %d", p.Name, len(dst), m.size)
	}
	copy(dst, p.Values)
	return nil
}
