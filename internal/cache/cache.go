// Package cache implements the last-known-good value store used to mask
// sensor dropouts. A glitchy zero from a gauge must not zero out a derived
// quantity that physically persists between readings, so parsers substitute
// the most recent valid value instead.
package cache

import "sync"

// Store is the stale-value cache consulted and updated by the per-station
// parsers. Values live for the process lifetime: they are overwritten, never
// expired. A nil Get means no valid value has been observed or seeded yet.
type Store interface {
	Get(stationID, param string) *float64
	Set(stationID, param string, value float64)
	Seed(stationID, param string, value *float64)
}

type key struct {
	station string
	param   string
}

// Memory is the in-process Store implementation. Stations poll on independent
// timers, so the map is guarded even though each station only ever touches
// its own keys.
type Memory struct {
	mu     sync.RWMutex
	values map[key]float64
}

// NewMemory returns an empty cache.
func NewMemory() *Memory {
	return &Memory{values: make(map[key]float64)}
}

func (m *Memory) Get(stationID, param string) *float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key{stationID, param}]
	if !ok {
		return nil
	}
	return &v
}

func (m *Memory) Set(stationID, param string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key{stationID, param}] = value
}

// Seed installs a historical baseline. A nil value leaves the entry absent so
// the first fresh observation becomes the baseline.
func (m *Memory) Seed(stationID, param string, value *float64) {
	if value == nil {
		return
	}
	m.Set(stationID, param, *value)
}
