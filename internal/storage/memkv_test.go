// ABOUTME: In-memory KV fake for store tests
// ABOUTME: Mirrors the charm client's JSON value and not-found semantics
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/harper/bookscout/internal/charm"
)

// memKV is a map-backed stand-in for the charm client
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) SetJSON(key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = data
	return nil
}

func (m *memKV) GetJSON(key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[key]
	if !ok {
		return fmt.Errorf("%w: %s", charm.ErrNotFound, key)
	}
	return json.Unmarshal(data, dest)
}

func (m *memKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *memKV) ListKeys(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *memKV) count(prefix string) int {
	keys, _ := m.ListKeys(prefix)
	return len(keys)
}
