// ABOUTME: Shared test fakes for the core engines
// ABOUTME: Fake LLM provider, embedder, and in-memory KV backing the real stores
package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/harper/bookscout/internal/charm"
	"github.com/harper/bookscout/internal/models"
)

// fakeModel satisfies VisionLanguageModel with canned responses
type fakeModel struct {
	mu sync.Mutex

	searchText    string
	searchSources []models.ResearchSource
	searchErr     error
	searchPrompts []string

	// structuredJSON is unmarshalled into out on StructuredCompletion
	structuredJSON    string
	structuredErr     error
	structuredPrompts []string

	visionErr     error
	visionPrompts []string
}

func (f *fakeModel) SearchCompletion(prompt string) (string, []models.ResearchSource, error) {
	f.mu.Lock()
	f.searchPrompts = append(f.searchPrompts, prompt)
	f.mu.Unlock()

	if f.searchErr != nil {
		return "", nil, f.searchErr
	}
	return f.searchText, f.searchSources, nil
}

func (f *fakeModel) StructuredCompletion(name, prompt string, out interface{}) error {
	f.mu.Lock()
	f.structuredPrompts = append(f.structuredPrompts, prompt)
	f.mu.Unlock()

	if f.structuredErr != nil {
		return f.structuredErr
	}
	if f.structuredJSON == "" {
		return nil
	}
	return json.Unmarshal([]byte(f.structuredJSON), out)
}

func (f *fakeModel) StructuredVisionCompletion(name, prompt string, imageData []byte, mimeType string, out interface{}) error {
	f.mu.Lock()
	f.visionPrompts = append(f.visionPrompts, prompt)
	f.mu.Unlock()

	if f.visionErr != nil {
		return f.visionErr
	}
	if f.structuredJSON == "" {
		return nil
	}
	return json.Unmarshal([]byte(f.structuredJSON), out)
}

func (f *fakeModel) lastSearchPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.searchPrompts) == 0 {
		return ""
	}
	return f.searchPrompts[len(f.searchPrompts)-1]
}

func (f *fakeModel) lastStructuredPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.structuredPrompts) == 0 {
		return ""
	}
	return f.structuredPrompts[len(f.structuredPrompts)-1]
}

// fakeEmbedder returns a fixed-dimension vector, or an error per call count
type fakeEmbedder struct {
	mu        sync.Mutex
	dimension int
	err       error
	calls     int
}

func (f *fakeEmbedder) GenerateEmbedding(text string) ([]float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	v := make([]float64, f.dimension)
	if f.dimension > 0 {
		v[0] = 1.0
	}
	return v, nil
}

// memKV is a map-backed stand-in for the charm client. failNthTaskSet, when
// positive, fails that one SetJSON call (1-based) on task-prefixed keys.
type memKV struct {
	mu             sync.Mutex
	data           map[string][]byte
	failNthTaskSet int
	taskSetCalls   int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) SetJSON(key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.HasPrefix(key, charm.TaskPrefix) {
		m.taskSetCalls++
		if m.failNthTaskSet > 0 && m.taskSetCalls == m.failNthTaskSet {
			return fmt.Errorf("simulated write failure for %s", key)
		}
	}

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
