package storage

import (
	"sync"
	"time"
)

// MockProvider wraps another Provider and lets callers pin the timestamps
// reported by Stat for selected paths. Every other operation is delegated.
// It exists for tests that need deterministic document ordering.
type MockProvider struct {
	Provider
	mu    sync.RWMutex
	times map[string]FileTimes
}

// NewMockProvider wraps inner.
func NewMockProvider(inner Provider) *MockProvider {
	return &MockProvider{Provider: inner, times: make(map[string]FileTimes)}
}

// SetTimes pins both timestamps of path.
func (m *MockProvider) SetTimes(path string, created, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.times[path] = FileTimes{CreatedAt: created, ModifiedAt: modified}
}

// Stat returns pinned times when present, otherwise delegates.
func (m *MockProvider) Stat(path string) (FileTimes, error) {
	m.mu.RLock()
	ft, ok := m.times[path]
	m.mu.RUnlock()
	if ok {
		return ft, nil
	}
	return m.Provider.Stat(path)
}
