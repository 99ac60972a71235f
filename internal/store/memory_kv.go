package store

import (
	"context"
	"errors"
	"path"
	"sort"
	"sync"
	"time"
)

// ErrQuotaExceeded is returned when a write would push the store past its byte quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryKV is an in-process KV used when Redis is disabled. Like browser
// storage it can be given a byte quota; keys and values both count.
type MemoryKV struct {
	mu      sync.Mutex
	items   map[string]memoryItem
	quota   int
	used    int
	nowFunc func() time.Time
}

type memoryItem struct {
	value   string
	expires time.Time
}

// NewMemoryKV creates a store; quota <= 0 means unlimited.
func NewMemoryKV(quota int) *MemoryKV {
	return &MemoryKV{
		items:   map[string]memoryItem{},
		quota:   quota,
		nowFunc: time.Now,
	}
}

var _ KV = (*MemoryKV)(nil)

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.live(key)
	if !ok {
		return "", ErrMiss
	}
	return item.value, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(key) + len(value)
	if old, ok := m.items[key]; ok {
		used -= len(key) + len(old.value)
	}
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}

	item := memoryItem{value: value}
	if ttl > 0 {
		item.expires = m.nowFunc().Add(ttl)
	}
	m.items[key] = item
	m.used = used
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		m.remove(key)
	}
	return nil
}

// ScanKeys matches with path.Match, which accepts the same *, ? and [...]
// forms as Redis for keys without a slash.
func (m *MemoryKV) ScanKeys(_ context.Context, pattern string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := []string{}
	for key := range m.items {
		if _, ok := m.live(key); !ok {
			continue
		}
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Used reports the bytes currently held.
func (m *MemoryKV) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

func (m *MemoryKV) live(key string) (memoryItem, bool) {
	item, ok := m.items[key]
	if !ok {
		return memoryItem{}, false
	}
	if !item.expires.IsZero() && !m.nowFunc().Before(item.expires) {
		m.remove(key)
		return memoryItem{}, false
	}
	return item, true
}

func (m *MemoryKV) remove(key string) {
	if old, ok := m.items[key]; ok {
		m.used -= len(key) + len(old.value)
		delete(m.items, key)
	}
}
