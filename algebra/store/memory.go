// Package store provides in-memory CatalogStore and HistoryStore implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/dimensional/algebra"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	catalogs map[string]algebra.CatalogRecord
	history  []algebra.ConversionRecord
	seen     map[string]bool
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		catalogs: make(map[string]algebra.CatalogRecord),
		seen:     make(map[string]bool),
		now:      time.Now,
	}
}

// SaveCatalog inserts or replaces a catalog, bumping its version.
func (m *Memory) SaveCatalog(_ context.Context, rec algebra.CatalogRecord) (algebra.CatalogRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	if existing, ok := m.catalogs[rec.Name]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		rec.Version = existing.Version + 1
	} else {
		if rec.ID == "" {
			rec.ID = rec.Name
		}
		rec.CreatedAt = now
		rec.Version = 1
	}
	rec.UpdatedAt = now
	rec.Body = append([]byte(nil), rec.Body...)
	m.catalogs[rec.Name] = rec
	return rec, nil
}

func (m *Memory) GetCatalog(_ context.Context, name string) (algebra.CatalogRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.catalogs[name]
	if !ok {
		return algebra.CatalogRecord{}, algebra.ErrCatalogNotFound
	}
	return rec, nil
}

func (m *Memory) ListCatalogs(_ context.Context) ([]algebra.CatalogRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]algebra.CatalogRecord, 0, len(m.catalogs))
	for _, rec := range m.catalogs {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *Memory) DeleteCatalog(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.catalogs[name]; !ok {
		return algebra.ErrCatalogNotFound
	}
	delete(m.catalogs, name)
	return nil
}

// AppendConversion adds a record. Append-only.
func (m *Memory) AppendConversion(_ context.Context, rec algebra.ConversionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID != "" && m.seen[rec.ID] {
		return algebra.ErrDuplicateRecordID
	}
	if rec.At.IsZero() {
		rec.At = m.now().UTC()
	}
	m.history = append(m.history, rec)
	if rec.ID != "" {
		m.seen[rec.ID] = true
	}
	return nil
}

func (m *Memory) RecentConversions(_ context.Context, limit int) ([]algebra.ConversionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.history) {
		limit = len(m.history)
	}
	result := make([]algebra.ConversionRecord, 0, limit)
	for i := len(m.history) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.history[i])
	}
	return result, nil
}
