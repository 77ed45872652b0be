package inmemory

import (
	"context"
	"sync"

	"alert-export/internal/export"
	"alert-export/internal/models"
)

// MockAlertCacheRepository is an in-memory AlertCacheRepository for tests.
type MockAlertCacheRepository struct {
	mu      sync.RWMutex
	entries map[string][]models.Alert

	FindCalls  int
	StoreCalls int
}

func NewMockAlertCacheRepository() *MockAlertCacheRepository {
	return &MockAlertCacheRepository{
		entries: make(map[string][]models.Alert),
	}
}

var _ export.AlertCacheRepository = (*MockAlertCacheRepository)(nil)

func (m *MockAlertCacheRepository) Find(ctx context.Context, windowKey string) ([]models.Alert, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindCalls++
	alerts, ok := m.entries[windowKey]
	return alerts, ok, nil
}

func (m *MockAlertCacheRepository) Store(ctx context.Context, windowKey, runID string, alerts []models.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StoreCalls++
	m.entries[windowKey] = alerts
	return nil
}
