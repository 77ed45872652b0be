package gorm

import (
	"context"
	"encoding/json"
	"errors"

	"alert-export/internal/export"
	"alert-export/internal/models"

	"gorm.io/gorm"
)

// GormAlertCacheRepository is the AlertCacheRepository implementation backed
// by GORM. The payload is stored as a JSON blob keyed by the export window.
type GormAlertCacheRepository struct {
	db *gorm.DB
}

func NewGormAlertCacheRepository(db *gorm.DB) (export.AlertCacheRepository, error) {
	return &GormAlertCacheRepository{db: db}, nil
}

func (r *GormAlertCacheRepository) Find(ctx context.Context, windowKey string) ([]models.Alert, bool, error) {
	var entry models.AlertCacheEntry
	err := r.db.WithContext(ctx).Where("window_key = ?", windowKey).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var alerts []models.Alert
	if err := json.Unmarshal([]byte(entry.Payload), &alerts); err != nil {
		return nil, false, err
	}
	return alerts, true, nil
}

func (r *GormAlertCacheRepository) Store(ctx context.Context, windowKey, runID string, alerts []models.Alert) error {
	payload, err := json.Marshal(alerts)
	if err != nil {
		return err
	}
	entry := models.AlertCacheEntry{
		WindowKey: windowKey,
		RunID:     runID,
		Payload:   string(payload),
	}
	// Re-running the same window replaces the stored payload.
	return r.db.WithContext(ctx).
		Where("window_key = ?", windowKey).
		Assign(models.AlertCacheEntry{RunID: runID, Payload: string(payload)}).
		FirstOrCreate(&entry).Error
}
