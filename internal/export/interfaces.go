package export

import (
	"context"
	"time"

	"alert-export/internal/models"
)

// MonitoringClient fetches alert history and monitor definitions from the
// monitoring provider.
type MonitoringClient interface {
	Monitors(ctx context.Context) ([]models.Monitor, error)
	Alerts(ctx context.Context, from, to time.Time) ([]models.Alert, error)
}

// AlertCacheRepository stores the fetched alert payload per export window.
type AlertCacheRepository interface {
	Find(ctx context.Context, windowKey string) ([]models.Alert, bool, error)
	Store(ctx context.Context, windowKey, runID string, alerts []models.Alert) error
}

// ReportWriter serializes the projected rows to the output file.
type ReportWriter interface {
	Write(path string, rows []models.ReportRow) error
}
