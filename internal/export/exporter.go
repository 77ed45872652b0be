package export

import (
	"context"
	"fmt"
	"log"
	"time"

	"alert-export/internal/models"

	"github.com/google/uuid"
)

const localTimeLayout = "2006-01-02 15:04:05 MST"

// Exporter runs one export: it resolves the previous-month window, fetches
// (or reuses the cached) alert history, joins alerts with their monitors and
// writes the external ones to the CSV report.
type Exporter struct {
	client     MonitoringClient
	cache      AlertCacheRepository
	writer     ReportWriter
	loc        *time.Location
	outputPath string
	runID      string

	// Clock overrides the current time in tests; nil means time.Now.
	Clock func() time.Time
}

func NewExporter(client MonitoringClient, cache AlertCacheRepository, writer ReportWriter, loc *time.Location, outputPath string) *Exporter {
	return &Exporter{
		client:     client,
		cache:      cache,
		writer:     writer,
		loc:        loc,
		outputPath: outputPath,
		runID:      uuid.NewString(),
	}
}

func (e *Exporter) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

// Run performs the whole export. Any error aborts before the output file is
// touched.
func (e *Exporter) Run(ctx context.Context) error {
	from, to := PreviousMonth(e.now(), e.loc)
	log.Printf("[run %s] export window: %s to %s", e.runID, from.Format(time.RFC3339), to.Format(time.RFC3339))

	alerts, err := e.fetchAlerts(ctx, from, to)
	if err != nil {
		return err
	}

	monitors, err := e.client.Monitors(ctx)
	if err != nil {
		return fmt.Errorf("fetch monitors: %w", err)
	}

	rows := buildRows(alerts, monitors, from, to, e.loc)
	log.Printf("[run %s] total external alerts: %d", e.runID, len(rows))

	if err := e.writer.Write(e.outputPath, rows); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Printf("[run %s] report written to %s", e.runID, e.outputPath)
	return nil
}

func (e *Exporter) fetchAlerts(ctx context.Context, from, to time.Time) ([]models.Alert, error) {
	key := windowKey(from, to)

	cached, ok, err := e.cache.Find(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read alert cache: %w", err)
	}
	if ok {
		log.Printf("[run %s] using cached alerts for window %s", e.runID, key)
		return cached, nil
	}

	alerts, err := e.client.Alerts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}
	if err := e.cache.Store(ctx, key, e.runID, alerts); err != nil {
		return nil, fmt.Errorf("store alert cache: %w", err)
	}
	return alerts, nil
}

// buildRows keeps external alerts opened inside the window, in arrival
// order, and joins each with its monitor. An alert whose monitor no longer
// exists keeps empty url/service fields rather than being dropped.
func buildRows(alerts []models.Alert, monitors []models.Monitor, from, to time.Time, loc *time.Location) []models.ReportRow {
	byID := make(map[string]models.Monitor, len(monitors))
	for _, m := range monitors {
		byID[m.ID] = m
	}

	rows := make([]models.ReportRow, 0, len(alerts))
	for _, a := range alerts {
		if a.Type != models.MonitorTypeExternal {
			continue
		}
		if a.OpenedAt < from.Unix() || a.OpenedAt > to.Unix() {
			continue
		}

		monitor := byID[a.MonitorID]
		row := models.ReportRow{
			ID:            a.ID,
			MonitorID:     a.MonitorID,
			URL:           monitor.URL,
			Service:       monitor.Service,
			Status:        string(a.Status),
			Reason:        a.Reason,
			OpenedAt:      a.OpenedAt,
			ClosedAt:      a.ClosedAt,
			OpenedAtLocal: time.Unix(a.OpenedAt, 0).In(loc).Format(localTimeLayout),
		}
		if d, closed := a.Duration(); closed {
			secs := int64(d / time.Second)
			row.Duration = &secs
			row.ClosedAtLocal = time.Unix(*a.ClosedAt, 0).In(loc).Format(localTimeLayout)
		}
		rows = append(rows, row)
	}
	return rows
}
