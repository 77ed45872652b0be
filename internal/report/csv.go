package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"alert-export/internal/models"
)

// Header names the CSV columns, one per ReportRow field.
var Header = []string{
	"id",
	"monitorId",
	"url",
	"service",
	"status",
	"reason",
	"openedAt",
	"closedAt",
	"duration",
	"openedAtLocal",
	"closedAtLocal",
}

// CSVWriter writes the report as UTF-8, comma-delimited CSV. The file is
// written to a temp path in the destination directory and renamed on
// success, so a failed run never leaves a partial file behind.
type CSVWriter struct{}

func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

func (w *CSVWriter) Write(path string, rows []models.ReportRow) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := writeRecords(tmp, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeRecords(f *os.File, rows []models.ReportRow) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(r models.ReportRow) []string {
	closedAt := ""
	if r.ClosedAt != nil {
		closedAt = strconv.FormatInt(*r.ClosedAt, 10)
	}
	duration := ""
	if r.Duration != nil {
		duration = strconv.FormatInt(*r.Duration, 10)
	}
	return []string{
		r.ID,
		r.MonitorID,
		r.URL,
		r.Service,
		r.Status,
		r.Reason,
		strconv.FormatInt(r.OpenedAt, 10),
		closedAt,
		duration,
		r.OpenedAtLocal,
		r.ClosedAtLocal,
	}
}
