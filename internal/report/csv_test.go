package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"alert-export/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriterRoundTripsSpecialCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	reason := "status is \"CRITICAL\", body mismatch\nsecond line"

	closedAt := int64(1753000600)
	duration := int64(600)
	rows := []models.ReportRow{
		{
			ID:            "alert-1",
			MonitorID:     "m1",
			URL:           "https://example.com/?a=1,b=2",
			Service:       "shop",
			Status:        "CRITICAL",
			Reason:        reason,
			OpenedAt:      1753000000,
			ClosedAt:      &closedAt,
			Duration:      &duration,
			OpenedAtLocal: "2025-07-20 17:26:40 JST",
			ClosedAtLocal: "2025-07-20 17:36:40 JST",
		},
	}

	require.NoError(t, NewCSVWriter().Write(path, rows))

	records := readAll(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, Header, records[0])

	row := records[1]
	assert.Equal(t, reason, row[5], "quoted field must round-trip exactly")
	assert.Equal(t, "https://example.com/?a=1,b=2", row[2])
	assert.Equal(t, "1753000000", row[6])
	assert.Equal(t, "1753000600", row[7])
	assert.Equal(t, "600", row[8])
}

func TestCSVWriterCreatesOutputDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "nested", "export.csv")

	require.NoError(t, NewCSVWriter().Write(path, nil))

	records := readAll(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, Header, records[0])
}

func TestCSVWriterOverwritesPreviousExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")

	require.NoError(t, NewCSVWriter().Write(path, []models.ReportRow{{ID: "old"}}))
	require.NoError(t, NewCSVWriter().Write(path, []models.ReportRow{{ID: "new"}}))

	records := readAll(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[1][0])
}

func TestCSVWriterLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")

	require.NoError(t, NewCSVWriter().Write(path, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "export.csv", entries[0].Name())
}
