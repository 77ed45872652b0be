package models

import (
	"time"

	"gorm.io/gorm"
)

// AlertStatus is the state Mackerel reports for an alert.
type AlertStatus string

const (
	StatusOK       AlertStatus = "OK"
	StatusWarning  AlertStatus = "WARNING"
	StatusCritical AlertStatus = "CRITICAL"
	StatusUnknown  AlertStatus = "UNKNOWN"
)

// MonitorTypeExternal marks synthetic (URL) monitors; all other monitor
// types fall outside the export.
const MonitorTypeExternal = "external"

// Alert is one historical alert occurrence as returned by the Mackerel v0
// alerts API. Timestamps are epoch seconds; ClosedAt is nil while the alert
// is still open.
type Alert struct {
	ID        string      `json:"id"`
	Status    AlertStatus `json:"status"`
	MonitorID string      `json:"monitorId"`
	Type      string      `json:"type"`
	Reason    string      `json:"reason,omitempty"`
	OpenedAt  int64       `json:"openedAt"`
	ClosedAt  *int64      `json:"closedAt,omitempty"`
	Value     float64     `json:"value,omitempty"`
}

// Duration returns how long the alert stayed open, and false while it has
// no close time yet.
func (a Alert) Duration() (time.Duration, bool) {
	if a.ClosedAt == nil {
		return 0, false
	}
	return time.Duration(*a.ClosedAt-a.OpenedAt) * time.Second, true
}

// Monitor is the monitor definition an alert points at. URL and Service are
// only populated for external monitors.
type Monitor struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Service string `json:"service,omitempty"`
	Memo    string `json:"memo,omitempty"`
}

// ReportRow is the flat CSV projection of an alert joined with its monitor.
// ClosedAt, Duration and ClosedAtLocal stay nil/empty for alerts without a
// close time.
type ReportRow struct {
	ID            string
	MonitorID     string
	URL           string
	Service       string
	Status        string
	Reason        string
	OpenedAt      int64
	ClosedAt      *int64
	Duration      *int64 // seconds
	OpenedAtLocal string
	ClosedAtLocal string
}

// AlertCacheEntry stores the raw alert payload fetched for one export
// window, so a re-run for the same month skips the paginated fetch.
type AlertCacheEntry struct {
	gorm.Model
	WindowKey string `gorm:"uniqueIndex;not null"`
	RunID     string `gorm:"not null"`
	Payload   string `gorm:"type:text;not null"` // JSON-encoded []Alert
}
