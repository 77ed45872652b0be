package mock

import (
	"context"
	"errors"
	"time"

	"alert-export/internal/models"
)

// MonitoringClientMock serves canned monitor and alert data in place of the
// real API client and records how often it was called.
type MonitoringClientMock struct {
	MonitorsData []models.Monitor
	// AlertPages is returned concatenated in order, the way the real client
	// concatenates API pages.
	AlertPages [][]models.Alert

	// FailNextCall makes the next call return an error, for testing the
	// abort-without-output paths.
	FailNextCall bool

	MonitorCalls int
	AlertCalls   int
}

func NewMonitoringClientMock() *MonitoringClientMock {
	return &MonitoringClientMock{}
}

func (m *MonitoringClientMock) Monitors(ctx context.Context) ([]models.Monitor, error) {
	m.MonitorCalls++
	if m.FailNextCall {
		m.FailNextCall = false
		return nil, errors.New("mock monitoring client failed")
	}
	return m.MonitorsData, nil
}

func (m *MonitoringClientMock) Alerts(ctx context.Context, from, to time.Time) ([]models.Alert, error) {
	m.AlertCalls++
	if m.FailNextCall {
		m.FailNextCall = false
		return nil, errors.New("mock monitoring client failed")
	}
	var all []models.Alert
	for _, page := range m.AlertPages {
		all = append(all, page...)
	}
	return all, nil
}
