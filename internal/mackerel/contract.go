package mackerel

import "alert-export/internal/models"

// Response envelopes of the Mackerel v0 REST API. The list fields are
// pointers so a body that parses but lacks the envelope key is
// distinguishable from an empty list and can fail the run.

type monitorsResponse struct {
	Monitors *[]models.Monitor `json:"monitors"`
}

type alertsResponse struct {
	Alerts *[]models.Alert `json:"alerts"`
	// NextID is the pagination cursor; absent on the last page.
	NextID string `json:"nextId,omitempty"`
}
