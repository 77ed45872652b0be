package mackerel

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"alert-export/internal/models"
)

// alertPageSize is the maximum page size the alerts endpoint accepts.
const alertPageSize = 100

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	Endpoint   string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mackerel: %s returned status %d", e.Endpoint, e.StatusCode)
}

// Client talks to the Mackerel v0 REST API. Authentication uses the
// X-Api-Key header on every request.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Monitors returns all monitor definitions of the organization.
func (c *Client) Monitors(ctx context.Context) ([]models.Monitor, error) {
	var res monitorsResponse
	if err := c.get(ctx, "/api/v0/monitors", nil, &res); err != nil {
		return nil, err
	}
	if res.Monitors == nil {
		return nil, fmt.Errorf("unexpected /api/v0/monitors response: missing %q field", "monitors")
	}
	return *res.Monitors, nil
}

// Alerts returns every alert (closed ones included) that the API reports for
// the [from, to] range, following the nextId cursor until the last page. The
// result keeps arrival order: page order first, in-page order within.
func (c *Client) Alerts(ctx context.Context, from, to time.Time) ([]models.Alert, error) {
	query := url.Values{}
	query.Set("withClosed", "true")
	query.Set("from", strconv.FormatInt(from.Unix(), 10))
	query.Set("to", strconv.FormatInt(to.Unix(), 10))
	query.Set("limit", strconv.Itoa(alertPageSize))

	var all []models.Alert
	for page := 1; ; page++ {
		var res alertsResponse
		if err := c.get(ctx, "/api/v0/alerts", query, &res); err != nil {
			return nil, err
		}
		if res.Alerts == nil {
			return nil, fmt.Errorf("unexpected /api/v0/alerts response: missing %q field", "alerts")
		}
		alerts := *res.Alerts
		all = append(all, alerts...)
		log.Printf("[page %d] fetched %d alerts", page, len(alerts))

		// The API pages from newest to oldest, so once a page reaches back
		// past the window start there is nothing left to fetch.
		if res.NextID == "" || len(alerts) == 0 {
			break
		}
		if alerts[len(alerts)-1].OpenedAt < from.Unix() {
			break
		}
		query.Set("nextId", res.NextID)
	}
	return all, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Endpoint: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
