// Package upstream reads customer bookings from the salon's REST API.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/wolfman30/salon-portal/internal/bookings"
	"github.com/wolfman30/salon-portal/internal/calendar"
	"github.com/wolfman30/salon-portal/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// ErrUnauthorized is returned when the API rejects the configured token.
var ErrUnauthorized = errors.New("upstream: unauthorized")

// APIError is a non-2xx response other than 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Message)
}

// Client wraps the salon API calls the portal calendar needs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *logging.Logger
}

// NewClient constructs an API client. token is sent as a bearer token on
// every request when non-empty.
func NewClient(baseURL, token string, timeout time.Duration, logger *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:      token,
		logger:     logger,
	}
}

// SourceName labels upstream latency metrics.
func (c *Client) SourceName() string { return "upstream" }

// ListMonth implements bookings.Source using GET customer/calendar?month=YYYY-MM.
func (c *Client) ListMonth(ctx context.Context, customerID string, month calendar.Month) ([]bookings.Day, error) {
	q := url.Values{}
	q.Set("month", month.String())
	if customerID != "" {
		q.Set("customer_id", customerID)
	}

	var payload calendarPayload
	if err := c.doJSON(ctx, http.MethodGet, "/customer/calendar?"+q.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("%w: customer calendar: %w", bookings.ErrSourceUnavailable, err)
	}

	dates := make([]string, 0, len(payload))
	for date := range payload {
		if month.Contains(date) {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	days := make([]bookings.Day, 0, len(dates))
	for _, date := range dates {
		raw := payload[date]
		day := bookings.NewDay(date)
		for _, rb := range raw.Confirmed {
			day.Add(rb.toBooking(customerID, date, bookings.StatusConfirmed))
		}
		for _, rb := range raw.Completed {
			day.Add(rb.toBooking(customerID, date, bookings.StatusCompleted))
		}
		for _, rb := range raw.Cancelled {
			day.Add(rb.toBooking(customerID, date, bookings.StatusCancelled))
		}
		days = append(days, day)
	}
	return days, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("salon API rejected token", "path", path)
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
		c.logger.Warn("salon API non-2xx response", "status", resp.StatusCode, "path", path, "message", apiErr.Message)
		return apiErr
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts {"message": "..."} from an error body.
func errorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Message) != "" {
		return parsed.Message
	}
	return "request failed"
}
