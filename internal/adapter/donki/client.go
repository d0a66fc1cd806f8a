package donki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
	"github.com/couchcryptid/solar-flare-service/internal/observability"
)

// DefaultBaseURL is the public NASA DONKI API root.
const DefaultBaseURL = "https://api.nasa.gov/DONKI"

// maxErrorBody caps how much of a failed response body ends up in errors.
const maxErrorBody = 512

// Client fetches solar flare records from the DONKI FLR endpoint.
// It implements viewer.Fetcher.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a DONKI client.
func NewClient(baseURL, apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchFlares lists the flares that began within r. An empty result is not
// an error. Non-2xx responses return *domain.UpstreamStatusError.
func (c *Client) FetchFlares(ctx context.Context, r domain.DateRange) ([]domain.FlareRecord, error) {
	params := url.Values{
		"startDate": {r.StartDate()},
		"endDate":   {r.EndDate()},
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	fullURL := c.baseURL + "/FLR?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.APIRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("flare request: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.APIRequests.WithLabelValues(statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.UpstreamStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// DONKI answers an empty range with an empty body rather than [].
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []domain.FlareRecord{}, nil
	}

	var records []domain.FlareRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if records == nil {
		records = []domain.FlareRecord{}
	}

	c.logger.Debug("donki flares fetched",
		"range", r.String(),
		"count", len(records),
		"duration", time.Since(start),
	)
	return records, nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
