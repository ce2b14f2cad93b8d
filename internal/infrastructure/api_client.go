package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/internal/usecase"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// APIError is a non-2xx answer from the dashboard API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// implements domain.DashboardAPI over JSON/HTTP
type APIClient struct {
	client      *http.Client
	baseURL     string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

// creates a new API client; perSecond <= 0 disables rate limiting
func NewAPIClient(baseURL string, timeout time.Duration, perSecond int, logger *logger.Logger, metrics *metrics.Metrics) *APIClient {
	limit := rate.Inf
	burst := 1
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = perSecond
	}

	return &APIClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

func (c *APIClient) GetProspects(ctx context.Context, filters domain.FilterOptions) ([]domain.Prospect, error) {
	path := "/prospects"
	if q := usecase.BuildProspectQuery(filters); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var prospects []domain.Prospect
	if err := c.do(ctx, "prospects", http.MethodGet, path, nil, &prospects); err != nil {
		return nil, err
	}
	if prospects == nil {
		prospects = []domain.Prospect{}
	}
	return prospects, nil
}

func (c *APIClient) GetCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	var campaigns []domain.Campaign
	if err := c.do(ctx, "campaigns", http.MethodGet, "/campaigns", nil, &campaigns); err != nil {
		return nil, err
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	return campaigns, nil
}

func (c *APIClient) UpdateProspectStatus(ctx context.Context, id string, status domain.ProspectStatus) error {
	body := map[string]domain.ProspectStatus{"status": status}
	return c.do(ctx, "prospect_status", http.MethodPatch, "/prospects/"+url.PathEscape(id)+"/status", body, nil)
}

func (c *APIClient) GetOrgSettings(ctx context.Context) (domain.OrgSettings, error) {
	var settings domain.OrgSettings
	if err := c.do(ctx, "settings", http.MethodGet, "/settings/org", nil, &settings); err != nil {
		return domain.OrgSettings{}, err
	}
	return settings, nil
}

func (c *APIClient) SaveOrgSettings(ctx context.Context, settings domain.OrgSettings) (domain.OrgSettings, error) {
	var saved domain.OrgSettings
	if err := c.do(ctx, "settings", http.MethodPost, "/settings/org", settings, &saved); err != nil {
		return domain.OrgSettings{}, err
	}
	if saved.IsZero() {
		saved = settings
	}
	return saved, nil
}

// do sends one JSON request. out is left untouched when the response body is
// empty.
func (c *APIClient) do(ctx context.Context, resource, method, path string, in, out any) error {
	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure(resource, "rate_limit")
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			c.metrics.RecordExternalAPIFailure(resource, "json_marshal")
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(resource, "request_creation")
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := logger.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(resource, "network_error")
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		c.metrics.RecordExternalAPIFailure(resource, "read_body")
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordExternalAPICall(resource, fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			c.metrics.RecordExternalAPIFailure(resource, "json_parse")
			return fmt.Errorf("failed to parse %s response: %w", resource, err)
		}
	}

	c.metrics.RecordExternalAPICall(resource, "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"method":     method,
		"path":       path,
		"duration":   duration,
		"request_id": requestID,
	}).Debug("Dashboard API call succeeded")

	return nil
}
