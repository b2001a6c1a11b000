// Package api talks to the PesaFlow REST endpoints the dashboard pipeline
// consumes: aggregate counters, the unread-notification count, and paginated
// list fragments.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// StatsPath is the dashboard counters endpoint.
	StatsPath = "/api/v1/dashboard/stats/"
	// UnreadCountPath is the unread-notification counter endpoint.
	UnreadCountPath = "/api/v1/notifications/unread-count/"
)

// StatsSnapshot carries the aggregate counters shown on the dashboard.
// Fields absent from the payload stay zero.
type StatsSnapshot struct {
	TotalCustomers    int     `json:"total_customers"`
	TotalRevenue      float64 `json:"total_revenue"`
	SuccessRate       float64 `json:"success_rate"`
	PendingInvoices   int     `json:"pending_invoices"`
	CompletedPayments int     `json:"completed_payments,omitempty"`
	FailedPayments    int     `json:"failed_payments,omitempty"`
}

// PageFragment is one page of a server-rendered list. An empty HTML field
// means the endpoint has no more rows to give.
type PageFragment struct {
	HTML    string `json:"html,omitempty"`
	HasNext bool   `json:"has_next,omitempty"`
}

// Client is the read surface the dashboard components poll.
type Client interface {
	DashboardStats(ctx context.Context) (StatsSnapshot, error)
	UnreadCount(ctx context.Context) (int, error)
	LoadMore(ctx context.Context, listURL string, page int) (PageFragment, error)
}

// HTTPConfig configures the HTTP client.
type HTTPConfig struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
}

// HTTPClient implements Client against a live PesaFlow backend.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient builds a client for the given base URL.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		token:   cfg.AuthToken,
		client:  httpClient,
	}, nil
}

// DashboardStats fetches the aggregate dashboard counters.
func (c *HTTPClient) DashboardStats(ctx context.Context) (StatsSnapshot, error) {
	var snapshot StatsSnapshot
	if err := c.get(ctx, StatsPath, &snapshot); err != nil {
		return StatsSnapshot{}, err
	}
	return snapshot, nil
}

// UnreadCount fetches the unread-notification counter.
func (c *HTTPClient) UnreadCount(ctx context.Context) (int, error) {
	var payload struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, UnreadCountPath, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// LoadMore fetches one page of a paginated list endpoint.
func (c *HTTPClient) LoadMore(ctx context.Context, listURL string, page int) (PageFragment, error) {
	parsed, err := url.Parse(listURL)
	if err != nil {
		return PageFragment{}, fmt.Errorf("api: parse list url %q: %w", listURL, err)
	}
	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	parsed.RawQuery = query.Encode()

	var fragment PageFragment
	if err := c.get(ctx, parsed.String(), &fragment); err != nil {
		return PageFragment{}, err
	}
	return fragment, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("api: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
