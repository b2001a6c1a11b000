package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsDecodesCounters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, StatsPath, r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_customers": 42,
			"total_revenue": 12500.75,
			"success_rate": 96.4,
			"pending_invoices": 3
		}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, AuthToken: "secret"})
	require.NoError(t, err)

	snapshot, err := client.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, snapshot.TotalCustomers)
	assert.Equal(t, 12500.75, snapshot.TotalRevenue)
	assert.Equal(t, 96.4, snapshot.SuccessRate)
	assert.Equal(t, 3, snapshot.PendingInvoices)
}

func TestUnreadCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, UnreadCountPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"count": 5}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)

	count, err := client.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestLoadMoreSetsPageParameter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/customers/partial/", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("page"))
		require.Equal(t, "recent", r.URL.Query().Get("sort"))
		_, _ = w.Write([]byte(`{"html": "<div>row</div>", "has_next": true}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)

	fragment, err := client.LoadMore(context.Background(), "/customers/partial/?sort=recent", 3)
	require.NoError(t, err)
	assert.Equal(t, "<div>row</div>", fragment.HTML)
	assert.True(t, fragment.HasNext)
}

func TestLoadMoreAbsentFieldsDecodeAsZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)

	fragment, err := client.LoadMore(context.Background(), "/customers/partial/", 9)
	require.NoError(t, err)
	assert.Empty(t, fragment.HTML)
	assert.False(t, fragment.HasNext)
}

func TestRemoteErrorSurfacesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.DashboardStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "forbidden")
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{})
	assert.Error(t, err)
}
