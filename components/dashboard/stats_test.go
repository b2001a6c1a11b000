package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eKidenge/pesaflow/pkg/api"
	"github.com/eKidenge/pesaflow/pkg/dom"
)

func newStatsDocument() *dom.Document {
	doc := dom.NewDocument()
	for _, class := range []string{
		StatTotalCustomersClass,
		StatTotalRevenueClass,
		StatSuccessRateClass,
		StatPendingInvoicesClass,
	} {
		doc.Root.AppendChild(doc.CreateElement("span", class))
	}
	return doc
}

func TestStatsPanelRefreshRendersSnapshot(t *testing.T) {
	loop, _ := newTestLoop()
	doc := newStatsDocument()
	client := api.NewMockClient(api.MockData{Stats: api.StatsSnapshot{
		TotalCustomers:  128,
		TotalRevenue:    45230.5,
		SuccessRate:     96.4,
		PendingInvoices: 7,
	}})
	panel := NewStatsPanel(StatsPanelOptions{Document: doc, Loop: loop, Client: client})

	panel.Refresh(context.Background())
	loop.Dispatch()

	assert.Equal(t, "128", doc.First("."+StatTotalCustomersClass).Text())
	assert.Equal(t, "KES 45,230.50", doc.First("."+StatTotalRevenueClass).Text())
	assert.Equal(t, "96.4%", doc.First("."+StatSuccessRateClass).Text())
	assert.Equal(t, "7", doc.First("."+StatPendingInvoicesClass).Text())
	assert.Equal(t, 1, client.StatsCalls())
}

func TestStatsPanelFetchErrorLeavesDisplayAlone(t *testing.T) {
	loop, _ := newTestLoop()
	doc := newStatsDocument()
	doc.First("." + StatTotalRevenueClass).SetText("KES 100.00")

	client := api.NewMockClient(api.MockData{})
	client.FailWith(errors.New("boom"))
	telemetry := &captureTelemetry{}
	panel := NewStatsPanel(StatsPanelOptions{Document: doc, Loop: loop, Client: client, Telemetry: telemetry})

	panel.Refresh(context.Background())
	loop.Dispatch()

	assert.Equal(t, "KES 100.00", doc.First("."+StatTotalRevenueClass).Text())
	assert.True(t, telemetry.has("dashboard.stats.fetch_error"))
}

func TestStatsPanelMissingNodesAreSkipped(t *testing.T) {
	loop, _ := newTestLoop()
	doc := dom.NewDocument()
	client := api.NewMockClient(api.MockData{Stats: api.StatsSnapshot{TotalCustomers: 3}})
	panel := NewStatsPanel(StatsPanelOptions{Document: doc, Loop: loop, Client: client})

	panel.Refresh(context.Background())
	loop.Dispatch()
	assert.Equal(t, 1, client.StatsCalls())
}
