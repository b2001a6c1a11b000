package dashboard

import (
	"context"
	"strconv"

	"github.com/eKidenge/pesaflow/pkg/api"
	"github.com/eKidenge/pesaflow/pkg/dom"
	"github.com/eKidenge/pesaflow/pkg/format"
)

// Stat display selectors the poller writes into.
const (
	StatTotalCustomersClass  = "stat-total-customers"
	StatTotalRevenueClass    = "stat-total-revenue"
	StatSuccessRateClass     = "stat-success-rate"
	StatPendingInvoicesClass = "stat-pending-invoices"
)

// StatsPanel fetches the aggregate counters and overwrites the stat display
// nodes. No caching, no diffing, no retry: a failed fetch leaves the
// previous values on screen and only telemetry hears about it.
type StatsPanel struct {
	doc       *dom.Document
	loop      *Loop
	client    api.Client
	telemetry Telemetry
}

// StatsPanelOptions configures a StatsPanel.
type StatsPanelOptions struct {
	Document  *dom.Document
	Loop      *Loop
	Client    api.Client
	Telemetry Telemetry
}

// NewStatsPanel builds a stats panel.
func NewStatsPanel(opts StatsPanelOptions) *StatsPanel {
	return &StatsPanel{
		doc:       opts.Document,
		loop:      opts.Loop,
		client:    opts.Client,
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
}

// Refresh issues one unconditional fetch and posts the display update back
// onto the loop.
func (p *StatsPanel) Refresh(ctx context.Context) {
	p.loop.Async(func() func() {
		snapshot, err := p.client.DashboardStats(ctx)
		if err != nil {
			p.telemetry.Record(ctx, "dashboard.stats.fetch_error", map[string]any{
				"error": err.Error(),
			})
			return nil
		}
		return func() { p.render(snapshot) }
	})
}

func (p *StatsPanel) render(snapshot api.StatsSnapshot) {
	setText(p.doc, StatTotalCustomersClass, strconv.Itoa(snapshot.TotalCustomers))
	setText(p.doc, StatTotalRevenueClass, format.Currency(snapshot.TotalRevenue))
	setText(p.doc, StatSuccessRateClass, format.Percent(snapshot.SuccessRate))
	setText(p.doc, StatPendingInvoicesClass, strconv.Itoa(snapshot.PendingInvoices))
}

func setText(doc *dom.Document, class, text string) {
	if el := doc.First("." + class); el != nil {
		el.SetText(text)
	}
}
