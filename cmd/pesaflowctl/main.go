package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/eKidenge/pesaflow/components/dashboard"
	"github.com/eKidenge/pesaflow/pkg/api"
	"github.com/eKidenge/pesaflow/pkg/dom"
	"github.com/eKidenge/pesaflow/pkg/realtime"
	"github.com/eKidenge/pesaflow/pkg/stubserver"
)

type cli struct {
	Watch    watchCmd    `cmd:"" help:"Run the dashboard pipeline against a backend and print updates."`
	Stub     stubCmd     `cmd:"" help:"Run the development stub backend."`
	Snapshot snapshotCmd `cmd:"" help:"Render a revenue overview chart to an HTML file."`
}

func main() {
	// Optional; a missing .env is fine.
	_ = godotenv.Load()
	ctx := kong.Parse(&cli{},
		kong.Description("PesaFlow dashboard pipeline utility."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type watchCmd struct {
	BaseURL  string        `env:"PESAFLOW_BASE_URL" default:"http://localhost:8000" help:"Backend base URL."`
	Token    string        `env:"PESAFLOW_API_TOKEN" help:"Bearer token for the API."`
	WsURL    string        `env:"PESAFLOW_WS_URL" help:"Websocket events URL (default derives from base URL)."`
	Interval time.Duration `default:"30s" help:"How often to re-poll stats and unread count."`
	Locale   string        `env:"PESAFLOW_LOCALE" help:"UI locale (e.g. sw-ke)."`
	Manifest string        `type:"path" help:"Optional integration manifest YAML."`
}

func (cmd *watchCmd) Run(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	client, err := api.NewHTTPClient(api.HTTPConfig{BaseURL: cmd.BaseURL, AuthToken: cmd.Token})
	if err != nil {
		return err
	}

	doc := buildWatchDocument()
	loop := dashboard.NewLoop(dashboard.LoopOptions{})
	telemetry := logTelemetry{}

	toasts := dashboard.NewNotifier(dashboard.NotifierOptions{
		Document: doc, Loop: loop, Telemetry: telemetry,
	})
	stats := dashboard.NewStatsPanel(dashboard.StatsPanelOptions{
		Document: doc, Loop: loop, Client: client, Telemetry: telemetry,
	})
	badge := dashboard.NewBadgeUpdater(dashboard.BadgeUpdaterOptions{
		Document: doc, Loop: loop, Client: client, Telemetry: telemetry,
	})

	var manifest *dashboard.ManifestDocument
	if cmd.Manifest != "" {
		manifest, err = dashboard.ReadManifest(cmd.Manifest)
		if err != nil {
			return err
		}
	}
	if _, err := dashboard.Bootstrap(ctx, dashboard.BootstrapOptions{
		Document:  doc,
		Loop:      loop,
		Telemetry: telemetry,
		Manifest:  manifest,
		Locale:    cmd.Locale,
	}); err != nil {
		return err
	}

	var source realtime.Source
	wsURL := cmd.WsURL
	if wsURL == "" {
		wsURL = deriveWsURL(cmd.BaseURL)
	}
	conn, err := realtime.Dial(ctx, wsURL)
	if err != nil {
		log.Printf("realtime channel unavailable, continuing without it: %v", err)
	} else {
		defer conn.Close()
		source = conn
	}

	bridge := dashboard.NewBridge(dashboard.BridgeOptions{
		Loop:      loop,
		Source:    source,
		Toasts:    toasts,
		Stats:     stats,
		Badge:     badge,
		Telemetry: telemetry,
		Strings:   dashboard.DefaultStrings(),
		Locale:    cmd.Locale,
	})
	bridge.Run(ctx)

	stats.Refresh(ctx)
	badge.Refresh(ctx)

	go func() {
		ticker := time.NewTicker(cmd.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats.Refresh(ctx)
				badge.Refresh(ctx)
				loop.Post(func() { printDashboard(doc) })
			}
		}
	}()

	log.Printf("watching %s (events: %s)", cmd.BaseURL, wsURL)
	loop.Run(ctx)
	return nil
}

func buildWatchDocument() *dom.Document {
	doc := dom.NewDocument()
	for _, class := range []string{
		dashboard.StatTotalCustomersClass,
		dashboard.StatTotalRevenueClass,
		dashboard.StatSuccessRateClass,
		dashboard.StatPendingInvoicesClass,
	} {
		doc.Root.AppendChild(doc.CreateElement("span", class))
	}
	doc.Root.AppendChild(doc.CreateElement("span", dashboard.BadgeClass, dashboard.HiddenClass))
	doc.Root.AppendChild(doc.CreateElement("div", dashboard.ToastContainerClass))
	return doc
}

func printDashboard(doc *dom.Document) {
	read := func(class string) string {
		if el := doc.First("." + class); el != nil && el.Text() != "" {
			return el.Text()
		}
		return "-"
	}
	unread := "0"
	if badge := doc.First("." + dashboard.BadgeClass); badge != nil && !badge.HasClass(dashboard.HiddenClass) {
		unread = badge.Text()
	}
	log.Printf("customers=%s revenue=%s success=%s pending=%s unread=%s",
		read(dashboard.StatTotalCustomersClass),
		read(dashboard.StatTotalRevenueClass),
		read(dashboard.StatSuccessRateClass),
		read(dashboard.StatPendingInvoicesClass),
		unread,
	)
}

func deriveWsURL(baseURL string) string {
	ws := baseURL
	switch {
	case len(ws) > 8 && ws[:8] == "https://":
		ws = "wss://" + ws[8:]
	case len(ws) > 7 && ws[:7] == "http://":
		ws = "ws://" + ws[7:]
	}
	return ws + realtime.DefaultEventsPath
}

type stubCmd struct {
	Addr     string `default:":8000" help:"Listen address."`
	Pages    int    `default:"3" help:"Number of customer pages the list endpoint serves."`
	PageSize int    `default:"10" help:"Rows per customer page."`
}

func (cmd *stubCmd) Run(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	server := stubserver.New(stubserver.Options{Pages: cmd.Pages, PageSize: cmd.PageSize})
	go func() {
		<-ctx.Done()
		_ = server.Shutdown()
	}()
	log.Printf("stub backend listening on %s", cmd.Addr)
	return server.Listen(cmd.Addr)
}

type snapshotCmd struct {
	Input string `type:"existingfile" help:"JSON file with the daily revenue series."`
	Out   string `default:"revenue.html" type:"path" help:"Output HTML file."`
	Title string `help:"Chart title override."`
}

func (cmd *snapshotCmd) Run(_ context.Context) error {
	points, err := cmd.loadSeries()
	if err != nil {
		return err
	}
	var options []dashboard.ChartRendererOption
	if cmd.Title != "" {
		options = append(options, dashboard.WithTitle(cmd.Title))
	}
	renderer := dashboard.NewChartRenderer(options...)
	html, err := renderer.RenderOverview(points)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.Out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cmd.Out, err)
	}
	log.Printf("wrote %s (%d points)", cmd.Out, len(points))
	return nil
}

func (cmd *snapshotCmd) loadSeries() ([]dashboard.RevenuePoint, error) {
	if cmd.Input == "" {
		return demoSeries(), nil
	}
	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		return nil, fmt.Errorf("read series: %w", err)
	}
	var points []dashboard.RevenuePoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parse series: %w", err)
	}
	return points, nil
}

func demoSeries() []dashboard.RevenuePoint {
	points := make([]dashboard.RevenuePoint, 30)
	day := time.Now().AddDate(0, 0, -29)
	for i := range points {
		points[i] = dashboard.RevenuePoint{
			Date:  day.Format(time.DateOnly),
			Total: 1000 + float64((i*137)%900),
			Count: 5 + (i*7)%20,
		}
		day = day.AddDate(0, 0, 1)
	}
	return points
}

// logTelemetry prints pipeline events; the watch command's stand-in for a
// real telemetry sink.
type logTelemetry struct{}

func (logTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	if len(payload) == 0 {
		log.Printf("%s", event)
		return
	}
	log.Printf("%s %v", event, payload)
}
