package dashboard

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const chartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// RevenuePoint is one day of the revenue series the backend aggregates for
// its payments dashboard.
type RevenuePoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"daily_total"`
	Count int     `json:"daily_count"`
}

// ChartRenderer turns a revenue series into a standalone HTML chart, the
// offline counterpart of the dashboard counters.
type ChartRenderer struct {
	cache RenderCache
	theme string
	title string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) { r.cache = cache }
}

// WithTheme sets the chart theme (defaults to Westeros).
func WithTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) { r.theme = theme }
}

// WithTitle overrides the chart title.
func WithTitle(title string) ChartRendererOption {
	return func(r *ChartRenderer) { r.title = title }
}

// NewChartRenderer builds a renderer.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
		title: "Revenue (last 30 days)",
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderOverview renders the daily revenue line with payment counts as a
// secondary bar series.
func (r *ChartRenderer) RenderOverview(points []RevenuePoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("dashboard: revenue series is required")
	}
	return r.cache.GetOrRender(seriesHash(points), func() (string, error) {
		return r.render(points)
	})
}

func (r *ChartRenderer) render(points []RevenuePoint) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  r.theme,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: r.title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	dates := make([]string, len(points))
	revenue := make([]opts.LineData, len(points))
	counts := make([]opts.BarData, len(points))
	for i, point := range points {
		dates[i] = point.Date
		revenue[i] = opts.LineData{Value: point.Total}
		counts[i] = opts.BarData{Value: point.Count}
	}
	line.SetXAxis(dates).AddSeries("Revenue", revenue)

	bar := charts.NewBar()
	bar.SetXAxis(dates).AddSeries("Payments", counts)
	line.Overlap(bar)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("dashboard: render revenue chart: %w", err)
	}
	return buf.String(), nil
}
