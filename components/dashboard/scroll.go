package dashboard

import (
	"context"
	"time"

	"github.com/eKidenge/pesaflow/pkg/api"
	"github.com/eKidenge/pesaflow/pkg/dom"
)

// Selectors the scroll loader depends on.
const (
	LoadMoreClass       = "load-more"
	ItemsContainerClass = "items-container"
)

// Scroll loader tuning. The threshold and cooldown match the page script
// this replaces.
const (
	DefaultScrollThreshold = 100.0
	DefaultErrorCooldown   = 2 * time.Second
)

// LoaderPhase is the scroll loader's explicit state.
type LoaderPhase int

const (
	// PhaseIdle accepts scroll triggers.
	PhaseIdle LoaderPhase = iota
	// PhaseLoading has a fetch outstanding; triggers are ignored.
	PhaseLoading
	// PhaseCooldown shows the inline error; triggers stay ignored until
	// the cooldown timer restores the idle label.
	PhaseCooldown
)

// ScrollLoader appends the next page of a list when the viewport nears the
// bottom of the document. State lives in an explicit {Idle, Loading,
// Cooldown} machine guarded by the loop's run-to-completion dispatch: the
// phase check and transition in OnScroll happen within one task, so rapid
// scroll bursts cannot race a second fetch out of it.
type ScrollLoader struct {
	doc       *dom.Document
	loop      *Loop
	client    api.Client
	telemetry Telemetry

	threshold float64
	cooldown  time.Duration

	idleLabel    string
	loadingLabel string
	errorLabel   string

	page  int
	phase LoaderPhase
}

// ScrollLoaderOptions configures a ScrollLoader.
type ScrollLoaderOptions struct {
	Document  *dom.Document
	Loop      *Loop
	Client    api.Client
	Telemetry Telemetry
	Threshold float64
	Cooldown  time.Duration
	Strings   UIStrings
	Locale    string
}

// NewScrollLoader builds a loader starting at page 1.
func NewScrollLoader(opts ScrollLoaderOptions) *ScrollLoader {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultScrollThreshold
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultErrorCooldown
	}
	return &ScrollLoader{
		doc:          opts.Document,
		loop:         opts.Loop,
		client:       opts.Client,
		telemetry:    normalizeTelemetry(opts.Telemetry),
		threshold:    opts.Threshold,
		cooldown:     opts.Cooldown,
		idleLabel:    opts.Strings.LoadMore.For(opts.Locale, "Load More"),
		loadingLabel: opts.Strings.Loading.For(opts.Locale, "Loading..."),
		errorLabel:   opts.Strings.LoadError.For(opts.Locale, "Error loading content"),
		page:         1,
		phase:        PhaseIdle,
	}
}

// Page returns the current page cursor. It starts at 1 and increments once
// per attempted fetch, never decrementing for the life of the page view.
func (sl *ScrollLoader) Page() int { return sl.page }

// Phase returns the loader's current state.
func (sl *ScrollLoader) Phase() LoaderPhase { return sl.phase }

// OnScroll is the scroll-event handler. Must run on the loop.
func (sl *ScrollLoader) OnScroll(ctx context.Context, ev *Event) {
	state := ev.Scroll
	if state.Top+state.ViewportHeight < state.DocumentHeight-sl.threshold {
		return
	}
	if sl.phase != PhaseIdle {
		return
	}
	control := sl.doc.First("." + LoadMoreClass)
	if control == nil {
		return
	}

	listURL := control.Data("url")
	sl.phase = PhaseLoading
	sl.page++
	page := sl.page
	control.SetText(sl.loadingLabel)

	sl.loop.Async(func() func() {
		fragment, err := sl.client.LoadMore(ctx, listURL, page)
		return func() { sl.complete(ctx, fragment, err) }
	})
}

func (sl *ScrollLoader) complete(ctx context.Context, fragment api.PageFragment, err error) {
	control := sl.doc.First("." + LoadMoreClass)
	if err != nil {
		sl.phase = PhaseCooldown
		if control != nil {
			control.SetText(sl.errorLabel)
		}
		sl.telemetry.Record(ctx, "dashboard.scroll.fetch_error", map[string]any{
			"page":  sl.page,
			"error": err.Error(),
		})
		sl.loop.PostDelayed(sl.cooldown, func() {
			if el := sl.doc.First("." + LoadMoreClass); el != nil {
				el.SetText(sl.idleLabel)
			}
			sl.phase = PhaseIdle
		})
		return
	}

	sl.phase = PhaseIdle
	if fragment.HTML == "" {
		// Absent payload means the list is exhausted, not an error.
		if control != nil {
			control.Remove()
		}
		return
	}
	if container := sl.doc.First("." + ItemsContainerClass); container != nil {
		container.AppendHTML(fragment.HTML)
	}
	if control == nil {
		return
	}
	if fragment.HasNext {
		control.SetText(sl.idleLabel)
	} else {
		control.Remove()
	}
}
