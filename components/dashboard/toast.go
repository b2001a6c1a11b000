package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eKidenge/pesaflow/pkg/dom"
)

// ToastKind selects the visual styling of a toast.
type ToastKind string

const (
	// ToastSuccess styles a toast as a success alert.
	ToastSuccess ToastKind = "success"
	// ToastError styles a toast as an error alert.
	ToastError ToastKind = "error"
	// ToastInfo styles a toast as an informational alert.
	ToastInfo ToastKind = "info"
)

// DefaultToastDuration is how long the toast container keeps an entry
// before the eviction scheduled for it fires.
const DefaultToastDuration = 5 * time.Second

// ToastContainerClass marks the element toasts are appended to.
const ToastContainerClass = "toast-container"

// Notifier renders transient alerts into the toast container. Each Show
// schedules exactly one eviction after the display duration, and that
// eviction removes the OLDEST toast still on screen, not necessarily the one
// whose timer expired. The original pages behaved this way and list views
// depend on it, so it is kept as-is.
type Notifier struct {
	doc       *dom.Document
	loop      *Loop
	duration  time.Duration
	telemetry Telemetry
}

// NotifierOptions configures a Notifier.
type NotifierOptions struct {
	Document  *dom.Document
	Loop      *Loop
	Duration  time.Duration
	Telemetry Telemetry
}

// NewNotifier builds a notifier with the default display duration.
func NewNotifier(opts NotifierOptions) *Notifier {
	if opts.Duration <= 0 {
		opts.Duration = DefaultToastDuration
	}
	return &Notifier{
		doc:       opts.Document,
		loop:      opts.Loop,
		duration:  opts.Duration,
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
}

// Show appends a dismissible toast and schedules a FIFO eviction. Must run
// on the loop.
func (n *Notifier) Show(ctx context.Context, title, message string, kind ToastKind) {
	container := n.container()
	toast := n.doc.CreateElement("div", "toast", "alert", alertClass(kind))
	toast.ID = uuid.NewString()

	heading := n.doc.CreateElement("strong", "toast-title").SetText(title)
	body := n.doc.CreateElement("span", "toast-body").SetText(message)
	toast.AppendChild(heading)
	toast.AppendChild(body)
	container.AppendChild(toast)

	n.loop.PostDelayed(n.duration, func() { n.evictOldest() })
	n.telemetry.Record(ctx, "dashboard.toast.show", map[string]any{
		"kind":  string(kind),
		"title": title,
	})
}

func (n *Notifier) evictOldest() {
	container := n.doc.First("." + ToastContainerClass)
	if container == nil {
		return
	}
	children := container.Children()
	if len(children) == 0 {
		return
	}
	children[0].Remove()
}

func (n *Notifier) container() *dom.Element {
	if container := n.doc.First("." + ToastContainerClass); container != nil {
		return container
	}
	container := n.doc.CreateElement("div", ToastContainerClass)
	n.doc.Root.AppendChild(container)
	return container
}

func alertClass(kind ToastKind) string {
	switch kind {
	case ToastSuccess:
		return "alert-success"
	case ToastError:
		return "alert-danger"
	default:
		return "alert-info"
	}
}
