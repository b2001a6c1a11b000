package dashboard

import (
	"context"
	"strconv"

	"github.com/eKidenge/pesaflow/pkg/api"
	"github.com/eKidenge/pesaflow/pkg/dom"
)

// BadgeClass marks the unread-notification badge element.
const BadgeClass = "notification-badge"

// HiddenClass is the utility class toggled to hide the badge.
const HiddenClass = "d-none"

// BadgeUpdater fetches the unread count and toggles the badge. The badge is
// visible exactly when the count is positive. Fetch failures are swallowed.
type BadgeUpdater struct {
	doc       *dom.Document
	loop      *Loop
	client    api.Client
	telemetry Telemetry
}

// BadgeUpdaterOptions configures a BadgeUpdater.
type BadgeUpdaterOptions struct {
	Document  *dom.Document
	Loop      *Loop
	Client    api.Client
	Telemetry Telemetry
}

// NewBadgeUpdater builds a badge updater.
func NewBadgeUpdater(opts BadgeUpdaterOptions) *BadgeUpdater {
	return &BadgeUpdater{
		doc:       opts.Document,
		loop:      opts.Loop,
		client:    opts.Client,
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
}

// Refresh issues one unconditional fetch and posts the badge update back
// onto the loop.
func (b *BadgeUpdater) Refresh(ctx context.Context) {
	b.loop.Async(func() func() {
		count, err := b.client.UnreadCount(ctx)
		if err != nil {
			b.telemetry.Record(ctx, "dashboard.badge.fetch_error", map[string]any{
				"error": err.Error(),
			})
			return nil
		}
		return func() { b.render(count) }
	})
}

func (b *BadgeUpdater) render(count int) {
	badge := b.doc.First("." + BadgeClass)
	if badge == nil {
		return
	}
	if count > 0 {
		badge.SetText(strconv.Itoa(count))
		badge.RemoveClass(HiddenClass)
		return
	}
	badge.SetText("")
	badge.AddClass(HiddenClass)
}
