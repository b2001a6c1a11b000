package dashboard

import (
	"context"

	"github.com/eKidenge/pesaflow/pkg/realtime"
)

// Bridge subscribes to the realtime event stream and fans each event kind
// out to the toast notifier plus the refresh it implies. With no source
// configured the bridge is inert: Run returns immediately and nothing
// errors, matching pages served without a realtime client.
type Bridge struct {
	loop      *Loop
	source    realtime.Source
	toasts    *Notifier
	stats     *StatsPanel
	badge     *BadgeUpdater
	telemetry Telemetry
	handlers  map[realtime.EventKind]Handler
}

// BridgeOptions configures a Bridge.
type BridgeOptions struct {
	Loop      *Loop
	Source    realtime.Source
	Toasts    *Notifier
	Stats     *StatsPanel
	Badge     *BadgeUpdater
	Telemetry Telemetry
	Strings   UIStrings
	Locale    string
}

// NewBridge builds a bridge with its event-to-handler table.
func NewBridge(opts BridgeOptions) *Bridge {
	b := &Bridge{
		loop:      opts.Loop,
		source:    opts.Source,
		toasts:    opts.Toasts,
		stats:     opts.Stats,
		badge:     opts.Badge,
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
	locale := opts.Locale
	strings := opts.Strings
	b.handlers = map[realtime.EventKind]Handler{}

	paymentReceived := strings.ToastPaymentReceived.For(locale, "Payment Received")
	b.bindEvent(realtime.EventNewPayment, func(ctx context.Context, ev *Event) {
		b.toasts.Show(ctx, paymentReceived, ev.Value, ToastSuccess)
		if b.stats != nil {
			b.stats.Refresh(ctx)
		}
	})

	paymentFailed := strings.ToastPaymentFailed.For(locale, "Payment Failed")
	b.bindEvent(realtime.EventPaymentFailed, func(ctx context.Context, ev *Event) {
		b.toasts.Show(ctx, paymentFailed, ev.Value, ToastError)
	})

	newNotification := strings.ToastNewNotification.For(locale, "New Notification")
	b.bindEvent(realtime.EventNewNotification, func(ctx context.Context, ev *Event) {
		b.toasts.Show(ctx, newNotification, ev.Value, ToastInfo)
		if b.badge != nil {
			b.badge.Refresh(ctx)
		}
	})
	return b
}

func (b *Bridge) bindEvent(kind realtime.EventKind, handler Handler) {
	b.handlers[kind] = handler
}

// Run subscribes to the source and pumps events until ctx is cancelled or
// the stream closes. Each event's handler is posted onto the loop.
func (b *Bridge) Run(ctx context.Context) {
	if b.source == nil {
		return
	}
	events, cancel := b.source.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				b.dispatch(ctx, event)
			}
		}
	}()
}

func (b *Bridge) dispatch(ctx context.Context, event realtime.Event) {
	handler, ok := b.handlers[event.Kind]
	if !ok {
		b.telemetry.Record(ctx, "dashboard.bridge.unhandled", map[string]any{
			"kind": string(event.Kind),
		})
		return
	}
	b.loop.Post(func() {
		handler(ctx, &Event{Value: event.Message})
	})
}
