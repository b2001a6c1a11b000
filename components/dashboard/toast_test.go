package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eKidenge/pesaflow/pkg/dom"
)

func toastTitles(doc *dom.Document) []string {
	container := doc.First("." + ToastContainerClass)
	if container == nil {
		return nil
	}
	var titles []string
	for _, toast := range container.Children() {
		if title := toast.First(".toast-title"); title != nil {
			titles = append(titles, title.Text())
		}
	}
	return titles
}

func TestNotifierShowRendersToast(t *testing.T) {
	loop, _ := newTestLoop()
	doc := dom.NewDocument()
	notifier := NewNotifier(NotifierOptions{Document: doc, Loop: loop})

	notifier.Show(context.Background(), "Payment Received", "KES 500 from Alice", ToastSuccess)

	container := doc.First("." + ToastContainerClass)
	require.NotNil(t, container)
	require.Len(t, container.Children(), 1)

	toast := container.Children()[0]
	assert.NotEmpty(t, toast.ID)
	assert.True(t, toast.HasClass("alert-success"))
	assert.Equal(t, "Payment Received", toast.First(".toast-title").Text())
	assert.Equal(t, "KES 500 from Alice", toast.First(".toast-body").Text())
}

func TestNotifierKindStyling(t *testing.T) {
	loop, _ := newTestLoop()
	doc := dom.NewDocument()
	notifier := NewNotifier(NotifierOptions{Document: doc, Loop: loop})
	ctx := context.Background()

	notifier.Show(ctx, "a", "", ToastSuccess)
	notifier.Show(ctx, "b", "", ToastError)
	notifier.Show(ctx, "c", "", ToastInfo)

	children := doc.First("." + ToastContainerClass).Children()
	require.Len(t, children, 3)
	assert.True(t, children[0].HasClass("alert-success"))
	assert.True(t, children[1].HasClass("alert-danger"))
	assert.True(t, children[2].HasClass("alert-info"))
}

func TestNotifierEvictsOldestNotExpired(t *testing.T) {
	loop, clock := newTestLoop()
	doc := dom.NewDocument()
	notifier := NewNotifier(NotifierOptions{Document: doc, Loop: loop})
	ctx := context.Background()

	notifier.Show(ctx, "A", "", ToastInfo)
	clock.Advance(2 * time.Second)
	notifier.Show(ctx, "B", "", ToastInfo)
	clock.Advance(time.Second)
	notifier.Show(ctx, "C", "", ToastInfo)

	require.Equal(t, []string{"A", "B", "C"}, toastTitles(doc))

	// A's timer expires first and removes A, the oldest on screen.
	clock.Advance(2 * time.Second)
	loop.Dispatch()
	assert.Equal(t, []string{"B", "C"}, toastTitles(doc))

	// B's timer expires next; B is now the oldest, so it goes.
	clock.Advance(2 * time.Second)
	loop.Dispatch()
	assert.Equal(t, []string{"C"}, toastTitles(doc))

	clock.Advance(time.Second)
	loop.Dispatch()
	assert.Empty(t, toastTitles(doc))
}

func TestNotifierDefaultDuration(t *testing.T) {
	loop, clock := newTestLoop()
	doc := dom.NewDocument()
	notifier := NewNotifier(NotifierOptions{Document: doc, Loop: loop})

	notifier.Show(context.Background(), "A", "", ToastInfo)

	clock.Advance(DefaultToastDuration - time.Millisecond)
	loop.Dispatch()
	assert.Equal(t, []string{"A"}, toastTitles(doc))

	clock.Advance(time.Millisecond)
	loop.Dispatch()
	assert.Empty(t, toastTitles(doc))
}

func TestNotifierCreatesContainerLazily(t *testing.T) {
	loop, _ := newTestLoop()
	doc := dom.NewDocument()
	notifier := NewNotifier(NotifierOptions{Document: doc, Loop: loop})

	assert.Nil(t, doc.First("."+ToastContainerClass))
	notifier.Show(context.Background(), "A", "", ToastInfo)
	assert.NotNil(t, doc.First("."+ToastContainerClass))
}

func TestNotifierRecordsTelemetry(t *testing.T) {
	loop, _ := newTestLoop()
	doc := dom.NewDocument()
	telemetry := &captureTelemetry{}
	notifier := NewNotifier(NotifierOptions{Document: doc, Loop: loop, Telemetry: telemetry})

	notifier.Show(context.Background(), "A", "hello", ToastError)
	assert.True(t, telemetry.has("dashboard.toast.show"))
}
