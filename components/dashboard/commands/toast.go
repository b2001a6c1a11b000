// Package commands wraps pipeline actions as go-command commands so
// transports and CLIs can trigger them without holding the components
// directly.
package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/eKidenge/pesaflow/components/dashboard"
)

// ShowToastInput carries one toast to display.
type ShowToastInput struct {
	Title   string
	Message string
	Kind    dashboard.ToastKind
}

type toastShower interface {
	Show(ctx context.Context, title, message string, kind dashboard.ToastKind)
}

// ShowToastCommand posts a toast onto the pipeline loop.
type ShowToastCommand struct {
	loop      *dashboard.Loop
	notifier  toastShower
	telemetry Telemetry
}

// NewShowToastCommand creates the command.
func NewShowToastCommand(loop *dashboard.Loop, notifier toastShower, telemetry Telemetry) *ShowToastCommand {
	return &ShowToastCommand{loop: loop, notifier: notifier, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ShowToastInput] = (*ShowToastCommand)(nil)

// Execute schedules the toast.
func (c *ShowToastCommand) Execute(ctx context.Context, msg ShowToastInput) error {
	if c.notifier == nil {
		return errors.New("toast command requires notifier")
	}
	c.loop.Post(func() {
		c.notifier.Show(ctx, msg.Title, msg.Message, msg.Kind)
	})
	c.telemetry.Record(ctx, "dashboard.command.toast", map[string]any{
		"kind": string(msg.Kind),
	})
	return nil
}
