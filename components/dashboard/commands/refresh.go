package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RefreshStatsInput requests a dashboard counter refresh.
type RefreshStatsInput struct{}

// RefreshBadgeInput requests an unread-badge refresh.
type RefreshBadgeInput struct{}

type refresher interface {
	Refresh(ctx context.Context)
}

// RefreshStatsCommand triggers one stats fetch-and-render cycle.
type RefreshStatsCommand struct {
	panel     refresher
	telemetry Telemetry
}

// NewRefreshStatsCommand creates the command.
func NewRefreshStatsCommand(panel refresher, telemetry Telemetry) *RefreshStatsCommand {
	return &RefreshStatsCommand{panel: panel, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshStatsInput] = (*RefreshStatsCommand)(nil)

// Execute fires the refresh.
func (c *RefreshStatsCommand) Execute(ctx context.Context, _ RefreshStatsInput) error {
	if c.panel == nil {
		return errors.New("stats refresh command requires panel")
	}
	c.panel.Refresh(ctx)
	c.telemetry.Record(ctx, "dashboard.command.refresh_stats", nil)
	return nil
}

// RefreshBadgeCommand triggers one unread-count fetch-and-render cycle.
type RefreshBadgeCommand struct {
	badge     refresher
	telemetry Telemetry
}

// NewRefreshBadgeCommand creates the command.
func NewRefreshBadgeCommand(badge refresher, telemetry Telemetry) *RefreshBadgeCommand {
	return &RefreshBadgeCommand{badge: badge, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshBadgeInput] = (*RefreshBadgeCommand)(nil)

// Execute fires the refresh.
func (c *RefreshBadgeCommand) Execute(ctx context.Context, _ RefreshBadgeInput) error {
	if c.badge == nil {
		return errors.New("badge refresh command requires badge")
	}
	c.badge.Refresh(ctx)
	c.telemetry.Record(ctx, "dashboard.command.refresh_badge", nil)
	return nil
}
