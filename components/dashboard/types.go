// Package dashboard implements the PesaFlow dashboard pipeline: widget
// bootstrap, dashboard counter refresh, the unread badge, infinite scroll,
// toast notifications, and the realtime event bridge that ties them
// together. Every collaborator is provided via interface so applications can
// swap implementations.
package dashboard

import "context"

// Prompter surfaces blocking prompts to the person at the screen. The
// confirm-delete and clipboard integrations use it where the original pages
// used window prompts.
type Prompter interface {
	// Confirm asks a yes/no question and reports the answer.
	Confirm(message string) bool
	// Alert shows a message and waits for acknowledgement.
	Alert(message string)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

type acceptAllPrompter struct{}

func (acceptAllPrompter) Confirm(string) bool { return true }
func (acceptAllPrompter) Alert(string)        {}

type discardClipboard struct{}

func (discardClipboard) WriteText(context.Context, string) error { return nil }
