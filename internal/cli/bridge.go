package cli

import "context"

// notice is one user-facing message from the pipeline.
type notice struct {
	Text string
}

// confirmRequest is a pending yes/no question; the answer goes back on
// Response.
type confirmRequest struct {
	Prompt   string
	Response chan bool
}

// UIBridge connects the session controller's Notifier and Confirmer ports
// to whatever front end is running. The badge TUI drains both channels;
// without a front end, notifications drop and confirmations resolve to no.
type UIBridge struct {
	Notices  chan notice
	Confirms chan confirmRequest
}

// NewUIBridge creates a bridge with buffered channels.
func NewUIBridge() *UIBridge {
	return &UIBridge{
		Notices:  make(chan notice, 16),
		Confirms: make(chan confirmRequest),
	}
}

// Notify implements service.Notifier. Never blocks the pipeline; when the
// buffer is full the message is dropped.
func (b *UIBridge) Notify(_ context.Context, msg string) {
	select {
	case b.Notices <- notice{Text: msg}:
	default:
	}
}

// Confirm implements service.Confirmer. Blocks until the front end answers
// or the context ends; an ended context counts as a declined confirmation.
func (b *UIBridge) Confirm(ctx context.Context, prompt string) (bool, error) {
	req := confirmRequest{Prompt: prompt, Response: make(chan bool, 1)}
	select {
	case b.Confirms <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-req.Response:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
