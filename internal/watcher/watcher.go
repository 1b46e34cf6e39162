// Package watcher turns observed OpenStreetMap API traffic into work-unit
// events. It scans request URLs for changeset upload/close calls and emits
// the changeset id, at most once per matching request. It knows nothing
// about sessions or deduplication; that is the controller's job.
package watcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/chronomap/internal/domain"
)

// apiHost is the OSM API host whose traffic is inspected.
const apiHost = "api.openstreetmap.org"

// changesetFinalize matches the two calls that finalize a changeset.
var changesetFinalize = regexp.MustCompile(`/changeset/(\d+)/(upload|close)$`)

// Watcher extracts changeset ids from a stream of request URLs.
type Watcher struct {
	events chan domain.WorkUnitEvent

	// editorActive gates emission; detections are forwarded only while the
	// editor context is in the foreground.
	editorActive atomic.Bool
}

// New creates a Watcher with the editor context marked active.
func New() *Watcher {
	w := &Watcher{events: make(chan domain.WorkUnitEvent, 8)}
	w.editorActive.Store(true)
	return w
}

// Events returns the stream of detected work units.
func (w *Watcher) Events() <-chan domain.WorkUnitEvent {
	return w.events
}

// SetEditorActive toggles whether detections are forwarded.
func (w *Watcher) SetEditorActive(active bool) {
	w.editorActive.Store(active)
}

// ExtractWorkUnitID returns the changeset id when rawURL is an OSM API
// changeset upload or close request.
func ExtractWorkUnitID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	if u.Host != "" && u.Host != apiHost {
		return "", false
	}
	if u.Host != "" && !strings.HasPrefix(u.Path, "/api/0.6/changeset/") {
		return "", false
	}
	m := changesetFinalize.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Observe inspects one request URL and emits an event when it finalizes a
// changeset and the editor context is active. Returns the id that was
// emitted, if any.
func (w *Watcher) Observe(ctx context.Context, rawURL string) (string, bool) {
	id, ok := ExtractWorkUnitID(rawURL)
	if !ok || !w.editorActive.Load() {
		return "", false
	}
	select {
	case w.events <- domain.WorkUnitEvent{WorkUnitID: id}:
		return id, true
	case <-ctx.Done():
		return "", false
	}
}

// Run consumes request URLs line by line from r until EOF or context
// cancellation, emitting an event per finalize request. The event channel
// is closed on return.
func (w *Watcher) Run(ctx context.Context, r io.Reader) error {
	defer close(w.events)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		w.Observe(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading request stream: %w", err)
	}
	return nil
}
