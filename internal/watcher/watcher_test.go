package watcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWorkUnitID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"upload", "https://api.openstreetmap.org/api/0.6/changeset/123456789/upload", "123456789", true},
		{"close", "https://api.openstreetmap.org/api/0.6/changeset/42/close", "42", true},
		{"create is not a finalize", "https://api.openstreetmap.org/api/0.6/changeset/create", "", false},
		{"read is not a finalize", "https://api.openstreetmap.org/api/0.6/changeset/42", "", false},
		{"wrong host", "https://example.com/api/0.6/changeset/42/close", "", false},
		{"trailing segment", "https://api.openstreetmap.org/api/0.6/changeset/42/close/extra", "", false},
		{"bare path", "/api/0.6/changeset/7/upload", "7", true},
		{"non-numeric id", "https://api.openstreetmap.org/api/0.6/changeset/abc/upload", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractWorkUnitID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestWatcher_RunEmitsPerFinalizeRequest(t *testing.T) {
	input := strings.Join([]string{
		"https://api.openstreetmap.org/api/0.6/changeset/create",
		"https://api.openstreetmap.org/api/0.6/changeset/100/upload",
		"https://api.openstreetmap.org/api/0.6/changeset/100/close",
		"",
		"https://example.com/api/0.6/changeset/200/upload",
	}, "\n")

	w := New()
	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background(), strings.NewReader(input)) }()

	var ids []string
	for ev := range w.Events() {
		ids = append(ids, ev.WorkUnitID)
	}
	require.NoError(t, <-done)

	// Both upload and close emit; the controller deduplicates.
	assert.Equal(t, []string{"100", "100"}, ids)
}

func TestWatcher_InactiveEditorSuppressesEvents(t *testing.T) {
	w := New()
	w.SetEditorActive(false)

	_, emitted := w.Observe(context.Background(), "https://api.openstreetmap.org/api/0.6/changeset/5/close")
	assert.False(t, emitted)

	w.SetEditorActive(true)
	id, emitted := w.Observe(context.Background(), "https://api.openstreetmap.org/api/0.6/changeset/5/close")
	require.True(t, emitted)
	assert.Equal(t, "5", id)
	assert.Equal(t, "5", (<-w.Events()).WorkUnitID)
}
