package osm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changesetXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="openstreetmap-cgimap">
  <changeset id="123456789" created_at="2026-03-14T09:00:00Z" open="false">
    <tag k="created_by" v="iD 2.30.0"/>
    <tag k="comment" v="Added sidewalks near the station"/>
    <tag k="host" v="https://www.openstreetmap.org/edit"/>
  </changeset>
</osm>`

func TestChangesetComment_ExtractsCommentTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/changeset/123456789", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(changesetXML))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	comment, err := c.ChangesetComment(context.Background(), "123456789")
	require.NoError(t, err)
	assert.Equal(t, "Added sidewalks near the station", comment)
}

func TestChangesetComment_NoCommentTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<osm><changeset id="1"><tag k="created_by" v="iD"/></changeset></osm>`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	comment, err := c.ChangesetComment(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, comment)
}

func TestChangesetComment_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.ChangesetComment(context.Background(), "999")
	assert.ErrorContains(t, err, "status 404")
}

func TestChangesetComment_MalformedXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<osm><changeset`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.ChangesetComment(context.Background(), "1")
	assert.ErrorContains(t, err, "decoding changeset XML")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CHRONOMAP_OSM_ENDPOINT", "http://localhost:9999/api/0.6")
	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:9999/api/0.6", cfg.Endpoint)
}
