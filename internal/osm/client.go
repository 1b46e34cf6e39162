// Package osm fetches changeset metadata from the OpenStreetMap public API.
package osm

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"
)

// DefaultEndpoint is the OSM API base URL.
const DefaultEndpoint = "https://api.openstreetmap.org/api/0.6"

// MetadataFetcher retrieves descriptive metadata for a changeset.
type MetadataFetcher interface {
	// ChangesetComment returns the changeset's comment tag, or "" when the
	// changeset carries none.
	ChangesetComment(ctx context.Context, changesetID string) (string, error)
}

// Config holds OSM API client settings.
type Config struct {
	Endpoint string
}

// DefaultConfig returns the production OSM API endpoint.
func DefaultConfig() Config {
	return Config{Endpoint: DefaultEndpoint}
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("CHRONOMAP_OSM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	return cfg
}

type client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a MetadataFetcher against the configured endpoint.
func NewClient(cfg Config) MetadataFetcher {
	return &client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// changesetDoc mirrors the subset of the changeset XML we read.
type changesetDoc struct {
	XMLName   xml.Name `xml:"osm"`
	Changeset struct {
		Tags []struct {
			K string `xml:"k,attr"`
			V string `xml:"v,attr"`
		} `xml:"tag"`
	} `xml:"changeset"`
}

func (c *client) ChangesetComment(ctx context.Context, changesetID string) (string, error) {
	url := fmt.Sprintf("%s/changeset/%s", c.cfg.Endpoint, changesetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching changeset %s: %w", changesetID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("osm returned status %d: %s", resp.StatusCode, string(body))
	}

	var doc changesetDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("decoding changeset XML: %w", err)
	}

	for _, tag := range doc.Changeset.Tags {
		if tag.K == "comment" {
			return tag.V, nil
		}
	}
	return "", nil
}
