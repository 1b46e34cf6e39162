package rovas

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// invalidKeysMarker appears in the response body when the service rejects
// the API key pair, independent of HTTP status.
const invalidKeysMarker = "The API keys sent are invalid"

// ShareholderResultKind tags which wire format the participation id was
// recovered from.
type ShareholderResultKind int

const (
	// ShareholderUnrecognized means no id could be extracted.
	ShareholderUnrecognized ShareholderResultKind = iota
	// ShareholderStructured means the JSON {"result": id} format.
	ShareholderStructured
	// ShareholderLegacy means the older "result: 12345" text format.
	ShareholderLegacy
)

// ShareholderResult is the normalized outcome of parsing a shareholder
// check response.
type ShareholderResult struct {
	Kind ShareholderResultKind
	ID   int64
}

var legacyResultPattern = regexp.MustCompile(`result:\s*(\d+)`)

// parseShareholderResponse tries the structured JSON format first and
// falls back to the legacy text format; both normalize to the same id.
func parseShareholderResponse(body string) ShareholderResult {
	var structured struct {
		Result json.Number `json:"result"`
	}
	if err := json.Unmarshal([]byte(body), &structured); err == nil && structured.Result != "" {
		if id, err := structured.Result.Int64(); err == nil {
			return ShareholderResult{Kind: ShareholderStructured, ID: id}
		}
	}

	if m := legacyResultPattern.FindStringSubmatch(body); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return ShareholderResult{Kind: ShareholderLegacy, ID: id}
		}
	}

	return ShareholderResult{Kind: ShareholderUnrecognized}
}

// isInvalidCredentials reports whether the body carries the invalid-keys
// marker.
func isInvalidCredentials(body string) bool {
	return strings.Contains(body, invalidKeysMarker)
}
