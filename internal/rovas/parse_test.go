package rovas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseShareholderResponse_Structured(t *testing.T) {
	res := parseShareholderResponse(`{"result": 56744}`)
	assert.Equal(t, ShareholderStructured, res.Kind)
	assert.Equal(t, int64(56744), res.ID)
}

func TestParseShareholderResponse_StructuredZero(t *testing.T) {
	res := parseShareholderResponse(`{"result": 0}`)
	assert.Equal(t, ShareholderStructured, res.Kind)
	assert.Equal(t, int64(0), res.ID)
}

func TestParseShareholderResponse_Legacy(t *testing.T) {
	res := parseShareholderResponse(`shareholder confirmed, result: 9912`)
	assert.Equal(t, ShareholderLegacy, res.Kind)
	assert.Equal(t, int64(9912), res.ID)
}

func TestParseShareholderResponse_StructuredPreferredOverLegacy(t *testing.T) {
	res := parseShareholderResponse(`{"result": 7, "message": "result: 999"}`)
	assert.Equal(t, ShareholderStructured, res.Kind)
	assert.Equal(t, int64(7), res.ID)
}

func TestParseShareholderResponse_Unrecognized(t *testing.T) {
	for _, body := range []string{"", "ok", `{"status":"fine"}`, `{"result": "abc"}`} {
		res := parseShareholderResponse(body)
		assert.Equal(t, ShareholderUnrecognized, res.Kind, "body %q", body)
	}
}

func TestIsInvalidCredentials(t *testing.T) {
	assert.True(t, isInvalidCredentials(`Error: The API keys sent are invalid.`))
	assert.False(t, isInvalidCredentials(`{"result": 1}`))
}
