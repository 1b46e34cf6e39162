package rovas

import "errors"

var (
	// ErrMissingCredentials indicates the API key pair is not configured.
	// Checked before any request is made.
	ErrMissingCredentials = errors.New("rovas credentials missing")

	// ErrInvalidCredentials indicates the service rejected the API key
	// pair, detected from the response body regardless of HTTP status.
	ErrInvalidCredentials = errors.New("rovas credentials invalid")

	// ErrNoShareholderID indicates the shareholder response carried no
	// recognizable participation id.
	ErrNoShareholderID = errors.New("no shareholder id in response")

	// ErrInvalidShareholderID indicates the service returned a zero or
	// negative participation id.
	ErrInvalidShareholderID = errors.New("invalid shareholder id")
)
