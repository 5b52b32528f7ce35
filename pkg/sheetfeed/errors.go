package sheetfeed

import (
	"errors"
	"fmt"
)

// ErrMissingSheetID indicates the config has no spreadsheet identifier.
var ErrMissingSheetID = errors.New("sheet id not configured (set sheet_id or SHEET_ID)")

// ErrMissingAPIKey indicates the config has no API key.
var ErrMissingAPIKey = errors.New("api key not configured (set api_key or GOOGLE_API_KEY)")

// ErrTransport indicates the request failed or returned a non-2xx status.
var ErrTransport = errors.New("transport failure")

// ErrDecode indicates the response body was not a valid values envelope.
var ErrDecode = errors.New("malformed response")

// ErrUpstream indicates the response carried an error object.
var ErrUpstream = errors.New("upstream error")

// Fetch stages reported in FetchError.
const (
	StageRequest  = "request"
	StageStatus   = "status"
	StageDecode   = "decode"
	StageUpstream = "upstream"
)

// ConfigError represents an invalid config field.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config field %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// FetchError represents a failed fetch of a single tab.
type FetchError struct {
	Tab   string
	Stage string // "request", "status", "decode", "upstream"
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error for tab %q (%s): %v", e.Tab, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(tab, stage string, err error) *FetchError {
	return &FetchError{
		Tab:   tab,
		Stage: stage,
		Err:   err,
	}
}
