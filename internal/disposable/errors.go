package disposable

import "errors"

var (
	// ErrNoSourceURL returned when no source URL is configured
	ErrNoSourceURL = errors.New("no source URL configured")
	// ErrNoPath returned when no output file path is configured
	ErrNoPath = errors.New("no output file path configured")
	// ErrHTTPStatus returned on non-2xx response of the source
	ErrHTTPStatus = errors.New("failed to fetch disposable domains")
	// ErrTooLarge returned when the response body exceeds the size limit
	ErrTooLarge = errors.New("response body exceeds maximum allowed size")
	// ErrEmptyList returned when nothing is left after normalization
	ErrEmptyList = errors.New("normalized list is empty")
)
