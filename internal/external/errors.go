package external

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDriver returned when the driver name is not registered
	ErrUnknownDriver = errors.New("unknown external driver")
	// ErrNotOK returned on non-2xx responses
	ErrNotOK = errors.New("provider responded with non-2xx status")
)

// StatusError carries the HTTP status of a non-2xx response
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrNotOK, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrNotOK
}
