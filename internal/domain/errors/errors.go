package errors

import "errors"

var (
	// ErrMissingToken is returned when an operation needs the backend
	// bearer token and the session has none. Fatal for that operation,
	// never retried.
	ErrMissingToken = errors.New("missing auth token")

	ErrNotFound            = errors.New("not found")
	ErrPlatformNotSyncable = errors.New("platform has no sync endpoint")
	ErrInvalidInterval     = errors.New("interval must be between 1 and 60 minutes")
	ErrInvalidStatus       = errors.New("invalid order status")
)
