package errors

import (
	"errors"
	"fmt"
)

const (
	STAGE_BEFORE_REQUEST = "before-request"
	STAGE_REQUEST        = "request"
	STAGE_AFTER_REQUEST  = "after-request"

	TYPE_UNKNOWN      = "unknown"
	TYPE_JSON_PARSE   = "json"
	TYPE_REQUEST_PREP = "request-prep"
	TYPE_IO           = "io"
	TYPE_HTTP_STATUS  = "not-ok-http-status"
	TYPE_AUTH         = "auth"
	TYPE_BAD_REQUEST  = "bad-request"
	TYPE_RATE_LIMITED = "rate-limited"
)

// ApiError is the Failure side of every call to the Ticketmaster API:
// a request that produced no usable response. A response that arrived
// with an unexpected status is only turned into an ApiError by the
// caller that decided the status is unusable (TYPE_HTTP_STATUS).
type ApiError struct {
	Stage          string
	Type           string
	SourceErr      error
	Body           []byte
	HttpStatusCode int
}

var _ error = &ApiError{}

func (e *ApiError) Error() string {
	var err string
	if e.SourceErr != nil {
		err = e.SourceErr.Error()
	} else {
		err = string(e.Body)
	}
	return fmt.Sprintf(
		"http request to Ticketmaster failed during '%s' stage with error type '%s', httpStatus: '%d'; original err: %v",
		e.Stage, e.Type, e.HttpStatusCode, err,
	)
}

func (e *ApiError) Unwrap() error {
	return e.SourceErr
}

// Is method is required by errors.Is() to properly distinguish between
// different types -vs- same pointer to the same type.
// Without it, errors.Is(err, &ApiError{}) returns false:
// ok := errors.Is(errors.Join(&ticketmaster_errors.ApiError{}), &ticketmaster_errors.ApiError{})
// ^ would be false
func (e *ApiError) Is(other error) bool {
	var err *ApiError
	return errors.As(other, &err) && err != nil
}

// IsType reports whether err is an *ApiError of the given type.
func IsType(err error, errType string) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr) && apiErr.Type == errType
}

// ValidationError means the scraper input was rejected.
// No request is ever sent when one is returned.
type ValidationError struct {
	Message string
}

var _ error = &ValidationError{}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(other error) bool {
	var err *ValidationError
	return errors.As(other, &err) && err != nil
}
