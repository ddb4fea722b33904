package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ApiError_Error(t *testing.T) {
	err := &ApiError{
		Stage:          STAGE_AFTER_REQUEST,
		Type:           TYPE_AUTH,
		Body:           []byte(`{"fault":"invalid key"}`),
		HttpStatusCode: 401,
	}
	assert.Equal(t,
		"http request to Ticketmaster failed during 'after-request' stage with error type 'auth', httpStatus: '401'; original err: {\"fault\":\"invalid key\"}",
		err.Error(),
	)

	err2 := &ApiError{
		Stage:     STAGE_REQUEST,
		Type:      TYPE_IO,
		SourceErr: io.ErrUnexpectedEOF,
	}
	assert.Contains(t, err2.Error(), "unexpected EOF")
	assert.True(t, errors.Is(err2, io.ErrUnexpectedEOF))
}

func Test_ApiError_Is(t *testing.T) {
	var err error = &ApiError{Type: TYPE_RATE_LIMITED}
	joined := errors.Join(fmt.Errorf("wrapped: %w", err))

	assert.True(t, errors.Is(joined, &ApiError{}))
	assert.True(t, IsType(joined, TYPE_RATE_LIMITED))
	assert.False(t, IsType(joined, TYPE_AUTH))
	assert.False(t, IsType(io.EOF, TYPE_AUTH))
}

func Test_ValidationError(t *testing.T) {
	err := NewValidationError("Invalid unit: '%s'. Use 'miles' or 'km'.", "yards")
	assert.Equal(t, "Invalid unit: 'yards'. Use 'miles' or 'km'.", err.Error())
	assert.True(t, errors.Is(fmt.Errorf("input: %w", err), &ValidationError{}))
	assert.False(t, errors.Is(err, &ApiError{}))
}
