package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorShape(t *testing.T) {
	err := NewValidationError(map[string]string{"productId": "required"})

	assert.Equal(t, ErrorKindValidation, err.Kind)
	assert.Equal(t, 400, err.HTTPStatus())
	assert.Equal(t, "required", err.Fields["productId"])
	assert.Contains(t, err.Error(), "productId")
}

func TestRemoteRejectionShape(t *testing.T) {
	err := NewRemoteRejection(map[string]string{"quantity_available": "must be positive"})

	assert.Equal(t, ErrorKindRemoteRejection, err.Kind)
	assert.Equal(t, 400, err.HTTPStatus())
	assert.Equal(t, "must be positive", err.Fields["quantity_available"])
}

func TestFatalErrorHidesDetail(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := NewFatalError("Admin API request failed", cause)

	assert.Equal(t, ErrorKindFatal, err.Kind)
	assert.Equal(t, 500, err.HTTPStatus())
	assert.Equal(t, FatalUserMessage, err.UserMessage())
	assert.NotContains(t, err.UserMessage(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestNonFatalUserMessagePassesThrough(t *testing.T) {
	err := NewValidationError(map[string]string{"deadline": "required"})
	assert.Equal(t, err.Message, err.UserMessage())
}

func TestAsWorkflowErrorWrapsUnknownErrors(t *testing.T) {
	plain := errors.New("boom")
	wrapped := AsWorkflowError(plain)

	assert.Equal(t, ErrorKindFatal, wrapped.Kind)
	assert.ErrorIs(t, wrapped, plain)

	// Already-workflow errors pass through unchanged.
	validation := NewValidationError(map[string]string{"productId": "required"})
	assert.Same(t, validation, AsWorkflowError(validation))
}

func TestIsKind(t *testing.T) {
	err := NewRemoteRejection(map[string]string{"deadline": "in the past"})

	assert.True(t, IsKind(err, ErrorKindRemoteRejection))
	assert.False(t, IsKind(err, ErrorKindValidation))
	assert.False(t, IsKind(errors.New("boom"), ErrorKindFatal))
}
