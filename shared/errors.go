package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrorKind classifies workflow failures into the three outcomes the admin
// surface distinguishes.
type ErrorKind string

const (
	// ErrorKindValidation is a local precondition failure: required fields
	// missing or malformed. No remote call was made.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindRemoteRejection is an upstream business-rule rejection
	// surfaced per field by the platform.
	ErrorKindRemoteRejection ErrorKind = "remote_rejection"
	// ErrorKindFatal is a transport or unexpected failure. Only a generic
	// message is shown to the merchant; the cause is logged.
	ErrorKindFatal ErrorKind = "fatal"
)

// FatalUserMessage is the opaque message shown for fatal failures. Internal
// detail never reaches the merchant.
const FatalUserMessage = "An unexpected error occurred. Please try again."

// WorkflowError is the structured error returned by raffle operations.
// Validation and remote-rejection errors carry a field-to-message map so the
// form can attach inline messages.
type WorkflowError struct {
	Kind    ErrorKind         `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Cause   error             `json:"-"`
}

func (e *WorkflowError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Message, strings.Join(names, ", "))
}

func (e *WorkflowError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the message safe to render to the merchant.
func (e *WorkflowError) UserMessage() string {
	if e.Kind == ErrorKindFatal {
		return FatalUserMessage
	}
	return e.Message
}

// HTTPStatus maps the error kind to its HTTP-equivalent status code.
func (e *WorkflowError) HTTPStatus() int {
	if e.Kind == ErrorKindFatal {
		return 500
	}
	return 400
}

// LogError logs the error with structured fields. Fatal errors include the
// underlying cause, which is never exposed in responses.
func (e *WorkflowError) LogError(operation string) {
	entry := logrus.WithFields(logrus.Fields{
		"error_kind": e.Kind,
		"operation":  operation,
		"fields":     e.Fields,
	})
	if e.Kind == ErrorKindFatal {
		entry.WithError(e.Cause).Error(e.Message)
		return
	}
	entry.Warn(e.Message)
}

// NewValidationError builds a field-addressable validation error.
func NewValidationError(fields map[string]string) *WorkflowError {
	return &WorkflowError{
		Kind:    ErrorKindValidation,
		Message: "Required fields are missing or invalid",
		Fields:  fields,
	}
}

// NewRemoteRejection builds a per-field rejection surfaced by the platform.
func NewRemoteRejection(fields map[string]string) *WorkflowError {
	return &WorkflowError{
		Kind:    ErrorKindRemoteRejection,
		Message: "The platform rejected the submitted fields",
		Fields:  fields,
	}
}

// NewFatalError wraps a transport or unexpected failure.
func NewFatalError(message string, cause error) *WorkflowError {
	return &WorkflowError{
		Kind:    ErrorKindFatal,
		Message: message,
		Cause:   cause,
	}
}

// AsWorkflowError extracts a WorkflowError from err, wrapping unknown errors
// as fatal so handlers always have a renderable shape.
func AsWorkflowError(err error) *WorkflowError {
	var workflowErr *WorkflowError
	if errors.As(err, &workflowErr) {
		return workflowErr
	}
	return NewFatalError("unexpected error", err)
}

// IsKind reports whether err is a WorkflowError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var workflowErr *WorkflowError
	return errors.As(err, &workflowErr) && workflowErr.Kind == kind
}
