package omp

import (
	"errors"
	"fmt"
)

// Sentinel errors for protocol outcomes.
var (
	// ErrStatusMissing indicates a response whose status attribute is
	// absent, empty, or not a number.
	ErrStatusMissing = errors.New("omp: response status missing or malformed")

	// ErrAuthRejected indicates the manager refused the credentials.
	ErrAuthRejected = errors.New("omp: authentication rejected")

	// ErrTaskFailed indicates a task reached a failed terminal run state.
	ErrTaskFailed = errors.New("omp: task failed")

	// ErrTaskVanished indicates the manager no longer reports the task.
	ErrTaskVanished = errors.New("omp: task no longer known to the manager")
)

// StatusError is a syntactically valid response whose status code is outside
// the success class. The full numeric code is always carried; callers that
// only care whether the operation succeeded can treat any StatusError as
// failure.
type StatusError struct {
	// Status is the raw status attribute value, e.g. "400".
	Status string

	// Code is the parsed numeric status.
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("omp: manager returned status %s", e.Status)
}

// IsServiceUnavailable reports whether the manager is not ready yet.
func (e *StatusError) IsServiceUnavailable() bool {
	return e.Code == 503
}

// StatusCode extracts the numeric status code from an error chain.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// MissingElementError is a response that succeeded at the protocol level but
// lacks an element the operation requires, e.g. no task_id child after a
// create, or no matching task entry in a status listing.
type MissingElementError struct {
	Element string
}

// Error implements the error interface.
func (e *MissingElementError) Error() string {
	return fmt.Sprintf("omp: response missing expected %s element", e.Element)
}
