package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuestionSet is returned when a session is started without questions.
	ErrEmptyQuestionSet = errors.New("question set is empty")
	// ErrInvalidState indicates an engine operation was called outside its required state.
	ErrInvalidState = errors.New("invalid session state")

	// ErrNetworkFailure means the provider request could not complete.
	ErrNetworkFailure = errors.New("network failure")
	// ErrBadStatus means the provider answered with a non-success status.
	ErrBadStatus = errors.New("bad provider status")
	// ErrMalformedPayload means the provider response did not parse into the expected shape.
	ErrMalformedPayload = errors.New("malformed provider payload")
	// ErrNoQuestionsAvailable means the provider answered but had no questions.
	ErrNoQuestionsAvailable = errors.New("no questions available")
)

// FetchError is returned by providers and the fetch gateway. Kind is one of the
// fetch sentinels above so callers can use errors.Is.
type FetchError struct {
	Kind   error
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == e.Kind }

// NewFetchError builds a FetchError of the given kind.
func NewFetchError(kind error, op string, err error) *FetchError {
	return &FetchError{Kind: kind, Op: op, Err: err}
}

// StateError reports which operation was rejected and in which state.
type StateError struct {
	Op    string
	State SessionState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s in state %s", e.Op, ErrInvalidState, e.State)
}

func (e *StateError) Is(target error) bool { return target == ErrInvalidState }
