package entities

import (
	"errors"
	"fmt"
)

// InvalidTransitionError is returned when a state change is attempted from a
// status that does not permit it. The record is left untouched.
type InvalidTransitionError struct {
	Resource   string
	Transition string
	From       string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition %q from status %q", e.Resource, e.Transition, e.From)
}

func newInvalidTransition(resource, transition, from string) *InvalidTransitionError {
	return &InvalidTransitionError{Resource: resource, Transition: transition, From: from}
}

// AlreadyExistsError reports an idempotent creation that found a pre-existing
// record. Callers resolve it by returning the existing record.
type AlreadyExistsError struct {
	Resource string
	ID       string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Resource, e.ID)
}

// ExternalServiceError wraps a failure or timeout of an external collaborator
// (the payment gateway). It is the only error a client is expected to retry.
type ExternalServiceError struct {
	Service   string
	Reason    string
	Message   string
	Retryable bool
	Err       error
}

func (e *ExternalServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s", e.Service, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s %s", e.Service, e.Reason)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// InvariantViolationError is fatal: a computed value failed its own arithmetic
// or consistency check and must never be persisted.
type InvariantViolationError struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", e.Invariant, e.Detail)
}

// PolicyError is a business rule refusal that is not a plain state-machine
// mismatch (e.g. cancelling a project whose funds are already held).
type PolicyError struct {
	Rule   string
	Detail string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy %s: %s", e.Rule, e.Detail)
}

// ErrForbiddenActor is returned when the caller is not the party allowed to
// perform an action on a project or quote.
var ErrForbiddenActor = errors.New("actor not allowed for this action")

// IsInvalidTransition reports whether err is (or wraps) an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

// IsExternalService reports whether err is (or wraps) an ExternalServiceError.
func IsExternalService(err error) bool {
	var target *ExternalServiceError
	return errors.As(err, &target)
}

// IsInvariantViolation reports whether err is (or wraps) an InvariantViolationError.
func IsInvariantViolation(err error) bool {
	var target *InvariantViolationError
	return errors.As(err, &target)
}

// IsPolicy reports whether err is (or wraps) a PolicyError.
func IsPolicy(err error) bool {
	var target *PolicyError
	return errors.As(err, &target)
}
