package entities

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTransient       = errors.New("transient failure")
	ErrLinkExpired     = errors.New("share link expired")
)

// NotFoundError is returned when an id is absent from a store.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidArgumentError is returned for malformed input, before any state is touched.
type InvalidArgumentError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// TransientError marks a failure of a remote backend that may succeed on retry.
// The in-memory stores never produce it.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient failure: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func (e *TransientError) Is(target error) bool {
	return target == ErrTransient
}

// LinkExpiredError is returned when an expired share link is used.
type LinkExpiredError struct {
	ID        string
	ExpiredAt time.Time
}

func (e *LinkExpiredError) Error() string {
	return fmt.Sprintf("share link %s expired at %s", e.ID, e.ExpiredAt.Format(time.RFC3339))
}

func (e *LinkExpiredError) Is(target error) bool {
	return target == ErrLinkExpired
}

// IsRetryable reports whether a caller may surface err as a retryable message.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrTransient)
}
