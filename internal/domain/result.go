package domain

import (
	"errors"
	"fmt"
)

// FailureKind categorizes why an operation produced a default value
type FailureKind string

const (
	// FailureRemote is a transport error or a non-success API status
	FailureRemote FailureKind = "remote"
	// FailureDecode is an API response that could not be decoded
	FailureDecode FailureKind = "decode"
	// FailureStore is a database error
	FailureStore FailureKind = "store"
)

// Failure records an operation that was degraded to absent, partial or empty
type Failure struct {
	Kind    FailureKind
	Op      string
	Subject string
	Err     error
}

func (f Failure) Error() string {
	if f.Subject == "" {
		return fmt.Sprintf("%s %s: %v", f.Kind, f.Op, f.Err)
	}
	return fmt.Sprintf("%s %s %q: %v", f.Kind, f.Op, f.Subject, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result holds either a value or the failure that replaced it with the zero value.
// An empty Value with a nil Failure is a genuine empty result.
type Result[T any] struct {
	Value   T
	Failure *Failure
}

// OK reports whether the value was produced without failure
func (r Result[T]) OK() bool {
	return r.Failure == nil
}

// Ok wraps a successfully produced value
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Failed wraps a failure; Value stays the zero value
func Failed[T any](f Failure) Result[T] {
	return Result[T]{Failure: &f}
}

// IsFailureKind reports whether err is a Failure of the given kind
func IsFailureKind(err error, kind FailureKind) bool {
	var f Failure
	if errors.As(err, &f) {
		return f.Kind == kind
	}
	return false
}
