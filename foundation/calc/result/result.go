// File: result.go
// Title: Deferred Success/Failure Container
// Description: Result holds either a value or an error so that a lex or
//              evaluation outcome can be stored, cached or handed across a
//              boundary before the caller decides how to react. Unlike a
//              plain optional it keeps the full error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package result

// Result holds exactly one of a success value or a failure. The zero value
// is a success holding the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps a value
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps an error. A nil error yields a success with the zero value.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Of captures a (value, error) return pair
func Of[T any](value T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

// From runs fn and captures its outcome
func From[T any](fn func() (T, error)) Result[T] {
	return Of(fn())
}

// IsSuccess reports whether the result holds a value
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// IsFailure reports whether the result holds an error
func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// Err returns the stored error, or nil on success
func (r Result[T]) Err() error {
	return r.err
}

// Get returns the value, or the zero value and the stored error
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Optional discards the error detail and reports only presence
func (r Result[T]) Optional() (T, bool) {
	if r.err != nil {
		var zero T
		return zero, false
	}
	return r.value, true
}

// OrElse returns the value, or fallback on failure
func (r Result[T]) OrElse(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Map transforms the success value; failures pass through unchanged
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return Success(fn(r.value))
}

// FlatMap chains a fallible step; failures pass through unchanged
func FlatMap[T, U any](r Result[T], fn func(T) (U, error)) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	return Of(fn(r.value))
}
