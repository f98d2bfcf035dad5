// Package foundation provides generic utilities for type-safe operations.
package foundation

import (
	"errors"
	"fmt"
)

// ErrUnwrapFailure is the sentinel carried by the panic raised when
// DangerouslyUnwrap is called on a failed Result.
var ErrUnwrapFailure = errors.New("attempted to unwrap an error result")

// UnwrapError is the panic value raised by DangerouslyUnwrap on a failure.
// It matches ErrUnwrapFailure with errors.Is and keeps the failure payload.
type UnwrapError struct {
	Payload any
}

func (e *UnwrapError) Error() string {
	return fmt.Sprintf("%s: %v", ErrUnwrapFailure.Error(), e.Payload)
}

func (e *UnwrapError) Unwrap() error {
	return ErrUnwrapFailure
}

// Result represents an operation that either succeeded with a T or failed with an E.
// It is a closed two-variant value: exactly one of the payloads is meaningful,
// and the variant never changes after construction.
type Result[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Outcome is a Result whose failure payload is a plain error.
type Outcome[T any] = Result[T, error]

// Success creates a successful Result with the given value.
func Success[T, E any](value T) Result[T, E] {
	return Result[T, E]{value: value, ok: true}
}

// Failure creates a failed Result with the given error payload.
func Failure[T, E any](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// Ok creates a successful Outcome. The failure type defaults to error.
func Ok[T any](value T) Outcome[T] {
	return Success[T, error](value)
}

// Err creates a failed Outcome. The failure type defaults to error.
func Err[T any](err error) Outcome[T] {
	return Failure[T](err)
}

// IsSuccess returns true if the Result holds a value.
func (r Result[T, E]) IsSuccess() bool {
	return r.ok
}

// IsFailure returns true if the Result holds an error payload.
func (r Result[T, E]) IsFailure() bool {
	return !r.ok
}

// Value returns the success payload and true, or the zero T and false.
func (r Result[T, E]) Value() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err returns the failure payload and true, or the zero E and false.
func (r Result[T, E]) Err() (E, bool) {
	if r.ok {
		var zero E
		return zero, false
	}
	return r.err, true
}

// DangerouslyUnwrap returns the value if successful and panics with an
// *UnwrapError otherwise. Use it only where success has already been proven.
func (r Result[T, E]) DangerouslyUnwrap() T {
	if !r.ok {
		panic(&UnwrapError{Payload: r.err})
	}
	return r.value
}

// UnwrapOr returns the value if successful, otherwise the fallback.
func (r Result[T, E]) UnwrapOr(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

// String renders the variant and payload, e.g. Success(5) or Failure(bad).
func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Success(%v)", r.value)
	}
	return fmt.Sprintf("Failure(%v)", r.err)
}

// Map transforms a successful Result[T, E] to Result[U, E] using fn.
// A failure passes through with its payload untouched and fn is not called.
func Map[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if r.ok {
		return Success[U, E](fn(r.value))
	}
	return Failure[U](r.err)
}

// FlatMap chains a fallible step onto a successful Result.
func FlatMap[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if r.ok {
		return fn(r.value)
	}
	return Failure[U](r.err)
}

// MapErr transforms the failure payload of a Result.
func MapErr[T, E1, E2 any](r Result[T, E1], fn func(E1) E2) Result[T, E2] {
	if r.ok {
		return Success[T, E2](r.value)
	}
	return Failure[T](fn(r.err))
}

// Match folds both variants into a single value. Both branches are required.
func Match[T, E, R any](r Result[T, E], onSuccess func(T) R, onFailure func(E) R) R {
	if r.ok {
		return onSuccess(r.value)
	}
	return onFailure(r.err)
}

// ToTuple converts an Outcome to the traditional Go (value, error) pair.
// A failure built from a nil error still yields a non-nil error,
// ErrUnwrapFailure, so it cannot be mistaken for a success.
func ToTuple[T any](r Outcome[T]) (T, error) {
	if r.ok {
		return r.value, nil
	}
	var zero T
	if r.err == nil {
		return zero, ErrUnwrapFailure
	}
	return zero, r.err
}

// FromTuple creates an Outcome from the traditional Go (value, error) pair.
func FromTuple[T any](value T, err error) Outcome[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(value)
}
