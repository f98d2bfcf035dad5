// Package errors provides the classified error primitives used across bookmarker.
//
// A ClassifiedError carries a category, a severity, a retry strategy and a
// structured context map. Errors are built with the fluent ErrorBuilder and
// presented by the HTTP and CLI adapters.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryUpstream, "health check failed").
//		WithSeverity(errors.SeverityWarning).
//		WithRetry(errors.RetryBackoff).
//		WithContext("url", apiURL).
//		WithCause(originalErr).
//		Build()
package errors
