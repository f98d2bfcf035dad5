package errors

import "maps"

// ErrorBuilder assembles a ClassifiedError. Builders are single-use; Build
// copies the context so later WithContext calls do not leak into built errors.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a non-retryable, error-severity error.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		retry:    RetryNever,
		message:  message,
		context:  make(ErrorContext),
	}}
}

// WrapError starts an error whose cause is err.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithRetry(strategy RetryStrategy) *ErrorBuilder {
	b.err.retry = strategy
	return b
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context[key] = value
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Retryable marks the error for retry with backoff.
func (b *ErrorBuilder) Retryable() *ErrorBuilder { return b.WithRetry(RetryBackoff) }

// UserAction marks the error as needing the user to change something first.
func (b *ErrorBuilder) UserAction() *ErrorBuilder { return b.WithRetry(RetryUserAction) }

// Build returns the finished error.
func (b *ErrorBuilder) Build() *ClassifiedError {
	built := b.err
	built.context = maps.Clone(b.err.context)
	return &built
}

// ConfigError creates a configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal().UserAction()
}

// ValidationError creates a validation error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).UserAction()
}

// NotFoundError creates a not-found error for the named resource.
func NotFoundError(resource string) *ErrorBuilder {
	return NewError(CategoryNotFound, resource+" not found").WithContext("resource", resource)
}

// RateLimitError creates a rate limit error.
func RateLimitError(message string) *ErrorBuilder {
	return NewError(CategoryRateLimit, message).Warning().WithRetry(RetryRateLimit)
}

// NetworkError creates a network error (typically retryable).
func NetworkError(message string) *ErrorBuilder {
	return NewError(CategoryNetwork, message).Retryable()
}

// UpstreamError creates an error for a misbehaving remote API.
func UpstreamError(message string) *ErrorBuilder {
	return NewError(CategoryUpstream, message).Retryable()
}

// StorageError creates a persistence error.
func StorageError(message string) *ErrorBuilder {
	return NewError(CategoryStorage, message)
}

// MessagingError creates a message bus error.
func MessagingError(message string) *ErrorBuilder {
	return NewError(CategoryMessaging, message).Retryable()
}

// InternalError creates an internal error.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
