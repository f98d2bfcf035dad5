package healthpoll

import (
	"context"

	"github.com/matttelliott/bookmarker-ai/internal/events"
	"github.com/matttelliott/bookmarker-ai/internal/retry"
)

// Sink receives connection transitions. statuslog.Store satisfies it directly.
type Sink interface {
	Append(ctx context.Context, t events.Transition) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, t events.Transition) error

func (f SinkFunc) Append(ctx context.Context, t events.Transition) error { return f(ctx, t) }

// PublisherSink forwards transitions to an events.Publisher.
func PublisherSink(p events.Publisher) Sink {
	return SinkFunc(p.Publish)
}

// RetryingSink retries retryable Append failures on s according to p.
func RetryingSink(s Sink, p retry.Policy) Sink {
	return SinkFunc(func(ctx context.Context, t events.Transition) error {
		return retry.Do(ctx, p, func(ctx context.Context) error { return s.Append(ctx, t) })
	})
}
