package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/logfields"
)

const connectTimeout = 2 * time.Second

// natsConn is the subset of *nats.Conn the publisher uses.
type natsConn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// NATSPublisher publishes transitions as JSON on a core NATS subject.
type NATSPublisher struct {
	conn    natsConn
	subject string
}

// NewNATSPublisher connects to url. The connection reconnects on its own;
// Publish reports failures while it is down.
func NewNATSPublisher(url, subject string, opts ...nats.Option) (*NATSPublisher, error) {
	opts = append([]nats.Option{
		nats.Name("bookmarker-healthpoll"),
		nats.Timeout(connectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS disconnected", logfields.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", logfields.URL(nc.ConnectedUrl()))
		}),
	}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryMessaging, "failed to connect to NATS").
			WithContext("url", url).
			Build()
	}
	slog.Info("NATS publisher ready", logfields.URL(url), logfields.Subject(subject))
	return newNATSPublisher(conn, subject), nil
}

func newNATSPublisher(conn natsConn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subject}
}

// Publish sends t and waits for the server to acknowledge the flush.
func (p *NATSPublisher) Publish(ctx context.Context, t Transition) error {
	data, err := json.Marshal(t)
	if err != nil {
		return derrors.InternalError("failed to marshal transition").WithCause(err).Build()
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return derrors.WrapError(err, derrors.CategoryMessaging, "failed to publish transition").
			WithContext("subject", p.subject).
			Retryable().
			Build()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return derrors.WrapError(err, derrors.CategoryMessaging, "failed to flush transition").
			WithContext("subject", p.subject).
			Retryable().
			Build()
	}
	slog.Debug("Published transition",
		slog.String("id", t.ID),
		logfields.Connected(t.Connected),
		logfields.Subject(p.subject))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
