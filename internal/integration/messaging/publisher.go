// Package messaging publishes domain events to NATS.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/catering-ops/backend/internal/application/adapter"
)

// conn is the subset of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher implements adapter.EventPublisher over a NATS connection.
type NATSPublisher struct {
	conn   conn
	prefix string
}

// NewNATSPublisher connects to the NATS server at url.
// Every subject is prefixed with prefix when it is not empty.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("catering-ops-api"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: nc, prefix: prefix}, nil
}

// Publish encodes payload as JSON and publishes it on subject.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := p.conn.Publish(p.subject(subject), data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

func (p *NATSPublisher) subject(s string) string {
	if p.prefix == "" {
		return s
	}
	return p.prefix + "." + s
}

// NopPublisher discards every event. Used when NATS is not configured.
type NopPublisher struct{}

// Publish implements adapter.EventPublisher.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }

var (
	_ adapter.EventPublisher = (*NATSPublisher)(nil)
	_ adapter.EventPublisher = NopPublisher{}
)
