// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Order event subjects.
const (
	SubjectOrderCreated       = "orders.created"
	SubjectOrderStatusChanged = "orders.status_changed"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	// Publish sends payload, encoded as JSON, on the given subject.
	Publish(ctx context.Context, subject string, payload any) error
}
