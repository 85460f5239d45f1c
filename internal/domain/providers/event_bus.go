package providers

import (
	"context"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// EventPublisher is the write side of an event sink
type EventPublisher interface {
	// Publish publishes an event on a channel (or topic)
	Publish(ctx context.Context, channel string, event *entities.DomainEvent) error
}

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	EventPublisher

	// Subscribe subscribes to events on a channel; the stream closes when ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.DomainEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channels
const (
	EventChannelAppointments = "salon:appointments"
	EventChannelCatalog      = "salon:catalog"
	EventChannelOrders       = "salon:orders"
)

// ChannelFor returns the channel an event type is published on
func ChannelFor(eventType entities.EventType) string {
	switch eventType {
	case entities.EventAppointmentCreated, entities.EventAppointmentUpdated,
		entities.EventAppointmentApproved, entities.EventAppointmentDeleted:
		return EventChannelAppointments
	case entities.EventOrderCreated:
		return EventChannelOrders
	default:
		return EventChannelCatalog
	}
}
