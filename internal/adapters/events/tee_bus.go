package events

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
)

// TeeBus is an EventBus that also copies every published event to secondary sinks.
// Secondary failures are logged, never returned.
type TeeBus struct {
	providers.EventBus
	sinks []providers.EventPublisher
}

// NewTeeBus wraps bus; with no sinks it returns bus unchanged
func NewTeeBus(bus providers.EventBus, sinks ...providers.EventPublisher) providers.EventBus {
	if len(sinks) == 0 {
		return bus
	}
	return &TeeBus{EventBus: bus, sinks: sinks}
}

func (t *TeeBus) Publish(ctx context.Context, channel string, event *entities.DomainEvent) error {
	err := t.EventBus.Publish(ctx, channel, event)
	for _, sink := range t.sinks {
		if sinkErr := sink.Publish(ctx, channel, event); sinkErr != nil {
			log.Warn().Err(sinkErr).Str("event_id", event.ID).Msg("secondary event sink failed")
		}
	}
	return err
}
