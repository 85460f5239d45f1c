package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
)

// CatalogChange is the payload of a catalog.changed event
type CatalogChange struct {
	Action string `json:"action"`
}

const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

// publishCatalogChange announces a catalog mutation. Failures are logged; the write already succeeded.
func publishCatalogChange(ctx context.Context, events providers.EventPublisher, aggregate entities.Aggregate, id, action string) {
	if events == nil {
		return
	}
	event := entities.NewDomainEvent(entities.EventCatalogChanged, aggregate, id, CatalogChange{Action: action})
	if err := events.Publish(ctx, providers.EventChannelCatalog, event); err != nil {
		log.Warn().Err(err).Str("aggregate", string(aggregate)).Str("id", id).Msg("failed to publish catalog event")
	}
}
