package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
)

// cacheTargets maps a catalog aggregate to the key patterns holding copies of it
var cacheTargets = map[entities.Aggregate][]string{
	entities.AggregateProduct: {
		providers.CacheKeyProducts + "*",
		providers.CacheKeyHTTPResponses + "/Product*",
	},
	entities.AggregateCategory: {
		providers.CacheKeyCategories + "*",
		providers.CacheKeyHTTPResponses + "/Category*",
	},
	entities.AggregateServiceCategory: {
		providers.CacheKeyServices + "*",
		providers.CacheKeyHTTPResponses + "/OurServices*",
	},
	entities.AggregateTeamMember: {
		providers.CacheKeyTeam + "*",
		providers.CacheKeyHTTPResponses + "/Team*",
	},
}

// CacheInvalidationService handles cache invalidation based on events
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for catalog events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelCatalog)
	if err != nil {
		return fmt.Errorf("failed to subscribe to catalog events: %w", err)
	}

	s.started = true
	go s.processEvents(eventChan)
	log.Info().Str("channel", providers.EventChannelCatalog).Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service and waits for the worker to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	if s.started {
		<-s.done
	}
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.DomainEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.DomainEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.InvalidateAggregate(ctx, event.Aggregate); err != nil {
		log.Warn().Err(err).Str("event_id", event.ID).Str("aggregate", string(event.Aggregate)).Msg("cache invalidation failed")
		return
	}
	log.Debug().Str("event_id", event.ID).Str("aggregate", string(event.Aggregate)).Msg("invalidated catalog cache")
}

// InvalidateAggregate drops repository and HTTP response copies of one catalog resource
func (s *CacheInvalidationService) InvalidateAggregate(ctx context.Context, aggregate entities.Aggregate) error {
	patterns, ok := cacheTargets[aggregate]
	if !ok {
		return nil
	}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
	}
	return nil
}

// InvalidateAll clears every catalog and HTTP response key.
// This should only be called during maintenance or after a bulk import.
func (s *CacheInvalidationService) InvalidateAll(ctx context.Context) error {
	patterns := []string{
		providers.CacheKeyCatalogWildcard,
		providers.CacheKeyHTTPResponses + "*",
	}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
		log.Info().Str("pattern", pattern).Msg("invalidated cache pattern")
	}
	return nil
}
