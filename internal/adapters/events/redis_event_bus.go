package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	redisclient "github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/redis"
)

const subscriberBuffer = 100

// subscription is the part of *redis.PubSub the bus relies on
type subscription interface {
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

type subscribeFunc func(ctx context.Context, channel string) subscription

// RedisEventBus implements the EventBus interface using Redis Pub/Sub.
// One Redis subscription per channel is shared by all local subscribers.
// mu guards subscriptions and orders hub membership changes against them.
type RedisEventBus struct {
	client        *redisclient.Client
	subscribe     subscribeFunc
	subscriptions map[string]subscription
	hub           *hub
	mu            sync.Mutex
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return newRedisEventBus(client, func(ctx context.Context, channel string) subscription {
		return client.Client().Subscribe(ctx, channel)
	})
}

func newRedisEventBus(client *redisclient.Client, subscribe subscribeFunc) *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:        client,
		subscribe:     subscribe,
		subscriptions: make(map[string]subscription),
		hub:           newHub(),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Publish publishes an event to all subscribers
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("channel", channel).Str("event_id", event.ID).Str("event_type", string(event.Type)).Msg("published event")
	return nil
}

// Subscribe subscribes to events on a channel
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.DomainEvent, error) {
	b.mu.Lock()
	if _, exists := b.subscriptions[channel]; !exists {
		sub := b.subscribe(b.ctx, channel)
		b.subscriptions[channel] = sub
		go b.receiveMessages(channel, sub)
	}
	eventChan, count := b.hub.add(channel)
	b.mu.Unlock()

	log.Info().Str("channel", channel).Int("subscribers", count).Msg("subscribed to channel")

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, eventChan)
	}()

	return eventChan, nil
}

// removeSubscriber drops one local subscriber and closes the Redis subscription
// when it was the last one. Both steps hold mu so a concurrent Subscribe either
// reuses a live subscription or creates a new one.
func (b *RedisEventBus) removeSubscriber(channel string, eventChan chan *entities.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hub.remove(channel, eventChan) {
		if err := b.closeSubscriptionLocked(channel); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to close subscription")
		}
	}
}

// receiveMessages receives messages from Redis and broadcasts them to subscribers
func (b *RedisEventBus) receiveMessages(channel string, sub subscription) {
	ch := sub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var event entities.DomainEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("failed to unmarshal event")
				continue
			}

			b.hub.broadcast(channel, &event)
		}
	}
}

func (b *RedisEventBus) closeSubscriptionLocked(channel string) error {
	sub, ok := b.subscriptions[channel]
	if !ok {
		return nil
	}
	delete(b.subscriptions, channel)
	if err := sub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription %s: %w", channel, err)
	}
	log.Info().Str("channel", channel).Msg("closed subscription")
	return nil
}

// Unsubscribe drops every local subscriber of a channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hub.closeChannel(channel)
	return b.closeSubscriptionLocked(channel)
}

// Close closes the event bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.Lock()
	channels := make([]string, 0, len(b.subscriptions))
	for channel := range b.subscriptions {
		channels = append(channels, channel)
	}
	b.mu.Unlock()

	var errs []error
	for _, channel := range channels {
		if err := b.Unsubscribe(context.Background(), channel); err != nil {
			errs = append(errs, err)
		}
	}

	log.Info().Msg("event bus closed")
	return errors.Join(errs...)
}

// hub fans events out to buffered local subscriber channels
type hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *entities.DomainEvent]struct{}
}

func newHub() *hub {
	return &hub{subscribers: make(map[string]map[chan *entities.DomainEvent]struct{})}
}

func (h *hub) add(channel string) (chan *entities.DomainEvent, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[channel] == nil {
		h.subscribers[channel] = make(map[chan *entities.DomainEvent]struct{})
	}
	eventChan := make(chan *entities.DomainEvent, subscriberBuffer)
	h.subscribers[channel][eventChan] = struct{}{}
	return eventChan, len(h.subscribers[channel])
}

// remove closes one subscriber and reports whether the channel has none left
func (h *hub) remove(channel string, eventChan chan *entities.DomainEvent) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.subscribers[channel]
	if !ok {
		return false
	}
	if _, ok := subscribers[eventChan]; !ok {
		return false
	}

	delete(subscribers, eventChan)
	close(eventChan)

	if len(subscribers) == 0 {
		delete(h.subscribers, channel)
		return true
	}
	return false
}

func (h *hub) closeChannel(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for subscriber := range h.subscribers[channel] {
		close(subscriber)
	}
	delete(h.subscribers, channel)
}

// broadcast never blocks; a full subscriber misses the event
func (h *hub) broadcast(channel string, event *entities.DomainEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for subscriber := range h.subscribers[channel] {
		select {
		case subscriber <- event:
			delivered++
		default:
			log.Warn().Str("channel", channel).Str("event_id", event.ID).Msg("subscriber channel full, skipping event")
		}
	}
	return delivered
}
