//go:build integration

package events

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/redis"
	"github.com/sokebat/barber-frontend-sub000/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	cfg := &config.RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_REDIS_PORT", 6379),
		Password: getEnv("TEST_REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("TEST_REDIS_DB", 0),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err, "Failed to create redis client")
	return client
}

func waitForEvent(t *testing.T, ch <-chan *entities.DomainEvent) *entities.DomainEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "subscription closed before an event arrived")
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestRedisEventBusFanoutIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := NewRedisEventBus(redisClient)
	defer eventBus.Close()

	channel := providers.EventChannelAppointments
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel1()
	defer cancel2()

	sub1, err := eventBus.Subscribe(ctx1, channel)
	require.NoError(t, err)
	sub2, err := eventBus.Subscribe(ctx2, channel)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := entities.NewDomainEvent(
		entities.EventAppointmentCreated,
		entities.AggregateAppointment,
		"appt-redis-1",
		map[string]any{"specialistName": "Anna Reyes", "appointmentDate": "2030-01-02"},
	)

	require.NoError(t, eventBus.Publish(context.Background(), channel, event))

	received1 := waitForEvent(t, sub1)
	received2 := waitForEvent(t, sub2)

	assert.Equal(t, event.ID, received1.ID)
	assert.Equal(t, event.ID, received2.ID)
	assert.Equal(t, entities.EventAppointmentCreated, received1.Type)
	assert.JSONEq(t, string(event.Payload), string(received2.Payload))
}

func TestRedisEventBusUnsubscribeClosesSubscribers(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := NewRedisEventBus(redisClient)
	defer eventBus.Close()

	sub, err := eventBus.Subscribe(context.Background(), providers.EventChannelOrders)
	require.NoError(t, err)

	require.NoError(t, eventBus.Unsubscribe(context.Background(), providers.EventChannelOrders))

	select {
	case _, ok := <-sub:
		assert.False(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("subscription was not closed")
	}
}
