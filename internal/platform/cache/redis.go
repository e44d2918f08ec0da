package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/eventick/eventick/internal/core/domain"
)

// NewRedisClient creates a Redis client and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     100,
		MinIdleConns: 10,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logrus.Info("Redis connected")
	return client, nil
}

// HealthCheck pings Redis with a short deadline.
func HealthCheck(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// EventCache is a Redis read-through cache for the event read model. Tier
// mutations invalidate the key so availability never goes stale for longer
// than one read.
type EventCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewEventCache(rdb *redis.Client, ttl time.Duration) *EventCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &EventCache{rdb: rdb, ttl: ttl}
}

func eventKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event:%s", eventID)
}

// GetEvent returns the cached read model, or nil on a miss. A corrupt
// cached value counts as a miss rather than an error.
func (c *EventCache) GetEvent(ctx context.Context, eventID uuid.UUID) (*domain.EventWithTiers, error) {
	data, err := c.rdb.Get(ctx, eventKey(eventID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var event domain.EventWithTiers
	if err := json.Unmarshal(data, &event); err != nil {
		logrus.WithError(err).WithField("event_id", eventID).Warn("dropping corrupt cache entry")
		_ = c.rdb.Del(ctx, eventKey(eventID)).Err()
		return nil, nil
	}
	return &event, nil
}

func (c *EventCache) SetEvent(ctx context.Context, event *domain.EventWithTiers) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return c.rdb.Set(ctx, eventKey(event.Event.ID), data, c.ttl).Err()
}

func (c *EventCache) Invalidate(ctx context.Context, eventID uuid.UUID) error {
	return c.rdb.Del(ctx, eventKey(eventID)).Err()
}
