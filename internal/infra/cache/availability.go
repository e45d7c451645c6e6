package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const availabilityKeyPrefix = "lot:availability:"

// AvailabilityCache keeps lot availability views in Redis for a short TTL.
// Entries are dropped after every committed capacity change.
type AvailabilityCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewAvailabilityCache(client redis.Cmdable, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *AvailabilityCache) Get(ctx context.Context, lotID uuid.UUID) (*queries.LotAvailabilityView, error) {
	data, err := c.client.Get(ctx, availabilityKey(lotID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "redis get availability")
	}

	var view queries.LotAvailabilityView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, errs.Wrap(err, "decode cached availability")
	}
	return &view, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, view *queries.LotAvailabilityView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return errs.Wrap(err, "encode availability")
	}
	if err := c.client.Set(ctx, availabilityKey(view.LotID), data, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set availability")
	}
	return nil
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, lotID uuid.UUID) error {
	if err := c.client.Del(ctx, availabilityKey(lotID)).Err(); err != nil {
		return errs.Wrap(err, "redis delete availability")
	}
	return nil
}

func availabilityKey(lotID uuid.UUID) string {
	return availabilityKeyPrefix + lotID.String()
}

// Noop is used when Redis is disabled: every read misses.
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID) (*queries.LotAvailabilityView, error) {
	return nil, nil
}

func (Noop) Set(context.Context, *queries.LotAvailabilityView) error { return nil }

func (Noop) Invalidate(context.Context, uuid.UUID) error { return nil }
