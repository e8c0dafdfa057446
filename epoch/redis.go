package epoch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis shares epochs across processes and survives restarts.
// An optional TTL keeps idle namespaces from piling up. When an epoch key
// expires readers fall back to epoch 0, which can only revive entries that
// still hold correct results.
type Redis struct {
	rdb redis.UniversalClient
	ttl time.Duration // 0 disables expiry
}

var _ Store = (*Redis)(nil)

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{rdb: client}
}

// NewRedisWithTTL refreshes ttl on every bump. If ttl <= 0, keys do not expire.
func NewRedisWithTTL(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{rdb: client, ttl: ttl}
}

func (s *Redis) key(ns string) string { return "epoch:" + ns }

func (s *Redis) Current(ctx context.Context, ns string) (uint64, error) {
	res, err := s.rdb.Get(ctx, s.key(ns)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(res, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis epoch parse: %w", err)
	}
	return u, nil
}

// Bump pipelines INCR and EXPIRE when a TTL is set.
func (s *Redis) Bump(ctx context.Context, ns string) (uint64, error) {
	k := s.key(ns)
	if s.ttl <= 0 {
		return s.rdb.Incr(ctx, k).Uint64()
	}

	var incr *redis.IntCmd
	_, err := s.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(incr.Val()), nil
}

// Close is a no-op; the caller owns the client.
func (s *Redis) Close(context.Context) error { return nil }
