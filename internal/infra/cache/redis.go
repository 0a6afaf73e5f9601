package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// RedisAvailabilityCache guarda cada resultado como JSON e mantém, por
// barbeiro, um set com as chaves em uso para a invalidação por data.
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *RedisAvailabilityCache) Get(
	ctx context.Context,
	barberID uint,
	from, to time.Time,
) (*domain.AvailabilityResult, bool, error) {

	raw, err := c.client.Get(ctx, newRangeKey(barberID, from, to).String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var result domain.AvailabilityResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false, fmt.Errorf("decode cached availability: %w", err)
	}
	return &result, true, nil
}

func (c *RedisAvailabilityCache) Generation(ctx context.Context, barberID uint) (uint64, error) {
	gen, err := c.client.Get(ctx, generationKey(barberID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set vigia a chave de geração: um Invalidate concorrente aborta a
// transação e o resultado é descartado.
func (c *RedisAvailabilityCache) Set(
	ctx context.Context,
	barberID uint,
	from, to time.Time,
	gen uint64,
	result *domain.AvailabilityResult,
) (bool, error) {

	raw, err := json.Marshal(result)
	if err != nil {
		return false, err
	}

	key := newRangeKey(barberID, from, to).String()
	idx := indexKey(barberID)
	genKey := generationKey(barberID)

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			pipe.SAdd(ctx, idx, key)
			pipe.Expire(ctx, idx, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored, nil
}

func (c *RedisAvailabilityCache) Invalidate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) error {

	idx := indexKey(barberID)
	members, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		return err
	}

	day := date.Format(timezone.DateLayout)
	stale := make([]any, 0, len(members))
	keys := make([]string, 0, len(members))
	for _, m := range members {
		k, ok := parseRangeKey(m)
		if !ok || k.Covers(day) {
			stale = append(stale, m)
			keys = append(keys, m)
		}
	}

	// a geração sobe sempre, mesmo sem chave para apagar
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(barberID))
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
			pipe.SRem(ctx, idx, stale...)
		}
		return nil
	})
	return err
}

var _ domain.AvailabilityCache = (*RedisAvailabilityCache)(nil)
