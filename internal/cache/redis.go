package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TaxonomyCache remembers WordPress term ids by name so repeated
// get-or-create calls skip the search round-trip. The cache is advisory:
// callers treat errors and misses the same way.
type TaxonomyCache interface {
	GetTermID(ctx context.Context, taxonomy, name string) (int, bool, error)
	SetTermID(ctx context.Context, taxonomy, name string, id int) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(url, prefix string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) GetTermID(ctx context.Context, taxonomy, name string) (int, bool, error) {
	val, err := r.client.Get(ctx, r.key(taxonomy, name)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get error: %w", err)
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("invalid cached term id %q: %w", val, err)
	}
	return id, true, nil
}

func (r *RedisCache) SetTermID(ctx context.Context, taxonomy, name string, id int) error {
	return r.client.Set(ctx, r.key(taxonomy, name), strconv.Itoa(id), r.ttl).Err()
}

func (r *RedisCache) key(taxonomy, name string) string {
	return r.prefix + "term:" + taxonomy + ":" + name
}
