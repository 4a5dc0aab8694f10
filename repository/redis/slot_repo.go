package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/careconnect/repository"
)

// SlotRepository keeps each slot as a plain string key without expiry.
type SlotRepository struct {
	client *redislib.Client
	prefix string
}

var (
	_ repository.SlotStore     = (*SlotRepository)(nil)
	_ repository.SlotClearer   = (*SlotRepository)(nil)
	_ repository.HealthChecker = (*SlotRepository)(nil)
)

// NewSlotRepository creates a Redis-backed slot store. Keys are namespaced with prefix.
func NewSlotRepository(client *redislib.Client, prefix string) *SlotRepository {
	return &SlotRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *SlotRepository) Load(ctx context.Context, key string) (string, bool, error) {
	result, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return result, true, nil
}

func (r *SlotRepository) Save(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *SlotRepository) Clear(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *SlotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SlotRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}
