package users

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = "userdir:cache:"
	}
	return &RedisCache{client: client, prefix: p}
}

func (c *RedisCache) keyList() string {
	return c.prefix + "users:list"
}

func (c *RedisCache) GetList(ctx context.Context) ([]*User, bool, error) {
	val, err := c.client.Get(ctx, c.keyList()).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var out []*User
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (c *RedisCache) SetList(ctx context.Context, users []*User, ttl time.Duration) error {
	payload, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.keyList(), payload, ttl).Err()
}

func (c *RedisCache) DeleteList(ctx context.Context) error {
	return c.client.Del(ctx, c.keyList()).Err()
}
