package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

func init() {
	Register("redis", func(opt Options) (Store, error) {
		client := redis.NewClient(&redis.Options{
			Addr:     opt.RedisAddr,
			Password: opt.RedisPassword,
			DB:       opt.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %v: %w", opt.RedisAddr, err)
		}
		return NewRedisStore(client), nil
	})
}

// RedisStore relies on native key expiration.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string, v interface{}) error {
	b, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrKeyNotFound
		}
		return err
	}
	return jsoniter.Unmarshal(b, v)
}

func (s *RedisStore) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	b, err := jsoniter.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
