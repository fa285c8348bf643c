package db

import (
	"context"
	"fmt"
	"time"
)

var ErrKeyNotFound = fmt.Errorf("key not found")

// Store is a key-value store of JSON values with per-key expiration.
type Store interface {
	// Get decodes the value of key into v. It returns ErrKeyNotFound if the key is absent or expired.
	Get(ctx context.Context, key string, v interface{}) error
	// Set stores v under key. A zero ttl means never expire.
	Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Options struct {
	// Dir is the data directory of file based stores.
	Dir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type Creator func(opt Options) (Store, error)

var creatorMapping = make(map[string]Creator)

func Register(name string, creator Creator) {
	creatorMapping[name] = creator
}

func NewStore(name string, opt Options) (Store, error) {
	creator, ok := creatorMapping[name]
	if !ok {
		return nil, fmt.Errorf("unexpected store: %v", name)
	}
	return creator(opt)
}
