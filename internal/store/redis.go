package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPersister stores the blob as a single string key named after the namespace
type RedisPersister struct {
	client    *redis.Client
	namespace string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisPersister connects to Redis and verifies the connection
func NewRedisPersister(ctx context.Context, cfg RedisConfig, namespace string) (*RedisPersister, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisPersisterWithClient(client, namespace), nil
}

// NewRedisPersisterWithClient wraps an existing client
func NewRedisPersisterWithClient(client *redis.Client, namespace string) *RedisPersister {
	return &RedisPersister{client: client, namespace: namespace}
}

func (p *RedisPersister) Load(ctx context.Context) ([]byte, error) {
	data, err := p.client.Get(ctx, p.namespace).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state from redis: %w", err)
	}
	return data, nil
}

func (p *RedisPersister) Save(ctx context.Context, blob []byte) error {
	if err := p.client.Set(ctx, p.namespace, blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to save state to redis: %w", err)
	}
	return nil
}

func (p *RedisPersister) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *RedisPersister) Close() error {
	return p.client.Close()
}
