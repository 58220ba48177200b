// Package cache holds the program list read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baharkarakas/program-catalog/internal/models"
)

const programsKey = "catalog:programs"

// ErrMiss is returned by Get when nothing is cached.
var ErrMiss = errors.New("cache miss")

type Programs interface {
	Get(ctx context.Context) ([]models.Program, error)
	Set(ctx context.Context, list []models.Program) error
	Invalidate(ctx context.Context) error
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect dials redis and verifies the connection.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

type RedisPrograms struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPrograms(client *redis.Client, ttl time.Duration) *RedisPrograms {
	return &RedisPrograms{client: client, ttl: ttl}
}

func (c *RedisPrograms) Get(ctx context.Context) ([]models.Program, error) {
	raw, err := c.client.Get(ctx, programsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var list []models.Program
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode cached programs: %w", err)
	}
	if list == nil {
		list = []models.Program{}
	}
	return list, nil
}

func (c *RedisPrograms) Set(ctx context.Context, list []models.Program) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, programsKey, raw, c.ttl).Err()
}

func (c *RedisPrograms) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, programsKey).Err()
}

// Noop caches nothing. It is used when redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context) ([]models.Program, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, []models.Program) error   { return nil }
func (Noop) Invalidate(context.Context) error              { return nil }
