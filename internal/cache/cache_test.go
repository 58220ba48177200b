package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/program-catalog/internal/models"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Programs = Noop{}
	require.NoError(t, c.Set(ctx, []models.Program{{ID: "1"}}))
	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Invalidate(ctx))
}

func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisProgramsSurfacesConnectionErrors(t *testing.T) {
	client := unreachable()
	defer client.Close()
	c := NewRedisPrograms(client, time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
	assert.Error(t, c.Set(ctx, nil))
	assert.Error(t, c.Invalidate(ctx))
}

func TestConnectFailsFast(t *testing.T) {
	_, err := Connect(context.Background(), Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
