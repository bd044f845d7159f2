//go:build integration

package containers

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"medhope/internal/platform/config"
	"medhope/internal/platform/redis"
)

// RedisContainer is a Redis instance reached through the platform client, so
// tests exercise the same URL parsing and pool options as the server.
type RedisContainer struct {
	Container *tcredis.RedisContainer
	URL       string
	Client    *goredis.Client
}

// NewRedisContainer starts Redis and connects with the platform client.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	url, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(context.Background())
		t.Fatalf("failed to get redis url: %v", err)
	}

	client, err := redis.New(ctx, config.RedisConfig{
		URL:         url,
		PoolSize:    20,
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		_ = container.Terminate(context.Background())
		t.Fatalf("failed to connect to redis: %v", err)
	}

	// Shared across suites; Ryuk reaps the container.
	return &RedisContainer{
		Container: container,
		URL:       url,
		Client:    client.Client,
	}
}

// FlushAll empties the database between tests.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushDB(ctx).Err()
}
