package redis

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medhope/internal/platform/config"
)

func TestNewWithoutURLIsDisabled(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "http://not-redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis URL")
}

func TestKey(t *testing.T) {
	c := Wrap(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}), "medhope:")
	defer c.Close()
	assert.Equal(t, "medhope:case_seq:2025", c.Key("case_seq", "2025"))
}
