package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPerKey(t *testing.T) {
	l := NewLocal(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok, "burst exhausted")

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "other keys have their own bucket")
}

func TestRedisWindowKey(t *testing.T) {
	r := NewRedis(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 10)
	defer r.Close()

	r.now = func() time.Time { return time.Unix(120, 0) }
	assert.Equal(t, "ratelimit:ip:2", r.windowKey("ip"))

	r.now = func() time.Time { return time.Unix(179, 0) }
	assert.Equal(t, "ratelimit:ip:2", r.windowKey("ip"))

	r.now = func() time.Time { return time.Unix(180, 0) }
	assert.Equal(t, "ratelimit:ip:3", r.windowKey("ip"))
}

func TestRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisFromURL(ctx, "redis://127.0.0.1:1/0", 10)
	assert.Error(t, err)

	_, err = NewRedisFromURL(ctx, "not a url", 10)
	assert.Error(t, err)
}
