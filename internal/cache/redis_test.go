package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	t.Cleanup(func() {
		redisNewClient = func(opt *redis.Options) Cache { return redis.NewClient(opt) }
	})

	// ping failure
	redisNewClient = func(opt *redis.Options) Cache {
		return &FakeCache{PingFn: func(context.Context) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("ping"))
		}}
	}
	_, err := NewRedisClient("addr", "", 0)
	require.Error(t, err)

	// success
	var gotOpt *redis.Options
	fake := &FakeCache{PingFn: func(context.Context) *redis.StatusCmd {
		return redis.NewStatusResult("PONG", nil)
	}}
	redisNewClient = func(opt *redis.Options) Cache {
		gotOpt = opt
		return fake
	}
	c, err := NewRedisClient("127.0.0.1:6379", "pw", 2)
	require.NoError(t, err)
	require.Same(t, fake, c.(*FakeCache))
	require.Equal(t, "127.0.0.1:6379", gotOpt.Addr)
	require.Equal(t, "pw", gotOpt.Password)
	require.Equal(t, 2, gotOpt.DB)
}
