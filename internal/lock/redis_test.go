package lock_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"funnel-billing/internal/lock"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineRedis answers SET NX in memory and fails every other command,
// so release hits an error without a live server.
type offlineRedis struct{}

func (offlineRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled")
	}
}

func (offlineRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if c, ok := cmd.(*redis.BoolCmd); ok {
			c.SetVal(true)
			return nil
		}
		err := errors.New("connection reset")
		cmd.SetErr(err)
		return err
	}
}

func (offlineRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisLocker_LogsFailedRelease(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(offlineRedis{})
	t.Cleanup(func() { _ = client.Close() })

	locker := lock.NewRedisLocker(client, time.Minute)
	unlock, err := locker.Lock(context.Background(), "subscription:sub_1")
	require.NoError(t, err)

	unlock()

	out := buf.String()
	assert.Contains(t, out, "release redis lock failed")
	assert.Contains(t, out, "billing:lock:subscription:sub_1")
	assert.Contains(t, out, `"level":"warn"`)
}
