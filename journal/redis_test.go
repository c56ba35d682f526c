package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrif/littlebots/model"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	r, err := NewRedis(mr.Addr(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, mr
}

func TestRedisRecordLoad(t *testing.T) {
	r, mr := newTestRedis(t, time.Hour)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	want := []Entry{
		{Session: "a", Turn: 1, State: state(1), Action: model.Guard(), At: at},
		{Session: "a", Turn: 2, State: state(2), Action: model.Move(2, 1), At: at.Add(time.Second)},
	}
	for _, e := range want {
		require.NoError(t, r.Record(ctx, e))
	}
	require.NoError(t, r.Record(ctx, Entry{Session: "b", Turn: 1, State: state(1), Action: model.Suicide(), At: at}))

	got, err := r.Load(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].Session, got[i].Session)
		assert.Equal(t, want[i].Turn, got[i].Turn)
		assert.Equal(t, want[i].State, got[i].State)
		assert.Equal(t, want[i].Action, got[i].Action)
		assert.True(t, want[i].At.Equal(got[i].At))
	}

	assert.True(t, mr.Exists("littlebots:session:a:turns"))
	assert.Equal(t, time.Hour, mr.TTL("littlebots:session:a:turns"))

	raw, err := mr.List("littlebots:session:b:turns")
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0], `"action":["suicide"]`)
}

func TestRedisTTLRefreshedAndExpires(t *testing.T) {
	r, mr := newTestRedis(t, time.Minute)
	ctx := context.Background()
	key := "littlebots:session:s:turns"

	require.NoError(t, r.Record(ctx, Entry{Session: "s", Turn: 1, State: state(1), Action: model.Guard()}))
	mr.FastForward(40 * time.Second)
	require.NoError(t, r.Record(ctx, Entry{Session: "s", Turn: 2, State: state(2), Action: model.Guard()}))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(2 * time.Minute)
	got, err := r.Load(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisNoTTL(t *testing.T) {
	r, mr := newTestRedis(t, 0)
	require.NoError(t, r.Record(context.Background(), Entry{Session: "s", Turn: 1, State: state(1), Action: model.Guard()}))
	assert.Zero(t, mr.TTL("littlebots:session:s:turns"))
}

func TestRedisRecordFailure(t *testing.T) {
	r, mr := newTestRedis(t, time.Minute)
	mr.SetError("READONLY replica")
	err := r.Record(context.Background(), Entry{Session: "s", Turn: 1, State: state(1), Action: model.Guard()})
	assert.Error(t, err)
	mr.SetError("")
}

// refuse fails every command with the given name before it reaches the server.
type refuse string

func (refuse) DialHook(next redis.DialHook) redis.DialHook { return next }

func (c refuse) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == string(c) {
			return errors.New(string(c) + " refused")
		}
		return next(ctx, cmd)
	}
}

func (refuse) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisRecordReportsExpireFailure(t *testing.T) {
	r, mr := newTestRedis(t, time.Minute)
	r.client.AddHook(refuse("expire"))

	err := r.Record(context.Background(), Entry{Session: "s", Turn: 1, State: state(1), Action: model.Guard()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl")
	assert.Contains(t, err.Error(), "expire refused")

	// the turn itself was still appended
	raw, lerr := mr.List("littlebots:session:s:turns")
	require.NoError(t, lerr)
	assert.Len(t, raw, 1)
}

func TestRedisLoadCorrupt(t *testing.T) {
	r, mr := newTestRedis(t, time.Minute)
	_, err := mr.Push("littlebots:session:s:turns", "not json")
	require.NoError(t, err)
	_, err = r.Load(context.Background(), "s")
	assert.Error(t, err)
}
