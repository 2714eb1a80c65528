package lock

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis guarda as chaves em memória e executa o script de liberação diretamente
type fakeRedis struct {
	mu        sync.Mutex
	values    map[string]string
	ttls      map[string]time.Duration
	evals     int
	scriptErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys[0], args[0].(string))
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys[0], args[0].(string))
}

func (f *fakeRedis) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeRedis) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func (f *fakeRedis) compareAndDelete(key, token string) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evals++
	if f.scriptErr != nil {
		return redis.NewCmdResult(nil, f.scriptErr)
	}
	if f.values[key] != token {
		return redis.NewCmdResult(int64(0), nil)
	}
	delete(f.values, key)
	return redis.NewCmdResult(int64(1), nil)
}

func (f *fakeRedis) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeRedis) set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

func newTestLocker(client Client, log logger.Logger) *RedisLocker {
	l := NewRedisLocker(client, time.Minute, log)
	l.retryDelay = time.Millisecond
	return l
}

func TestRedisLockerIsExclusive(t *testing.T) {
	client := newFakeRedis()
	l := newTestLocker(client, logger.NewNopLogger())

	unlock, err := l.Lock(context.Background(), "conv-1")
	require.NoError(t, err)
	_, held := client.get("lock:conversation:conv-1")
	assert.True(t, held)
	assert.Equal(t, time.Minute, client.ttls["lock:conversation:conv-1"])

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "conv-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLockTimeout)

	// outra conversa não espera
	unlockOther, err := l.Lock(context.Background(), "conv-2")
	require.NoError(t, err)
	unlockOther()

	unlock()
	_, held = client.get("lock:conversation:conv-1")
	assert.False(t, held)

	unlock, err = l.Lock(context.Background(), "conv-1")
	require.NoError(t, err)
	unlock()
}

func TestRedisLockerWaitsForRelease(t *testing.T) {
	client := newFakeRedis()
	l := newTestLocker(client, logger.NewNopLogger())

	unlock, err := l.Lock(context.Background(), "conv-1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		second, err := l.Lock(ctx, "conv-1")
		if !assert.NoError(t, err) {
			close(acquired)
			return
		}
		second()
		close(acquired)
	}()

	time.Sleep(10 * time.Millisecond)
	unlock()
	<-acquired
}

func TestRedisLockerReleaseKeepsForeignToken(t *testing.T) {
	client := newFakeRedis()
	l := newTestLocker(client, logger.NewNopLogger())

	unlock, err := l.Lock(context.Background(), "conv-1")
	require.NoError(t, err)

	// o lock expirou e outra instância o obteve
	client.set("lock:conversation:conv-1", "other-instance")

	unlock()
	value, held := client.get("lock:conversation:conv-1")
	require.True(t, held)
	assert.Equal(t, "other-instance", value)

	unlock()
	assert.Equal(t, 1, client.evals, "release runs only once")
}

func TestRedisLockerLogsReleaseFailure(t *testing.T) {
	client := newFakeRedis()
	var buf bytes.Buffer
	l := newTestLocker(client, logger.NewLoggerWithWriter(&buf, "debug", false))

	unlock, err := l.Lock(context.Background(), "conv-1")
	require.NoError(t, err)

	client.scriptErr = errors.New("connection refused")
	unlock()

	assert.Contains(t, buf.String(), "falha ao liberar lock")
	assert.Contains(t, buf.String(), "connection refused")
}
