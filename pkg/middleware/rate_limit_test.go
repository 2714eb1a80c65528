package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hugohenrick/assistant-juridique/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type fakeCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: make(map[string]int64), expires: make(map[string]time.Duration)}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func newLimitedRouter(counter RateCounter, qps int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(counter, qps, logger.NewNopLogger()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRateLimit(t *testing.T) {
	counter := newFakeCounter()
	r := newLimitedRouter(counter, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Len(t, counter.expires, 1)
	for _, ttl := range counter.expires {
		assert.Equal(t, time.Second, ttl)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	counter := newFakeCounter()
	counter.err = errors.New("dial tcp: connection refused")
	r := newLimitedRouter(counter, 1)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
