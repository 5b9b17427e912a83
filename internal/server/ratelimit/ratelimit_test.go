package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		allowed, remaining, _ := bucket.take()
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}

	allowed, remaining, resetTime := bucket.take()
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetTime.After(time.Now()))
	assert.Positive(t, bucket.nextTokenIn())
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(2, 20) // one token every 50ms

	bucket.take()
	bucket.take()
	allowed, _, _ := bucket.take()
	require.False(t, allowed)

	time.Sleep(80 * time.Millisecond)

	allowed, _, _ = bucket.take()
	assert.True(t, allowed, "expected a refilled token")
}

func TestTokenBucket_NeverExceedsCapacity(t *testing.T) {
	bucket := newTokenBucket(3, 1000)
	time.Sleep(20 * time.Millisecond)

	_, remaining, _ := bucket.take()
	assert.Equal(t, 2, remaining)
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)

	// Other clients have their own budget
	allowed, _ = limiter.Allow("10.0.0.2", "/test", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.0.2.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}

	allowed, _ := limiter.Allow("192.0.2.1", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/fit", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/fit", Method: "POST", Limit: 2, Window: time.Minute},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/fit", "POST")
		require.True(t, allowed)
		assert.Equal(t, 2, info.Limit)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/fit", "POST")
	assert.False(t, allowed)

	allowed, info := limiter.Allow("127.0.0.1", "/pages", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_PrefixRulesShareBucket(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/sessions/", Method: "DELETE", Limit: 2, Window: time.Minute},
		},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("127.0.0.1", "/sessions/a", "DELETE")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("127.0.0.1", "/sessions/b", "DELETE")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("127.0.0.1", "/sessions/c", "DELETE")
	assert.False(t, allowed)
	assert.Equal(t, 1, limiter.bucketCount())
}

func TestLimiter_Burst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/fit", Method: "POST", Limit: 60, Window: time.Minute, Burst: 3},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/fit", "POST")
		require.True(t, allowed, "burst request %d", i+1)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/fit", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var allowedCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("127.0.0.1", "/pages", "GET"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowedCount.Load())
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i), "/pages", "GET")
	}
	require.Equal(t, 5, limiter.bucketCount())

	limiter.cleanupBuckets(time.Now().Add(-time.Minute))
	assert.Equal(t, 5, limiter.bucketCount(), "recent buckets survive")

	limiter.cleanupBuckets(time.Now().Add(time.Second))
	assert.Zero(t, limiter.bucketCount())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/pages", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/fit", Method: "POST", Limit: 1},
		{Path: "/sessions/", Method: "POST", Limit: 2},
		{Path: "/sessions/special/", Method: "POST", Limit: 3},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "exact", path: "/fit", method: "POST", wantLimit: 1},
		{name: "method mismatch", path: "/fit", method: "GET", wantNil: true},
		{name: "lowercase method", path: "/fit", method: "post", wantLimit: 1},
		{name: "prefix", path: "/sessions/abc/next", method: "POST", wantLimit: 2},
		{name: "longest prefix", path: "/sessions/special/next", method: "POST", wantLimit: 3},
		{name: "no match", path: "/reduce", method: "POST", wantNil: true},
		{name: "health unlimited", path: "/health", method: "GET", wantLimit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfigFrom(t *testing.T) {
	vars := map[string]string{
		"RATE_LIMIT_DEFAULT_LIMIT":    "50",
		"RATE_LIMIT_DEFAULT_WINDOW":   "30s",
		"RATE_LIMIT_WHITELIST":        "127.0.0.1, ::1,",
		"RATE_LIMIT_FIT_LIMIT":        "7",
		"RATE_LIMIT_CLEANUP_INTERVAL": "nonsense",
	}
	cfg := LoadConfigFrom(func(k string) string { return vars[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "::1": true}, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)

	fit := MatchEndpoint("/fit", "POST", cfg.EndpointConfigs)
	require.NotNil(t, fit)
	assert.Equal(t, 7, fit.Limit)
}

func TestLoadConfigFrom_Disabled(t *testing.T) {
	cfg := LoadConfigFrom(func(k string) string {
		if k == "RATE_LIMIT_ENABLED" {
			return "false"
		}
		return ""
	})
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "25")
	cfg := LoadConfig()
	assert.Equal(t, 25, cfg.DefaultLimit)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}
