// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxAttempts:   3,
		CleanupPeriod: time.Hour,
		BanDuration:   time.Minute,
	}
}

func TestAllowUpToLimitThenBan(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("10.0.0.1")
		require.True(t, allowed, "attempt %d should pass", i+1)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := limiter.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.True(t, info.Banned)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestIdentifiersAreIndependent(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())
	defer limiter.Close()

	for i := 0; i < 4; i++ {
		limiter.Allow("10.0.0.1")
	}
	allowed, _ := limiter.Allow("10.0.0.1")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed)
}

func TestRecordSuccessResetsCounter(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		limiter.Allow("10.0.0.1")
	}
	limiter.RecordSuccess("10.0.0.1")

	allowed, info := limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Remaining)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.0.2.7:54321",
			want:       "192.0.2.7",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			want:       "203.0.113.9",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "198.51.100.3"},
			want:       "198.51.100.3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(r))
		})
	}
}
