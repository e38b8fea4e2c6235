package middleware

import (
	"dinebook/config"
	"dinebook/shared/cache/mocks"
	"dinebook/shared/constant"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newLimiter(t *testing.T, enable bool) (*appMiddleware, *mocks.MockRedisCache) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	return &appMiddleware{config: cfg, cache: cache}, cache
}

func serveLimited(m *appMiddleware) (*httptest.ResponseRecorder, *bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/restaurants", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	req.Header.Set(constant.RequestHeaderUserAgent, "curl/8.0")

	rec := httptest.NewRecorder()
	m.RateLimit()(next).ServeHTTP(rec, req)

	return rec, &reached
}

func TestRateLimit(t *testing.T) {
	const key = "limiter:10.0.0.7:curl/8.0"

	t.Run("disabled", func(t *testing.T) {
		m, _ := newLimiter(t, false)

		rec, reached := serveLimited(m)

		assert.True(t, *reached)
		assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
	})

	t.Run("under limit", func(t *testing.T) {
		m, cache := newLimiter(t, true)
		cache.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(1), nil)

		rec, reached := serveLimited(m)

		assert.True(t, *reached)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("over limit", func(t *testing.T) {
		m, cache := newLimiter(t, true)
		cache.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(3), nil)

		rec, reached := serveLimited(m)

		assert.False(t, *reached)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRetryAfter))
	})

	t.Run("cache unavailable", func(t *testing.T) {
		m, cache := newLimiter(t, true)
		cache.EXPECT().Increment(gomock.Any(), key, 60).Return(int64(0), errors.New("connection refused"))

		rec, reached := serveLimited(m)

		assert.True(t, *reached)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", clientIP(req))

	req.RemoteAddr = "10.1.1.1"
	assert.Equal(t, "10.1.1.1", clientIP(req))
}

func TestUserAgent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "unknown", userAgent(req))

	req.Header.Set(constant.RequestHeaderUserAgent, "dinebook-ios/2.1")
	assert.Equal(t, "dinebook-ios/2.1", userAgent(req))
}
