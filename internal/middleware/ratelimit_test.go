package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestClientIP_HeaderPrecedence(t *testing.T) {
	cases := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded wins", "203.0.113.7, 10.0.0.1", "198.51.100.2", "192.0.2.1:1234", "203.0.113.7"},
		{"forwarded single with spaces", " 203.0.113.7 ", "", "192.0.2.1:1234", "203.0.113.7"},
		{"real ip next", "", "198.51.100.2", "192.0.2.1:1234", "198.51.100.2"},
		{"remote addr fallback", "", "", "192.0.2.1:1234", "192.0.2.1:1234"},
	}

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = c.remoteAddr
		if c.forwarded != "" {
			req.Header.Set("X-Forwarded-For", c.forwarded)
		}
		if c.realIP != "" {
			req.Header.Set("X-Real-IP", c.realIP)
		}

		if got := clientIP(req); got != c.want {
			t.Errorf("%s: clientIP = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestRateLimiter_FailsOpenWithoutRedis(t *testing.T) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		ReadTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
	rl := NewRateLimiter(redisClient, 2, time.Minute)

	called := false
	handler := rl.Middleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !called {
		t.Error("expected the request to pass through when Redis is down")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "2" {
		t.Errorf("expected X-RateLimit-Limit header, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}
}
