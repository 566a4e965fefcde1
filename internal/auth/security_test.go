package auth

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestLimiter(maxAttempts int) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		MaxAttempts:     maxAttempts,
		WindowDuration:  15 * time.Minute,
		LockoutDuration: 30 * time.Minute,
		CleanupInterval: time.Hour, // Long interval to prevent cleanup during test
	})
}

func TestRateLimiter_LocksAfterMaxAttempts(t *testing.T) {
	rl := newTestLimiter(5)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := rl.Allow("192.168.1.1", "ada@example.com")
		if !allowed {
			t.Errorf("Attempt %d should be allowed", i+1)
		}
		locked, _ := rl.RecordFailure("192.168.1.1", "ada@example.com")
		if locked != (i == 4) {
			t.Errorf("Attempt %d: locked = %v", i+1, locked)
		}
	}

	allowed, retryAfter := rl.Allow("192.168.1.1", "ada@example.com")
	if allowed {
		t.Error("6th attempt should be blocked")
	}
	if retryAfter <= 0 {
		t.Error("retryAfter should be positive when blocked")
	}
}

func TestRateLimiter_EmailCaseInsensitive(t *testing.T) {
	rl := newTestLimiter(2)
	defer rl.Stop()

	rl.RecordFailure("10.0.0.1", "Ada@Example.com")
	rl.RecordFailure("10.0.0.1", "ada@example.com ")

	if allowed, _ := rl.Allow("10.0.0.1", "ADA@EXAMPLE.COM"); allowed {
		t.Error("Changing email case must not bypass the lockout")
	}
}

func TestRateLimiter_SuccessResetsCounter(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	rl.RecordFailure("192.168.1.1", "ada@example.com")
	rl.RecordFailure("192.168.1.1", "ada@example.com")
	rl.RecordSuccess("192.168.1.1", "ada@example.com")

	// two more failures stay under the limit
	rl.RecordFailure("192.168.1.1", "ada@example.com")
	rl.RecordFailure("192.168.1.1", "ada@example.com")

	if allowed, _ := rl.Allow("192.168.1.1", "ada@example.com"); !allowed {
		t.Error("Should be allowed after successful login reset the counter")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := newTestLimiter(2)
	defer rl.Stop()

	rl.RecordFailure("192.168.1.1", "ada@example.com")
	rl.RecordFailure("192.168.1.1", "ada@example.com")

	if allowed, _ := rl.Allow("192.168.1.1", "ada@example.com"); allowed {
		t.Error("ada should be blocked")
	}
	if allowed, _ := rl.Allow("192.168.1.1", "grace@example.com"); !allowed {
		t.Error("grace should not be affected by ada's failures")
	}
	if allowed, _ := rl.Allow("192.168.1.2", "ada@example.com"); !allowed {
		t.Error("another IP should not be affected")
	}
}

func TestRateLimiter_LockoutExpires(t *testing.T) {
	rl := newTestLimiter(2)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.RecordFailure("10.0.0.1", "ada@example.com")
	rl.RecordFailure("10.0.0.1", "ada@example.com")
	if allowed, _ := rl.Allow("10.0.0.1", "ada@example.com"); allowed {
		t.Fatal("should be locked")
	}

	now = now.Add(31 * time.Minute)
	if allowed, _ := rl.Allow("10.0.0.1", "ada@example.com"); !allowed {
		t.Error("should be allowed once the lockout has passed")
	}

	// a single failure after the lockout starts a fresh count
	if locked, _ := rl.RecordFailure("10.0.0.1", "ada@example.com"); locked {
		t.Error("first failure after lockout should not lock again")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := newTestLimiter(5)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.RecordFailure("10.0.0.1", "ada@example.com")
	now = now.Add(46 * time.Minute)
	rl.cleanup()

	rl.mu.RLock()
	remaining := len(rl.attempts)
	rl.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("Expected expired records to be removed, %d left", remaining)
	}
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := newTestLimiter(5)
	rl.Stop()
	rl.Stop()
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	expectedHeaders := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}

	for header, expected := range expectedHeaders {
		if got := rr.Header().Get(header); got != expected {
			t.Errorf("Header %s = %q, want %q", header, got, expected)
		}
	}

	csp := rr.Header().Get("Content-Security-Policy")
	for _, directive := range []string{"default-src 'self'", "connect-src 'self'", "frame-ancestors 'none'"} {
		if !strings.Contains(csp, directive) {
			t.Errorf("CSP missing %q: %s", directive, csp)
		}
	}
}

func TestHSTSHeader(t *testing.T) {
	router := gin.New()
	router.Use(StrictTransportSecurityMiddleware(31536000))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	t.Run("plain HTTP", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
		if hsts := rr.Header().Get("Strict-Transport-Security"); hsts != "" {
			t.Errorf("HSTS should not be set over HTTP, got %q", hsts)
		}
	})

	t.Run("TLS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.TLS = &tls.ConnectionState{}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if hsts := rr.Header().Get("Strict-Transport-Security"); hsts != "max-age=31536000; includeSubDomains" {
			t.Errorf("unexpected HSTS header %q", hsts)
		}
	})

	t.Run("behind proxy", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Header().Get("Strict-Transport-Security") == "" {
			t.Error("HSTS should be set when forwarded over HTTPS")
		}
	})
}
