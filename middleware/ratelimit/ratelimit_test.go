package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate-plan", nil)
	req.RemoteAddr = remoteAddr
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareRejectsAfterBurst(t *testing.T) {
	l := New(Options{RPS: 0.001, Burst: 2, RetryAfter: 3 * time.Second})
	h := l.Middleware(okHandler())

	for i := 0; i < 2; i++ {
		if rec := doRequest(h, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, rec.Code)
		}
	}
	rec := doRequest(h, "10.0.0.1:1234", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: got %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "3" {
		t.Errorf("Retry-After = %q, want 3", got)
	}
}

func TestMiddlewareKeysClientsSeparately(t *testing.T) {
	l := New(Options{RPS: 0.001, Burst: 1})
	h := l.Middleware(okHandler())

	if rec := doRequest(h, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Fatalf("first client: got %d", rec.Code)
	}
	if rec := doRequest(h, "10.0.0.1:9999", ""); rec.Code != http.StatusTooManyRequests {
		t.Error("same IP with a new port should share a bucket")
	}
	if rec := doRequest(h, "10.0.0.2:1234", ""); rec.Code != http.StatusOK {
		t.Error("a different IP should get its own bucket")
	}
}

func TestMiddlewarePrefersKeyHeader(t *testing.T) {
	l := New(Options{RPS: 0.001, Burst: 1, KeyHeader: "X-Api-Key"})
	h := l.Middleware(okHandler())

	if rec := doRequest(h, "10.0.0.1:1234", "alice"); rec.Code != http.StatusOK {
		t.Fatalf("alice: got %d", rec.Code)
	}
	// Same IP, different key: separate bucket.
	if rec := doRequest(h, "10.0.0.1:1234", "bob"); rec.Code != http.StatusOK {
		t.Errorf("bob should not share alice's bucket, got %d", rec.Code)
	}
	if rec := doRequest(h, "10.0.0.9:1234", "alice"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("alice from another IP should share her bucket, got %d", rec.Code)
	}
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	l := New(Options{RPS: 0.001, Burst: 1, IdleTTL: time.Millisecond})
	h := l.Middleware(okHandler())

	if rec := doRequest(h, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	if rec := doRequest(h, "10.0.0.1:1234", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatal("bucket should be exhausted")
	}

	time.Sleep(5 * time.Millisecond)
	l.Cleanup()

	// The stale bucket is gone, so the client starts with a full burst.
	if rec := doRequest(h, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Errorf("after cleanup: got %d, want 200", rec.Code)
	}
}
