package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetTokenCost(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		query        string
		expectedCost int64
	}{
		{"Health endpoint", "/health", "", 5},
		{"Metrics endpoint", "/metrics", "", 5},
		{"All nuclides", "/nuclides", "", 200},
		{"Nuclides of one element", "/nuclides", "symbol=He", 100},
		{"Binding energy", "/binding-energy", "normalize=false", 200},
		{"Binding energy of one element", "/binding-energy", "symbol=Fe&normalize=true", 100},
		{"Quality report", "/quality", "", 200},

		// Edge cases
		{"Empty symbol", "/nuclides", "symbol=", 200},
		{"Repeated symbol", "/nuclides", "symbol=H&symbol=He", 200},
		{"Health with params", "/health", "test=value", 5},
		{"Default endpoint", "/unknown", "", 20},
		{"Root path", "/", "", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path+"?"+tt.query, nil)
			cost := getTokenCost(req)

			if cost != tt.expectedCost {
				t.Errorf("Expected cost %d for path %s with query %s, got %d",
					tt.expectedCost, tt.path, tt.query, cost)
			}
		})
	}
}

func TestRealIPMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		expected   string
	}{
		{"Single IP", "203.0.113.7", "10.0.0.1:1234", "203.0.113.7"},
		{"IP chain", " 203.0.113.7 , 10.0.0.2", "10.0.0.1:1234", "203.0.113.7"},
		{"No header", "", "10.0.0.1:1234", "10.0.0.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RealIPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.RemoteAddr
			}))

			req := httptest.NewRequest("GET", "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if seen != tt.expected {
				t.Errorf("Expected RemoteAddr %q, got %q", tt.expected, seen)
			}
		})
	}
}

func TestRateLimiterHandler(t *testing.T) {
	// Room for exactly one full table request and nearly no refill
	limiter := NewRateLimiter(0.001, 250)
	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(path, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", path, nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	rr := request("/nuclides", "192.0.2.1:1000")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", rr.Code)
	}
	if rr.Header().Get("X-RateLimit-Limit") != "250" || rr.Header().Get("X-RateLimit-Remaining") != "50" {
		t.Errorf("Unexpected rate limit headers: %v", rr.Header())
	}

	rr = request("/nuclides", "192.0.2.1:1000")
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 for second request, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "60" {
		t.Errorf("Expected Retry-After header, got %q", rr.Header().Get("Retry-After"))
	}

	// Another client has its own bucket
	if rr = request("/nuclides", "192.0.2.2:1000"); rr.Code != http.StatusOK {
		t.Errorf("Expected other client to pass, got %d", rr.Code)
	}

	if limiter.clientCount() != 2 {
		t.Errorf("Expected 2 tracked clients, got %d", limiter.clientCount())
	}
}

func TestRateLimiterSharesBucketAcrossPorts(t *testing.T) {
	limiter := NewRateLimiter(0.001, 200)
	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for _, remoteAddr := range []string{"10.0.0.1:40001", "10.0.0.1:40002", "10.0.0.1:40003"} {
		req := httptest.NewRequest("GET", "/quality", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	expected := []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}
	for i := range expected {
		if codes[i] != expected[i] {
			t.Errorf("Request %d: expected %d, got %d", i, expected[i], codes[i])
		}
	}
	if limiter.clientCount() != 1 {
		t.Errorf("Expected 1 tracked client, got %d", limiter.clientCount())
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		remoteAddr string
		expected   string
	}{
		{"10.0.0.1:40001", "10.0.0.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"203.0.113.7", "203.0.113.7"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.remoteAddr, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/health", nil)
			req.RemoteAddr = tt.remoteAddr
			if got := clientKey(req); got != tt.expected {
				t.Errorf("Expected client key %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRateLimiterPrune(t *testing.T) {
	limiter := NewRateLimiter(1, 100)
	limiter.getBucket("idle")
	limiter.getBucket("busy").TakeAvailable(50)

	limiter.prune()

	if limiter.clientCount() != 1 {
		t.Errorf("Expected only the busy client to remain, got %d", limiter.clientCount())
	}
}

func TestRateLimiterStop(t *testing.T) {
	limiter := NewRateLimiter(1, 100)
	limiter.StartCleanup(time.Millisecond)
	limiter.Stop()
	limiter.Stop()
}
