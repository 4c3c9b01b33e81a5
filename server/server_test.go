package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stemerlini/fusion-plots/config"
	"github.com/stemerlini/fusion-plots/handlers"
	"github.com/stemerlini/fusion-plots/health"
	"github.com/stemerlini/fusion-plots/interfaces"
	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
	"github.com/stemerlini/fusion-plots/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubParser serves a fixed table
type stubParser struct {
	calls int
}

func (p *stubParser) Load(ctx context.Context, source interfaces.Source) (*entities.NuclideTable, int, error) {
	p.calls++
	return &entities.NuclideTable{
		AtomicNumber:       []float64{1, 2},
		AtomicSymbol:       []string{"H", "He"},
		MassNumber:         []float64{1, 4},
		RelativeAtomicMass: []float64{1.00782503223, 4.00260325413},
	}, 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		Address:           "localhost",
		Env:               config.EnvTest,
		LogLevel:          "error",
		NistURL:           "http://localhost/isotopes",
		FetchTimeout:      time.Second,
		RateLimitRate:     3,
		RateLimitCapacity: 10000,
	}
}

func newTestServer(parser interfaces.Parser) *Server {
	handler := handlers.NewHTTPHandler(parser, validation.NewDataValidator(), health.NewHealthChecker(),
		interfaces.Source{URL: "http://localhost/isotopes"})
	return NewServer(testConfig(), handler)
}

func TestNewServer(t *testing.T) {
	logging.InitLogger("", "error")

	server := newTestServer(&stubParser{})

	require.NotNil(t, server)
	assert.Equal(t, "localhost:0", server.server.Addr)
	assert.Equal(t, time.Second+15*time.Second, server.server.WriteTimeout)
	assert.NotNil(t, server.rateLimiter)
}

func TestSetupRoutes(t *testing.T) {
	logging.InitLogger("", "error")
	parser := &stubParser{}
	server := newTestServer(parser)

	tests := []struct {
		path     string
		expected int
	}{
		{"/nuclides", http.StatusOK},
		{"/nuclides?symbol=He", http.StatusOK},
		{"/binding-energy", http.StatusOK},
		{"/binding-energy?normalize=false", http.StatusOK},
		{"/quality", http.StatusOK},
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/nuclides?symbol=42", http.StatusBadRequest},
		{"/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.RemoteAddr = "192.0.2.10:5555"
			rr := httptest.NewRecorder()

			server.Router().ServeHTTP(rr, req)

			assert.Equal(t, tt.expected, rr.Code, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Remaining"))
		})
	}

	assert.Equal(t, 5, parser.calls)
}

func TestRequestIDAndJSON(t *testing.T) {
	logging.InitLogger("", "error")
	server := newTestServer(&stubParser{})

	req := httptest.NewRequest(http.MethodGet, "/nuclides/", nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)

	// RedirectSlashes sends /nuclides/ to /nuclides
	assert.Equal(t, http.StatusMovedPermanently, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/nuclides?symbol=He", nil)
	rr = httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body handlers.NuclidesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "He", body.Nuclides[0].AtomicSymbol)
}

func TestServerLifecycle(t *testing.T) {
	logging.InitLogger("", "error")
	server := newTestServer(&stubParser{})

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.NoError(t, err, "graceful shutdown must not surface as an error")
	case <-time.After(2 * time.Second):
		t.Error("Server should have shutdown within 2 seconds")
	}
}
