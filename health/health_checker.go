// Package health reports whether the configured NIST sources can be loaded.
package health

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/stemerlini/fusion-plots/interfaces"
)

// unhealthyAfter is the number of consecutive failed loads after which the
// service stops reporting itself as degraded and becomes unhealthy
const unhealthyAfter = 3

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	mu                  sync.RWMutex
	startTime           time.Time
	lastLoad            time.Time
	lastRecords         int
	lastErr             error
	loads               int
	consecutiveFailures int
}

// NewHealthChecker creates a new health checker
func NewHealthChecker() interfaces.HealthChecker {
	return &HealthCheckerImpl{startTime: time.Now()}
}

// RecordLoad stores the outcome of a load triggered by a request
func (h *HealthCheckerImpl) RecordLoad(records int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastLoad = time.Now()
	h.loads++
	h.lastErr = err
	if err != nil {
		h.consecutiveFailures++
		return
	}
	h.consecutiveFailures = 0
	h.lastRecords = records
}

// HealthCheck returns HTTP-specific health data
// Used by /health HTTP endpoint
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch {
	case h.consecutiveFailures >= unhealthyAfter:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case h.lastErr != nil:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	lastLoad := "never"
	if !h.lastLoad.IsZero() {
		lastLoad = h.lastLoad.Format(time.RFC3339)
	}

	data = map[string]any{
		"uptime":               formatUptimeHuman(time.Since(h.startTime)),
		"last_load":            lastLoad,
		"last_records":         h.lastRecords,
		"loads":                h.loads,
		"consecutive_failures": h.consecutiveFailures,
	}
	if h.lastErr != nil {
		data["last_error"] = h.lastErr.Error()
	}

	return status, data, httpStatus
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
