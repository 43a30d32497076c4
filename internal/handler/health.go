package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/response"
)

// StartTime tracks when the server started for uptime calculation
var StartTime = time.Now()

// readyTimeout bounds each dependency ping.
const readyTimeout = 2 * time.Second

// Dependency is a named backend checked by the readiness probe.
type Dependency struct {
	Name   string
	Pinger cache.Pinger
}

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	service string
	version string
	deps    []Dependency
}

// New creates a new handler.
func New(service, version string, deps ...Dependency) *Handler {
	return &Handler{service: service, version: version, deps: deps}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Ready handles GET /api/v1/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := h.runChecks(r.Context())

	allReady := true
	for _, check := range checks {
		if check.Status != "ok" {
			allReady = false
			break
		}
	}

	resp := ReadyResponse{
		Ready:     allReady,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	status := http.StatusOK
	if !allReady {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, resp)
}

func (h *Handler) runChecks(ctx context.Context) []Check {
	checks := []Check{{Name: "api", Status: "ok"}}
	for _, dep := range h.deps {
		pingCtx, cancel := context.WithTimeout(ctx, readyTimeout)
		err := dep.Pinger.Ping(pingCtx)
		cancel()

		check := Check{Name: dep.Name, Status: "ok"}
		if err != nil {
			check.Status = "error"
			check.Error = err.Error()
		}
		checks = append(checks, check)
	}
	return checks
}

// StatusChecks represents the checks in status response
type StatusChecks map[string]any

// StatusResponse represents the unified status response for uptime monitors
type StatusResponse struct {
	Service       string       `json:"service"`
	Status        string       `json:"status"`
	Version       string       `json:"version"`
	Timestamp     string       `json:"timestamp"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	PingMS        int64        `json:"ping_ms"`
	Checks        StatusChecks `json:"checks"`
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	requestStart := time.Now()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	status := "ok"
	checks := StatusChecks{"memory_mb": float64(int(memoryMB*100)) / 100}
	for _, c := range h.runChecks(r.Context())[1:] {
		checks[c.Name] = c.Status
		if c.Status != "ok" {
			status = "degraded"
		}
	}

	resp := StatusResponse{
		Service:       h.service,
		Status:        status,
		Version:       h.version,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(StartTime).Seconds()),
		PingMS:        time.Since(requestStart).Milliseconds(),
		Checks:        checks,
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, resp)
}
