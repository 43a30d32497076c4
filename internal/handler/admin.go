package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/cache"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/pricing"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/service"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/apierror"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/response"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	cache       *cache.ReadThrough
	invalidator *cache.Invalidator
	dbType      string // sqlite, postgres or mysql
	startTime   time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(rt *cache.ReadThrough, inv *cache.Invalidator, dbType string) *AdminHandler {
	return &AdminHandler{
		cache:       rt,
		invalidator: inv,
		dbType:      dbType,
		startTime:   time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make(map[string]interface{})

	// System info
	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["db_type"] = h.dbType

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":      float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":        float64(memStats.Sys) / 1024 / 1024,
		"heap_inuse_mb": float64(memStats.HeapInuse) / 1024 / 1024,
		"num_gc":        memStats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	counters := h.cache.Stats()
	cacheStats := map[string]interface{}{
		"counters":  counters,
		"hit_ratio": hitRatio(counters),
	}
	switch store := h.cache.Store().(type) {
	case *cache.MemoryStore:
		cacheStats["store"] = "memory"
		cacheStats["entries"] = store.Len()
	case *cache.RedisStore:
		cacheStats["store"] = "redis"
		if n, err := store.Client().DBSize(ctx).Result(); err == nil {
			cacheStats["entries"] = n
			cacheStats["status"] = "connected"
		} else {
			cacheStats["status"] = "error"
			cacheStats["error"] = err.Error()
		}
	default:
		cacheStats["store"] = "custom"
	}
	stats["cache"] = cacheStats

	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}

// purgeableNamespaces are the cache namespaces an admin may invalidate.
// Sessions share the store under service.TokenKeyPrefix and are not listed.
var purgeableNamespaces = []string{
	"projetos",
	service.DashboardStatsNamespace,
	service.QuickAccessNamespace,
	pricing.Namespace,
}

// checkPatterns rejects patterns that do not start with a purgeable namespace.
func checkPatterns(patterns []string) *apierror.Error {
	var details []apierror.FieldError
	for i, p := range patterns {
		if !hasPurgeablePrefix(p) {
			details = append(details, apierror.FieldError{
				Field:   fmt.Sprintf("patterns[%d]", i),
				Message: "must start with one of: " + strings.Join(purgeableNamespaces, ":, ") + ":",
			})
		}
	}
	if len(details) > 0 {
		return apierror.ValidationError("Pattern outside cache namespaces", details...)
	}
	return nil
}

func hasPurgeablePrefix(pattern string) bool {
	for _, ns := range purgeableNamespaces {
		if strings.HasPrefix(pattern, ns+cache.KeySeparator) {
			return true
		}
	}
	return false
}

// InvalidateRequest lists glob patterns to purge, e.g. "projetos:list:*".
type InvalidateRequest struct {
	Patterns []string `json:"patterns" validate:"required,min=1,max=20,dive,required,max=200"`
}

// InvalidateResponse reports how many keys were removed.
type InvalidateResponse struct {
	Patterns []string `json:"patterns"`
	Removed  int64    `json:"removed"`
}

// InvalidateCache handles POST /api/v1/admin/cache/invalidate
func (h *AdminHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	var req InvalidateRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		response.Error(w, apiErr)
		return
	}
	if apiErr := checkPatterns(req.Patterns); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	patterns := make([]cache.Pattern, len(req.Patterns))
	for i, p := range req.Patterns {
		patterns[i] = cache.Pattern(p)
	}

	removed := h.invalidator.Invalidate(r.Context(), patterns...)
	response.OK(w, InvalidateResponse{Patterns: req.Patterns, Removed: removed})
}

func hitRatio(s cache.Stats) float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(int(float64(s.Hits)/float64(total)*10000)) / 10000
}
