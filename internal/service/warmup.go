package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/model"
)

// WarmupConfig holds configuration for the dashboard warm-up scheduler.
type WarmupConfig struct {
	// Interval is how often dashboard entries are refreshed.
	// Default: 4 minutes, below the dashboard TTL.
	Interval time.Duration

	// Timeout bounds one warm-up run.
	Timeout time.Duration
}

// DefaultWarmupConfig returns default warm-up configuration.
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Interval: 4 * time.Minute,
		Timeout:  30 * time.Second,
	}
}

// WarmupScheduler periodically reloads dashboard data through the cache.
// Entries still cached are hits and cost nothing; entries dropped by an
// invalidation are recomputed before a user asks for them.
type WarmupScheduler struct {
	dashboard *DashboardService
	config    WarmupConfig
	stopCh    chan struct{}
	isRunning bool
	mu        sync.Mutex
}

// NewWarmupScheduler creates a new warm-up scheduler.
func NewWarmupScheduler(dashboard *DashboardService, config WarmupConfig) *WarmupScheduler {
	defaults := DefaultWarmupConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	return &WarmupScheduler{
		dashboard: dashboard,
		config:    config,
	}
}

// Start runs one warm-up immediately and then on every interval.
// A stopped scheduler can be started again.
func (s *WarmupScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	s.isRunning = true
	s.stopCh = make(chan struct{})

	log.Printf("[WarmupScheduler] Started - Interval: %v", s.config.Interval)

	go s.run(time.NewTicker(s.config.Interval), s.stopCh)
}

func (s *WarmupScheduler) run(ticker *time.Ticker, stopCh <-chan struct{}) {
	defer ticker.Stop()

	s.RunNow()
	for {
		select {
		case <-ticker.C:
			s.RunNow()
		case <-stopCh:
			log.Printf("[WarmupScheduler] Stopped")
			return
		}
	}
}

// RunNow warms every role and returns how many role entries loaded without error.
func (s *WarmupScheduler) RunNow() int {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	warmed := 0
	for _, role := range model.Roles {
		if _, err := s.dashboard.Stats(ctx, role); err != nil {
			log.Printf("[WarmupScheduler] Stats for %s failed: %v", role, err)
			continue
		}
		if _, err := s.dashboard.QuickAccess(ctx, role); err != nil {
			log.Printf("[WarmupScheduler] Quick access for %s failed: %v", role, err)
			continue
		}
		warmed++
	}
	return warmed
}

// Stop stops the scheduler. Safe to call more than once.
func (s *WarmupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	close(s.stopCh)
	s.isRunning = false
}

// Running reports whether the scheduler loop is active.
func (s *WarmupScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
