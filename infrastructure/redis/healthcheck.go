// infrastructure/redis/healthcheck.go
package redis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
)

// HealthChecker monitors Redis connection health. The token store's
// fallback logic consults it before touching Redis; a circuit breaker
// keeps a flapping connection from being hammered with pings.
type HealthChecker struct {
	client         redis.UniversalClient
	circuitBreaker *gobreaker.CircuitBreaker
	status         bool
	mu             sync.RWMutex
	checkInterval  time.Duration
	logger         *slog.Logger
	stop           chan struct{}
	stopOnce       sync.Once
}

// NewHealthChecker creates a Redis health checker and starts its
// periodic checks
func NewHealthChecker(client redis.UniversalClient, checkInterval time.Duration, logger *slog.Logger) *HealthChecker {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    "redis-health",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("redis circuit breaker state change", "from", from.String(), "to", to.String())
		},
	}

	checker := &HealthChecker{
		client:         client,
		circuitBreaker: gobreaker.NewCircuitBreaker(settings),
		checkInterval:  checkInterval,
		logger:         logger,
		stop:           make(chan struct{}),
	}

	go checker.run()

	return checker
}

// IsHealthy returns the current Redis connection health status
func (h *HealthChecker) IsHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// Check performs a health check and returns the result
func (h *HealthChecker) Check(ctx context.Context) bool {
	result, err := h.circuitBreaker.Execute(func() (interface{}, error) {
		return h.client.Ping(ctx).Result()
	})

	isHealthy := err == nil && result.(string) == "PONG"

	h.mu.Lock()
	h.status = isHealthy
	h.mu.Unlock()

	return isHealthy
}

// Stop ends the periodic health checks
func (h *HealthChecker) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

// run drives the periodic checks until Stop is called
func (h *HealthChecker) run() {
	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			h.Check(ctx)
			cancel()
		case <-h.stop:
			return
		}
	}
}
