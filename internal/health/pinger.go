package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const defaultProbeTimeout = 2 * time.Second

// PingChecker caches the result of periodic HealthPing probes.
type PingChecker struct {
	name         string
	target       HealthPinger
	healthy      atomic.Bool
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewPingChecker starts unhealthy until the first successful probe.
func NewPingChecker(name string, target HealthPinger, log zerolog.Logger, probeTimeout time.Duration) *PingChecker {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &PingChecker{name: name, target: target, log: log, probeTimeout: probeTimeout}
}

func (c *PingChecker) Name() string { return c.name }

// IsHealthy returns the cached status without probing.
func (c *PingChecker) IsHealthy() bool { return c.healthy.Load() }

// Probe runs one check and updates the cached status.
func (c *PingChecker) Probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	if err := c.target.HealthPing(probeCtx); err != nil {
		c.log.Error().Stack().
			Str("checker", c.name).
			Err(err).
			Msg("health check failed")
		c.healthy.Store(false)
		return false
	}
	c.healthy.Store(true)
	return true
}

func (c *PingChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Probe(ctx)
		}
	}
}

// Static is a checker that is always healthy, for components without a probe.
type Static string

func (s Static) Name() string                             { return string(s) }
func (Static) IsHealthy() bool                            { return true }
func (Static) Start(ctx context.Context, _ time.Duration) { <-ctx.Done() }
