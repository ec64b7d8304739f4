// Package status reports whether the site's upstream dependencies answer.
package status

import (
	"context"
	"sync"
	"time"
)

const (
	StateOperational = "operational"
	StateDegraded    = "degraded"
)

const defaultProbeTimeout = 3 * time.Second

// Summary captures the state of every probed component.
type Summary struct {
	State      string      `json:"state"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Components []Component `json:"components"`
}

// Component represents the status of an individual subsystem.
type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Probe reports nil when a component is reachable.
type Probe func(ctx context.Context) error

// Check names a probe.
type Check struct {
	Name  string
	Probe Probe
}

// Checker runs checks concurrently with a per-probe timeout.
type Checker struct {
	checks  []Check
	timeout time.Duration
	now     func() time.Time
}

// Option customises a Checker.
type Option func(*Checker)

// WithTimeout bounds each probe.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(c *Checker) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewChecker builds a checker for the given checks. Checks without a probe are
// reported operational.
func NewChecker(checks []Check, opts ...Option) *Checker {
	c := &Checker{
		checks:  append([]Check(nil), checks...),
		timeout: defaultProbeTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summary probes every component. The overall state is degraded when any
// component fails. Component order follows the checks.
func (c *Checker) Summary(ctx context.Context) Summary {
	summary := Summary{
		State:      StateOperational,
		UpdatedAt:  c.now().UTC(),
		Components: make([]Component, len(c.checks)),
	}

	var wg sync.WaitGroup
	for i, check := range c.checks {
		summary.Components[i] = Component{Name: check.Name, Status: StateOperational}
		if check.Probe == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()
			if err := check.Probe(pctx); err != nil {
				summary.Components[i].Status = StateDegraded
				summary.Components[i].Error = err.Error()
			}
		}()
	}
	wg.Wait()

	for _, comp := range summary.Components {
		if comp.Status != StateOperational {
			summary.State = StateDegraded
			break
		}
	}
	return summary
}
