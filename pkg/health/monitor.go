package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/xetdata/docker-volume-xetfs/pkg/log"
)

// ReportFunc receives the status of a named check after every run
type ReportFunc func(name string, healthy bool, message string)

// Monitor runs a set of named checks on an interval and reports each
// status change through a ReportFunc.
type Monitor struct {
	config Config
	report ReportFunc
	logger zerolog.Logger

	mu       sync.Mutex
	checks   map[string]Checker
	statuses map[string]*Status
}

// NewMonitor creates a monitor. report is usually metrics.UpdateComponent.
func NewMonitor(config Config, report ReportFunc) *Monitor {
	return &Monitor{
		config:   config,
		report:   report,
		logger:   log.WithComponent("health"),
		checks:   make(map[string]Checker),
		statuses: make(map[string]*Status),
	}
}

// Add registers a check under name
func (m *Monitor) Add(name string, c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[name] = c
	m.statuses[name] = NewStatus()
}

// CheckAll runs every check once and reports the results
func (m *Monitor) CheckAll(ctx context.Context) {
	m.mu.Lock()
	names := make([]string, 0, len(m.checks))
	for name := range m.checks {
		names = append(names, name)
	}
	m.mu.Unlock()
	sort.Strings(names)

	for _, name := range names {
		m.check(ctx, name)
	}
}

func (m *Monitor) check(ctx context.Context, name string) {
	m.mu.Lock()
	c := m.checks[name]
	m.mu.Unlock()

	checkCtx, cancel := context.WithTimeout(ctx, m.config.Timeout)
	result := c.Check(checkCtx)
	cancel()

	m.mu.Lock()
	status := m.statuses[name]
	wasHealthy := status.Healthy
	status.Update(result, m.config)
	healthy := status.Healthy
	m.mu.Unlock()

	if healthy != wasHealthy {
		ev := m.logger.Info()
		if !healthy {
			ev = m.logger.Warn()
		}
		ev.Str("check", name).
			Str("type", string(c.Type())).
			Bool("healthy", healthy).
			Str("message", result.Message).
			Msg("Health check status changed")
	}

	message := ""
	if !result.Healthy {
		message = result.Message
	}
	if m.report != nil {
		m.report(name, healthy, message)
	}
}

// Status returns a copy of the named check's status
func (m *Monitor) Status(name string) (Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statuses[name]
	if !ok {
		return Status{}, false
	}
	return *s, true
}

// Run checks immediately and then every Interval until ctx is done
func (m *Monitor) Run(ctx context.Context) {
	m.CheckAll(ctx)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckAll(ctx)
		}
	}
}
