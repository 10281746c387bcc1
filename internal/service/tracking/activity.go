package tracking

import (
	"sync"
	"time"
)

// warnFraction is how much of the inactivity timeout may elapse before
// a warning is raised.
const warnFraction = 0.8

// ActivityMonitor tracks time since the user's last input. It only
// observes; pausing on inactivity stays a user decision.
type ActivityMonitor struct {
	timeout time.Duration
	now     func() time.Time

	mu        sync.Mutex
	lastInput time.Time
}

func NewActivityMonitor(timeout time.Duration, now func() time.Time) *ActivityMonitor {
	if now == nil {
		now = time.Now
	}
	return &ActivityMonitor{
		timeout:   timeout,
		now:       now,
		lastInput: now(),
	}
}

// Touch records user input. Heartbeats count as activity.
func (m *ActivityMonitor) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastInput = m.now()
}

// IdleFor returns the time since the last input.
func (m *ActivityMonitor) IdleFor() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now().Sub(m.lastInput)
}

// ShouldWarn reports whether idle time crossed the warning threshold.
func (m *ActivityMonitor) ShouldWarn() bool {
	threshold := time.Duration(float64(m.timeout) * warnFraction)
	return m.IdleFor() >= threshold
}
