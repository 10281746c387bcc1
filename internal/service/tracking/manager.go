package tracking

import (
	"sync"
	"time"
)

// Manager owns one Tracker and one ActivityMonitor per user. Trackers
// are created lazily on first use and live for the process lifetime.
type Manager struct {
	gateway           Gateway
	interval          time.Duration
	inactivityTimeout time.Duration
	opts              []Option

	mu       sync.Mutex
	trackers map[string]*Tracker
	monitors map[string]*ActivityMonitor
}

func NewManager(gateway Gateway, interval, inactivityTimeout time.Duration, opts ...Option) *Manager {
	return &Manager{
		gateway:           gateway,
		interval:          interval,
		inactivityTimeout: inactivityTimeout,
		opts:              opts,
		trackers:          make(map[string]*Tracker),
		monitors:          make(map[string]*ActivityMonitor),
	}
}

// Tracker returns the user's tracker, creating it on first use.
func (m *Manager) Tracker(userID string) *Tracker {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.trackers[userID]
	if !ok {
		t = NewTracker(userID, m.interval, m.gateway, m.opts...)
		m.trackers[userID] = t
	}
	return t
}

// Monitor returns the user's activity monitor, creating it on first
// use.
func (m *Manager) Monitor(userID string) *ActivityMonitor {
	m.mu.Lock()
	defer m.mu.Unlock()

	mon, ok := m.monitors[userID]
	if !ok {
		mon = NewActivityMonitor(m.inactivityTimeout, nil)
		m.monitors[userID] = mon
	}
	return mon
}
