package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityMonitorWarnsAtThreshold(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	mon := NewActivityMonitor(5*time.Minute, clock.Now)

	assert.False(t, mon.ShouldWarn())

	// 80% of 5m is 4m.
	clock.Advance(3 * time.Minute)
	assert.False(t, mon.ShouldWarn())

	clock.Advance(time.Minute)
	assert.True(t, mon.ShouldWarn())
}

func TestActivityMonitorTouchResets(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	mon := NewActivityMonitor(5*time.Minute, clock.Now)

	clock.Advance(10 * time.Minute)
	assert.True(t, mon.ShouldWarn())

	mon.Touch()
	assert.False(t, mon.ShouldWarn())
	assert.Zero(t, mon.IdleFor())
}
