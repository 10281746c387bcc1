package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
)

// fakeGateway records persisted sessions and captures in memory and can
// be told to fail.
type fakeGateway struct {
	mu          sync.Mutex
	nextID      int
	sessions    map[string]tracking.WorkSession
	captures    []tracking.Screenshot
	failCreate  bool
	failFinish  bool
	failCapture int // fail this many SaveCapture calls
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]tracking.WorkSession)}
}

func (g *fakeGateway) CreateSession(ctx context.Context, s tracking.WorkSession) (tracking.WorkSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCreate {
		return tracking.WorkSession{}, errors.New("storage unavailable")
	}
	g.nextID++
	s.ID = fmt.Sprintf("session-%d", g.nextID)
	g.sessions[s.ID] = s
	return s, nil
}

func (g *fakeGateway) FinishSession(ctx context.Context, id string, endTime time.Time, totalSeconds int64) (tracking.WorkSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failFinish {
		return tracking.WorkSession{}, errors.New("storage unavailable")
	}
	s, ok := g.sessions[id]
	if !ok {
		return tracking.WorkSession{}, tracking.ErrSessionNotFound
	}
	s.EndTime = &endTime
	s.TotalSeconds = totalSeconds
	s.IsActive = false
	g.sessions[id] = s
	return s, nil
}

func (g *fakeGateway) SaveCapture(ctx context.Context, shot tracking.Screenshot) (tracking.Screenshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCapture > 0 {
		g.failCapture--
		return tracking.Screenshot{}, errors.New("upload failed")
	}
	g.nextID++
	shot.ID = fmt.Sprintf("shot-%d", g.nextID)
	shot.ImageURL = "http://files.local/" + shot.ID
	g.captures = append(g.captures, shot)
	return shot, nil
}

// manualScheduler collects armed timers so tests fire them explicitly.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d         time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (m *manualScheduler) schedule(d time.Duration, fn func()) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{d: d, fn: fn}
	m.timers = append(m.timers, t)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		t.cancelled = true
	}
}

// fire runs the most recently armed timer, honouring cancellation the
// way time.AfterFunc.Stop does.
func (m *manualScheduler) fire(t *testing.T) {
	t.Helper()
	m.mu.Lock()
	require.NotEmpty(t, m.timers, "no timer armed")
	timer := m.timers[len(m.timers)-1]
	timer.fired = true
	m.mu.Unlock()
	if !timer.cancelled {
		timer.fn()
	}
}

// fireEvenIfCancelled simulates a timer callback that was already in
// flight when cancel was called.
func (m *manualScheduler) fireEvenIfCancelled(t *testing.T) {
	t.Helper()
	m.mu.Lock()
	require.NotEmpty(t, m.timers, "no timer armed")
	timer := m.timers[len(m.timers)-1]
	timer.fired = true
	m.mu.Unlock()
	timer.fn()
}

func (m *manualScheduler) armed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.cancelled && !t.fired {
			n++
		}
	}
	return n
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTracker(gw *fakeGateway) (*Tracker, *manualScheduler, *fakeClock) {
	sched := &manualScheduler{}
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	tr := NewTracker("user-1", 10*time.Minute, gw,
		WithScheduler(sched.schedule),
		WithClock(clock.Now),
		WithRetryDelay(0),
	)
	return tr, sched, clock
}

func TestStartCreatesSessionAndArmsCapture(t *testing.T) {
	gw := newFakeGateway()
	tr, sched, clock := newTestTracker(gw)

	session, err := tr.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, clock.Now(), session.StartTime)
	assert.Zero(t, session.TotalSeconds)
	assert.True(t, session.IsActive)
	assert.Equal(t, tracking.StateRunning, tr.Status().State)
	assert.Equal(t, 1, sched.armed())
}

func TestStartWhileTrackingIsRejected(t *testing.T) {
	gw := newFakeGateway()
	tr, _, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)

	_, err = tr.Start(context.Background())
	assert.ErrorIs(t, err, tracking.ErrAlreadyTracking)
	assert.Len(t, gw.sessions, 1)
}

func TestStartPersistenceFailureStaysIdle(t *testing.T) {
	gw := newFakeGateway()
	gw.failCreate = true
	tr, sched, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.Error(t, err)

	snap := tr.Status()
	assert.Equal(t, tracking.StateIdle, snap.State)
	assert.Nil(t, snap.Session)
	assert.Equal(t, 0, sched.armed())
}

func TestPauseOnlyFromRunning(t *testing.T) {
	gw := newFakeGateway()
	tr, _, _ := newTestTracker(gw)

	// Idle: rejected without a state change.
	assert.ErrorIs(t, tr.Pause(), tracking.ErrNotTracking)
	assert.Equal(t, tracking.StateIdle, tr.Status().State)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, tr.Pause())

	// Paused: a second pause is rejected.
	assert.ErrorIs(t, tr.Pause(), tracking.ErrNotTracking)
	assert.Equal(t, tracking.StatePaused, tr.Status().State)
}

func TestResumeOnlyFromPaused(t *testing.T) {
	gw := newFakeGateway()
	tr, _, _ := newTestTracker(gw)

	assert.ErrorIs(t, tr.Resume(), tracking.ErrNotPaused)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, tr.Resume(), tracking.ErrNotPaused)

	require.NoError(t, tr.Pause())
	require.NoError(t, tr.Resume())
	assert.Equal(t, tracking.StateRunning, tr.Status().State)
}

func TestResumeArmsFreshInterval(t *testing.T) {
	gw := newFakeGateway()
	tr, sched, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, tr.Pause())
	require.NoError(t, tr.Resume())

	// Start armed one timer, pause cancelled it, resume armed another
	// with the full interval.
	assert.Equal(t, 1, sched.armed())
	assert.Equal(t, 10*time.Minute, sched.timers[len(sched.timers)-1].d)
}

func TestNoCaptureWhilePaused(t *testing.T) {
	gw := newFakeGateway()
	tr, sched, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, tr.Pause())

	// The timer callback was already in flight when pause cancelled it;
	// the fire-time state check makes it a no-op.
	sched.fireEvenIfCancelled(t)

	assert.Empty(t, gw.captures)
	snap := tr.Status()
	assert.Zero(t, snap.ScreenshotCount)
	assert.Nil(t, snap.LastCaptureAt)
}

func TestNoCaptureWithoutSession(t *testing.T) {
	gw := newFakeGateway()
	tr, sched, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)
	_, err = tr.Stop(context.Background())
	require.NoError(t, err)

	sched.fireEvenIfCancelled(t)

	assert.Empty(t, gw.captures)
}

func TestCaptureRecordsAndReschedules(t *testing.T) {
	gw := newFakeGateway()
	tr, sched, clock := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	sched.fire(t)

	require.Len(t, gw.captures, 1)
	snap := tr.Status()
	assert.Equal(t, 1, snap.ScreenshotCount)
	require.NotNil(t, snap.LastCaptureAt)
	assert.Equal(t, clock.Now(), *snap.LastCaptureAt)
	// A fresh timer is armed for the next capture.
	assert.Equal(t, 1, sched.armed())

	clock.Advance(10 * time.Minute)
	sched.fire(t)
	assert.Len(t, gw.captures, 2)
}

func TestCaptureFailureStillReschedules(t *testing.T) {
	gw := newFakeGateway()
	gw.failCapture = 99
	tr, sched, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)

	sched.fire(t)

	assert.Empty(t, gw.captures)
	assert.Zero(t, tr.Status().ScreenshotCount)
	// A failed upload must not halt the rest of the session.
	assert.Equal(t, 1, sched.armed())
}

func TestCaptureUploadRetries(t *testing.T) {
	gw := newFakeGateway()
	gw.failCapture = 2 // first two attempts fail, third succeeds
	tr, sched, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)

	sched.fire(t)

	assert.Len(t, gw.captures, 1)
	assert.Equal(t, 1, tr.Status().ScreenshotCount)
}

func TestScreenshotOrdering(t *testing.T) {
	gw := newFakeGateway()
	tr, sched, clock := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		clock.Advance(10 * time.Minute)
		sched.fire(t)
	}

	shots := tr.Screenshots()
	require.Len(t, shots, 3)
	for i := 1; i < len(shots); i++ {
		assert.True(t, shots[i].CapturedAt.After(shots[i-1].CapturedAt))
	}
}

func TestStopFinalizesOnce(t *testing.T) {
	gw := newFakeGateway()
	tr, _, clock := newTestTracker(gw)

	started, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, tr.UpdateElapsed(5))

	clock.Advance(6 * time.Second)
	finished, err := tr.Stop(context.Background())
	require.NoError(t, err)

	require.NotNil(t, finished.EndTime)
	assert.Equal(t, clock.Now(), *finished.EndTime)
	assert.Equal(t, int64(5), finished.TotalSeconds)
	assert.False(t, finished.IsActive)
	assert.Equal(t, started.ID, finished.ID)

	// Second stop fails: no current session.
	_, err = tr.Stop(context.Background())
	assert.ErrorIs(t, err, tracking.ErrNoActiveSession)
}

func TestStopFromPaused(t *testing.T) {
	gw := newFakeGateway()
	tr, _, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, tr.UpdateElapsed(42))
	require.NoError(t, tr.Pause())

	finished, err := tr.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), finished.TotalSeconds)
	assert.Equal(t, tracking.StateIdle, tr.Status().State)
}

func TestStopPersistenceFailureKeepsState(t *testing.T) {
	gw := newFakeGateway()
	tr, _, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, tr.UpdateElapsed(7))

	gw.failFinish = true
	_, err = tr.Stop(context.Background())
	require.Error(t, err)

	// Pre-stop state survives so the caller can retry.
	snap := tr.Status()
	assert.Equal(t, tracking.StateRunning, snap.State)
	assert.Equal(t, int64(7), snap.Elapsed)

	gw.failFinish = false
	finished, err := tr.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), finished.TotalSeconds)
}

func TestUpdateElapsed(t *testing.T) {
	gw := newFakeGateway()
	tr, _, _ := newTestTracker(gw)

	assert.ErrorIs(t, tr.UpdateElapsed(1), tracking.ErrNoActiveSession)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, tr.UpdateElapsed(3))
	require.NoError(t, tr.UpdateElapsed(9))
	assert.Equal(t, int64(9), tr.Status().Elapsed)

	assert.ErrorIs(t, tr.UpdateElapsed(-1), tracking.ErrNegativeElapsed)

	// Accepted while paused too.
	require.NoError(t, tr.Pause())
	require.NoError(t, tr.UpdateElapsed(12))
	assert.Equal(t, int64(12), tr.Status().Elapsed)
}

func TestSetIntervalAppliesToNextArming(t *testing.T) {
	gw := newFakeGateway()
	tr, sched, _ := newTestTracker(gw)

	_, err := tr.Start(context.Background())
	require.NoError(t, err)

	tr.SetInterval(time.Minute)
	sched.fire(t)

	assert.Equal(t, time.Minute, sched.timers[len(sched.timers)-1].d)
}
