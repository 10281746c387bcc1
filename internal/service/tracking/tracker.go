package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
)

// Scheduler arms a one-shot timer and returns a cancel function. The
// production scheduler wraps time.AfterFunc; tests inject a manual one
// to fire captures deterministically.
type Scheduler func(d time.Duration, fn func()) (cancel func())

func afterFuncScheduler(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

const captureAttempts = 3

// Tracker is one user's time-tracking state machine. It moves between
// Idle, Running and Paused; a session exists while the machine is not
// Idle. In-memory state advances only after the gateway write succeeds,
// so a failed start leaves the machine Idle and a failed stop leaves
// the session open for a retry.
type Tracker struct {
	userID  string
	gateway Gateway

	schedule   Scheduler
	now        func() time.Time
	retryDelay time.Duration

	mu            sync.Mutex
	state         tracking.State
	session       *tracking.WorkSession
	elapsed       int64
	interval      time.Duration
	screenshots   []tracking.Screenshot
	lastCaptureAt *time.Time
	cancelCapture func()
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithScheduler replaces the capture timer implementation.
func WithScheduler(s Scheduler) Option {
	return func(t *Tracker) { t.schedule = s }
}

// WithRetryDelay changes the base delay between capture upload retries.
func WithRetryDelay(d time.Duration) Option {
	return func(t *Tracker) { t.retryDelay = d }
}

func NewTracker(userID string, interval time.Duration, gateway Gateway, opts ...Option) *Tracker {
	t := &Tracker{
		userID:     userID,
		gateway:    gateway,
		schedule:   afterFuncScheduler,
		now:        time.Now,
		retryDelay: time.Second,
		state:      tracking.StateIdle,
		interval:   interval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start checks the user in. Valid only from Idle.
func (t *Tracker) Start(ctx context.Context) (tracking.WorkSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != tracking.StateIdle {
		return tracking.WorkSession{}, tracking.ErrAlreadyTracking
	}

	session, err := t.gateway.CreateSession(ctx, tracking.WorkSession{
		UserID:    t.userID,
		StartTime: t.now(),
		IsActive:  true,
	})
	if err != nil {
		// Stay Idle; no partial session is kept.
		return tracking.WorkSession{}, fmt.Errorf("failed to persist session: %w", err)
	}

	t.session = &session
	t.elapsed = 0
	t.screenshots = nil
	t.lastCaptureAt = nil
	t.state = tracking.StateRunning
	t.armCaptureLocked()

	return session, nil
}

// Pause suspends capture and elapsed-time accumulation. Valid only
// from Running. The pending capture timer is cancelled, and capture
// re-checks state at fire time in case the timer already fired.
func (t *Tracker) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != tracking.StateRunning {
		return tracking.ErrNotTracking
	}

	if t.cancelCapture != nil {
		t.cancelCapture()
		t.cancelCapture = nil
	}
	t.state = tracking.StatePaused
	return nil
}

// Resume restarts capture with a full interval. Valid only from Paused.
func (t *Tracker) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != tracking.StatePaused {
		return tracking.ErrNotPaused
	}

	t.state = tracking.StateRunning
	t.armCaptureLocked()
	return nil
}

// UpdateElapsed sets the elapsed-seconds counter. The caller's tick
// owns monotonicity; the tracker accepts any non-negative value.
func (t *Tracker) UpdateElapsed(seconds int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == tracking.StateIdle || t.session == nil {
		return tracking.ErrNoActiveSession
	}
	if seconds < 0 {
		return tracking.ErrNegativeElapsed
	}

	t.elapsed = seconds
	t.session.TotalSeconds = seconds
	return nil
}

// Stop checks the user out. Valid from Running or Paused. On gateway
// failure the machine keeps its pre-stop state so the caller can retry.
func (t *Tracker) Stop(ctx context.Context) (tracking.WorkSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == tracking.StateIdle || t.session == nil {
		return tracking.WorkSession{}, tracking.ErrNoActiveSession
	}

	finished, err := t.gateway.FinishSession(ctx, t.session.ID, t.now(), t.elapsed)
	if err != nil {
		return tracking.WorkSession{}, fmt.Errorf("failed to finish session: %w", err)
	}

	if t.cancelCapture != nil {
		t.cancelCapture()
		t.cancelCapture = nil
	}
	finished.ScreenshotCount = len(t.screenshots)
	t.session = nil
	t.elapsed = 0
	t.state = tracking.StateIdle

	return finished, nil
}

// SetInterval changes the capture cadence. A pending capture keeps its
// original deadline; the new interval applies from the next arming.
func (t *Tracker) SetInterval(interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interval = interval
}

// Snapshot is a point-in-time view of the tracker.
type Snapshot struct {
	State           tracking.State
	Session         *tracking.WorkSession
	Elapsed         int64
	ScreenshotCount int
	LastCaptureAt   *time.Time
}

func (t *Tracker) Status() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		State:           t.state,
		Elapsed:         t.elapsed,
		ScreenshotCount: len(t.screenshots),
		LastCaptureAt:   t.lastCaptureAt,
	}
	if t.session != nil {
		s := *t.session
		snap.Session = &s
	}
	return snap
}

// Screenshots returns the captures of the current session in
// capture-completion order.
func (t *Tracker) Screenshots() []tracking.Screenshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]tracking.Screenshot, len(t.screenshots))
	copy(out, t.screenshots)
	return out
}

func (t *Tracker) armCaptureLocked() {
	t.cancelCapture = t.schedule(t.interval, func() {
		t.capture(context.Background())
	})
}

// capture runs when the timer fires. State is re-checked here: a timer
// that outlives a pause or stop becomes a no-op instead of recording a
// screenshot for a suspended session.
func (t *Tracker) capture(ctx context.Context) {
	t.mu.Lock()
	if t.state != tracking.StateRunning || t.session == nil {
		t.mu.Unlock()
		return
	}
	shot := tracking.Screenshot{
		SessionID:  t.session.ID,
		UserID:     t.userID,
		CapturedAt: t.now(),
	}
	t.mu.Unlock()

	saved, err := t.saveCaptureWithRetry(ctx, shot)

	t.mu.Lock()
	defer t.mu.Unlock()

	// The machine may have paused or stopped while the upload was in
	// flight; only a still-running session records the capture.
	if t.state == tracking.StateRunning && t.session != nil && t.session.ID == shot.SessionID {
		if err != nil {
			slog.Error("screenshot capture failed", "user_id", t.userID, "session_id", shot.SessionID, "error", err)
		} else {
			t.screenshots = append(t.screenshots, saved)
			at := saved.CapturedAt
			t.lastCaptureAt = &at
		}
		// Reschedule even after a failed upload; one bad capture must
		// not silently halt the rest of the session.
		t.armCaptureLocked()
	}
}

func (t *Tracker) saveCaptureWithRetry(ctx context.Context, shot tracking.Screenshot) (tracking.Screenshot, error) {
	var lastErr error
	for attempt := 1; attempt <= captureAttempts; attempt++ {
		saved, err := t.gateway.SaveCapture(ctx, shot)
		if err == nil {
			return saved, nil
		}
		lastErr = err
		if attempt < captureAttempts {
			time.Sleep(t.retryDelay * time.Duration(attempt))
		}
	}
	return tracking.Screenshot{}, fmt.Errorf("%w: %v", tracking.ErrCaptureUpload, lastErr)
}
