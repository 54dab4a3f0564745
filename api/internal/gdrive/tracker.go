package gdrive

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrUploadBusy = errors.New("gdrive: a save is already in progress")
	ErrStale      = errors.New("gdrive: save is no longer authorizing")
)

// Tracker holds the upload status of one session and the timers that move
// it on their own: done falls back to idle after ResetDelay, and an
// authorization nobody finishes turns into error after AuthTimeout.
type Tracker struct {
	ResetDelay  time.Duration
	AuthTimeout time.Duration
	// OnChange, if set, sees every transition. It runs with the tracker locked.
	OnChange func(from, to Status)

	mu     sync.Mutex
	status Status
	timer  *time.Timer
	gen    uint64
}

func NewTracker(resetDelay, authTimeout time.Duration) *Tracker {
	return &Tracker{
		ResetDelay:  resetDelay,
		AuthTimeout: authTimeout,
		status:      StatusIdle,
	}
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Begin starts a save: idle, done or error move to authorizing.
func (t *Tracker) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Busy() {
		return ErrUploadBusy
	}
	t.set(StatusAuthorizing)
	if t.AuthTimeout > 0 {
		t.arm(t.AuthTimeout, StatusAuthorizing, StatusError)
	}
	return nil
}

// Uploading records that a token was obtained. It fails when the save was
// reset or timed out while the user was on the consent screen.
func (t *Tracker) Uploading() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusAuthorizing {
		return ErrStale
	}
	t.set(StatusUploading)
	return nil
}

// Done marks the upload finished and schedules the return to idle.
// It is ignored unless the tracker is uploading, so a reset in the
// meantime wins.
func (t *Tracker) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusUploading {
		return
	}
	t.set(StatusDone)
	if t.ResetDelay > 0 {
		t.arm(t.ResetDelay, StatusDone, StatusIdle)
	}
}

// Fail ends an in-flight save with error. Like Done, it does not touch an
// idle tracker.
func (t *Tracker) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.status.Busy() {
		return
	}
	t.set(StatusError)
}

// Reset returns to idle and cancels pending timers.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set(StatusIdle)
}

// Stop cancels pending timers without changing the status.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// set must be called with mu held. Any transition invalidates the pending timer.
func (t *Tracker) set(to Status) {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	from := t.status
	t.status = to
	if t.OnChange != nil && from != to {
		t.OnChange(from, to)
	}
}

// arm must be called with mu held, after set.
func (t *Tracker) arm(d time.Duration, from, to Status) {
	gen := t.gen
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen != gen || t.status != from {
			return
		}
		t.set(to)
	})
}
