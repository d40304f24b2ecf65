// Package autosave debounces persistence of an edited value: bursts of
// changes collapse into one commit after a quiet period, and a manual save
// cancels the pending timer and commits at once.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/cryptox"
	"github.com/dmitrijs2005/quotekeeper/internal/logging"
)

// DefaultDelay is the quiet period used when Options.Delay is zero.
const DefaultDelay = 2 * time.Second

// ErrClosed is returned by ManualSave after Close.
var ErrClosed = errors.New("autosave: engine closed")

// State is the engine's tri-state status.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateWriting State = "writing"
)

// CommitFunc persists value. isAutoSave is false for manual saves.
type CommitFunc[T any] func(ctx context.Context, value T, isAutoSave bool) error

// Options configure an Engine.
type Options[T any] struct {
	Delay time.Duration
	// Equal compares two values. The default compares SHA-256 digests of
	// their canonical JSON form, so map key order does not matter.
	Equal  func(a, b T) bool
	Logger logging.Logger
	Now    func() time.Time
}

// Status is a point-in-time view of the engine.
type Status struct {
	State             State
	IsSaving          bool
	LastSaved         time.Time
	HasUnsavedChanges bool
	// Degraded is set when the last auto-save failed and cleared by the next
	// successful commit. LastError holds that failure.
	Degraded  bool
	LastError error
}

// Engine is safe for concurrent use.
type Engine[T any] struct {
	commit CommitFunc[T]
	delay  time.Duration
	equal  func(a, b T) bool
	log    logging.Logger
	now    func() time.Time

	// commitMu keeps commits strictly sequential.
	commitMu sync.Mutex
	wg       sync.WaitGroup

	mu        sync.Mutex
	current   T
	saved     T
	timer     *time.Timer
	timerSeq  uint64
	saving    int
	lastSaved time.Time
	dirty     bool
	degraded  bool
	lastErr   error
	closed    bool
}

// New starts watching initial, which is treated as already persisted.
func New[T any](initial T, commit CommitFunc[T], opts Options[T]) *Engine[T] {
	e := &Engine[T]{
		commit:  commit,
		delay:   opts.Delay,
		equal:   opts.Equal,
		log:     opts.Logger,
		now:     opts.Now,
		current: initial,
		saved:   initial,
	}
	if e.delay <= 0 {
		e.delay = DefaultDelay
	}
	if e.equal == nil {
		e.equal = func(a, b T) bool { return cryptox.Equal(a, b) }
	}
	if e.log == nil {
		e.log = logging.NopLogger{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Observe records the latest value. A value different from the previous one
// restarts the quiet period; a value equal to the last committed one cancels
// any pending write.
func (e *Engine[T]) Observe(v T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.equal(v, e.current) {
		return
	}
	e.current = v
	e.dirty = !e.equal(v, e.saved)

	e.stopTimerLocked()
	if !e.dirty {
		return
	}
	seq := e.timerSeq
	e.timer = time.AfterFunc(e.delay, func() { e.fire(seq) })
}

func (e *Engine[T]) stopTimerLocked() {
	e.timerSeq++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine[T]) fire(seq uint64) {
	e.mu.Lock()
	if e.closed || seq != e.timerSeq || !e.dirty {
		e.mu.Unlock()
		return
	}
	e.timer = nil
	e.saving++
	e.wg.Add(1)
	e.mu.Unlock()

	defer e.wg.Done()
	ctx := context.Background()
	if err := e.runAuto(ctx); err != nil {
		e.log.Error(ctx, "auto-save failed", "error", err)
	}
}

// ManualSave cancels any pending auto-save and commits the latest value as of
// acquiring the commit slot, whether or not it changed. Its error is returned
// to the caller.
func (e *Engine[T]) ManualSave(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.stopTimerLocked()
	e.saving++
	e.mu.Unlock()

	e.commitMu.Lock()
	defer e.commitMu.Unlock()

	e.mu.Lock()
	value := e.current
	e.mu.Unlock()

	return e.commitLocked(ctx, value, false)
}

// runAuto commits the latest value as of taking commitMu. It is skipped when
// a manual save has already committed that value while it waited.
func (e *Engine[T]) runAuto(ctx context.Context) error {
	e.commitMu.Lock()
	defer e.commitMu.Unlock()

	e.mu.Lock()
	if !e.dirty {
		e.saving--
		e.mu.Unlock()
		return nil
	}
	value := e.current
	e.mu.Unlock()

	return e.commitLocked(ctx, value, true)
}

// commitLocked runs commit with commitMu held. The caller has already
// counted it in e.saving.
func (e *Engine[T]) commitLocked(ctx context.Context, value T, auto bool) error {
	err := e.commit(ctx, value, auto)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving--
	if err != nil {
		if auto {
			e.degraded = true
			e.lastErr = err
		}
		return err
	}
	e.saved = value
	e.lastSaved = e.now()
	e.dirty = !e.equal(e.current, e.saved)
	e.degraded = false
	e.lastErr = nil
	return nil
}

// Status returns the current status.
func (e *Engine[T]) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		State:             StateIdle,
		IsSaving:          e.saving > 0,
		LastSaved:         e.lastSaved,
		HasUnsavedChanges: e.dirty,
		Degraded:          e.degraded,
		LastError:         e.lastErr,
	}
	switch {
	case e.saving > 0:
		st.State = StateWriting
	case e.timer != nil:
		st.State = StatePending
	}
	return st
}

// Value returns the latest observed value.
func (e *Engine[T]) Value() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Close cancels the pending timer and waits for a running auto-save to
// finish. Later observations are ignored.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.stopTimerLocked()
	e.mu.Unlock()

	e.wg.Wait()
}
