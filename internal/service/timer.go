package service

import (
	"sync"
	"time"
)

// TimerRegistry keeps one-shot timers keyed by pomodoro ID. Callbacks run on
// their own goroutine (time.AfterFunc), so a slow callback never delays other
// timers. Cancel is idempotent: cancelling an unknown or already-fired timer
// is a no-op.
type TimerRegistry struct {
	mu     sync.Mutex
	timers map[uint]*time.Timer
}

func NewTimerRegistry() *TimerRegistry {
	return &TimerRegistry{timers: make(map[uint]*time.Timer)}
}

// Schedule arms a timer to invoke fn at or after runAt. Scheduling the same
// ID again replaces the previous timer.
func (r *TimerRegistry) Schedule(id uint, runAt time.Time, fn func()) {
	delay := time.Until(runAt)
	if delay < 0 {
		delay = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.timers[id]; ok {
		old.Stop()
	}
	r.timers[id] = time.AfterFunc(delay, func() {
		r.mu.Lock()
		delete(r.timers, id)
		r.mu.Unlock()
		fn()
	})
}

func (r *TimerRegistry) Cancel(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
}

// Armed reports whether a timer for the given ID is currently pending.
func (r *TimerRegistry) Armed(id uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[id]
	return ok
}

// Shutdown stops every pending timer. Fired callbacks already in flight are
// not interrupted.
func (r *TimerRegistry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}
