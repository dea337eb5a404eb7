package services

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled function once events stop
// arriving for the configured wait.
type Debouncer struct {
	wait      time.Duration
	afterFunc func(time.Duration, func()) *time.Timer

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a trailing-edge debouncer.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait, afterFunc: time.AfterFunc}
}

// Trigger schedules fn, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.afterFunc(d.wait, func() {
		d.mu.Lock()
		stale := seq != d.seq
		if !stale {
			d.timer = nil
		}
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
