package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDelay is the quiet period after the last keystroke before a
// free-text search is sent
const DefaultDelay = 350 * time.Millisecond

// Trigger says whether an action should run now or after the quiet period
type Trigger int

const (
	Immediate Trigger = iota
	Delayed
)

func (t Trigger) String() string {
	if t == Delayed {
		return "delayed"
	}
	return "immediate"
}

// Debouncer collapses bursts of scheduled actions into the last one.
//
// Like sync.Cond, a Debouncer is bound to a Locker L. L must be held when
// calling Schedule, Pending and Close. A delayed action runs on the
// clock's goroutine after acquiring L, so every action runs with L held and
// the owner's state needs no further locking.
type Debouncer struct {
	L sync.Locker

	clock  clockwork.Clock
	delay  time.Duration
	timer  clockwork.Timer
	gen    uint64
	closed bool
}

// New creates a debouncer with the given quiet period
func New(clock clockwork.Clock, delay time.Duration, l sync.Locker) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{L: l, clock: clock, delay: delay}
}

// Schedule cancels any pending action and then either runs action right away
// (Immediate) or arms a timer for it (Delayed).
func (d *Debouncer) Schedule(trigger Trigger, action func()) {
	if d.closed {
		return
	}
	d.stop()

	if trigger == Immediate {
		action()
		return
	}

	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen, action) })
}

// Pending reports whether a delayed action is armed
func (d *Debouncer) Pending() bool {
	return d.timer != nil
}

// Close cancels the pending action and makes later schedules no-ops
func (d *Debouncer) Close() {
	d.closed = true
	d.stop()
}

func (d *Debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// fire runs on the clock's goroutine. A timer that expired while a newer
// schedule was being made finds its generation outdated and does nothing.
func (d *Debouncer) fire(gen uint64, action func()) {
	d.L.Lock()
	defer d.L.Unlock()

	if d.closed || gen != d.gen {
		return
	}
	d.timer = nil
	d.gen++
	action()
}
