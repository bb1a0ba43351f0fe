package client

import (
	"sync"
	"time"
)

// DefaultTypingIdle is how long after the last keystroke the client reports
// it stopped typing.
const DefaultTypingIdle = 1000 * time.Millisecond

// Timer is a cancelable timer handle.
type Timer interface {
	Stop() bool
}

// Clock abstracts timer creation so debounce behavior is deterministic in
// tests.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// NewClock returns the wall-clock implementation.
func NewClock() Clock { return realClock{} }

// Debouncer turns raw keystrokes into typing_start / typing_stop pairs. The
// first keystroke after an idle period fires start; each keystroke restarts
// the idle timer; timer expiry or an explicit Flush (message sent) fires
// stop. The relay holds no typing state, so the pairing discipline lives
// entirely here.
type Debouncer struct {
	mu     sync.Mutex
	clock  Clock
	idle   time.Duration
	timer  Timer
	typing bool
	start  func()
	stop   func()
}

func NewDebouncer(clock Clock, idle time.Duration, start, stop func()) *Debouncer {
	return &Debouncer{clock: clock, idle: idle, start: start, stop: stop}
}

// Keystroke records one local keystroke.
func (d *Debouncer) Keystroke() {
	d.mu.Lock()
	fireStart := !d.typing
	d.typing = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.idle, d.expire)
	d.mu.Unlock()

	if fireStart {
		d.start()
	}
}

// Flush emits the stop immediately, as happens when the message is sent.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fireStop := d.typing
	d.typing = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if fireStop {
		d.stop()
	}
}

func (d *Debouncer) expire() {
	d.mu.Lock()
	fireStop := d.typing
	d.typing = false
	d.timer = nil
	d.mu.Unlock()

	if fireStop {
		d.stop()
	}
}
