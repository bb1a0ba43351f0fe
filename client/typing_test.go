package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasLive := !t.stopped && t.f != nil
	t.stopped = true
	return wasLive
}

func (t *fakeTimer) fire() {
	if !t.stopped {
		f := t.f
		t.stopped = true
		f()
	}
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	timer := &fakeTimer{f: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *fakeClock) last() *fakeTimer { return c.timers[len(c.timers)-1] }

func newCountingDebouncer(clock Clock) (*Debouncer, *int, *int) {
	starts, stops := 0, 0
	d := NewDebouncer(clock, DefaultTypingIdle,
		func() { starts++ },
		func() { stops++ },
	)
	return d, &starts, &stops
}

func TestDebouncer_First_Keystroke_Fires_Start_Once(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{}
	d, starts, stops := newCountingDebouncer(clock)

	// When several keystrokes land within the idle window
	d.Keystroke()
	d.Keystroke()
	d.Keystroke()

	// Then start fired exactly once and stop not at all
	req.Equal(1, *starts)
	req.Equal(0, *stops)

	// And every keystroke rearmed the timer
	req.Len(clock.timers, 3)
	req.True(clock.timers[0].stopped)
	req.True(clock.timers[1].stopped)
	req.False(clock.timers[2].stopped)
}

func TestDebouncer_Idle_Expiry_Fires_Stop(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{}
	d, starts, stops := newCountingDebouncer(clock)

	d.Keystroke()

	// When the idle timer expires
	clock.last().fire()

	// Then the pair completed
	req.Equal(1, *starts)
	req.Equal(1, *stops)

	// And the next keystroke opens a fresh pair
	d.Keystroke()
	req.Equal(2, *starts)
}

func TestDebouncer_Flush_Fires_Stop_Immediately(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{}
	d, starts, stops := newCountingDebouncer(clock)

	d.Keystroke()

	// When the message is sent before the idle window closes
	d.Flush()

	req.Equal(1, *starts)
	req.Equal(1, *stops)

	// And the canceled timer can no longer double-fire the stop
	clock.last().fire()
	req.Equal(1, *stops)
}

func TestDebouncer_Flush_Without_Typing_Is_Silent(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{}
	d, starts, stops := newCountingDebouncer(clock)

	d.Flush()

	req.Equal(0, *starts)
	req.Equal(0, *stops)
}
