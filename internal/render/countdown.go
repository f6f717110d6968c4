package render

import (
	"context"
	"sync"
	"time"
)

// Countdown is the time left until a target, split into display units.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// CountdownAt splits target-now into units. ok is false once the target has
// been reached.
func CountdownAt(target, now time.Time) (cd Countdown, ok bool) {
	d := target.Sub(now)
	if d <= 0 {
		return Countdown{}, false
	}
	secs := int64(d / time.Second)
	return Countdown{
		Days:    int(secs / 86400),
		Hours:   int(secs % 86400 / 3600),
		Minutes: int(secs % 3600 / 60),
		Seconds: int(secs % 60),
	}, true
}

// Ticker delivers ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// StartTicker calls fn every interval on its own goroutine until the
// returned cancel is called. cancel is safe to call more than once.
func StartTicker(interval time.Duration, fn func(time.Time)) (cancel func()) {
	t := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-t.C:
				fn(now)
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}

// CountdownTimer recomputes a Countdown once per interval.
type CountdownTimer struct {
	Target    time.Time
	Interval  time.Duration
	Now       func() time.Time
	NewTicker func(time.Duration) Ticker
}

// NewCountdownTimer returns a one-second countdown on the wall clock.
func NewCountdownTimer(target time.Time) *CountdownTimer {
	return &CountdownTimer{
		Target:    target,
		Interval:  time.Second,
		Now:       time.Now,
		NewTicker: NewTicker,
	}
}

// Run emits the current countdown immediately and again on every tick. When
// the target is reached it emits nil once and returns. It also returns when
// ctx is done; the ticker is stopped either way.
func (c *CountdownTimer) Run(ctx context.Context, emit func(*Countdown)) {
	if !c.tick(emit) {
		return
	}

	t := c.NewTicker(c.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			if !c.tick(emit) {
				return
			}
		}
	}
}

func (c *CountdownTimer) tick(emit func(*Countdown)) bool {
	cd, ok := CountdownAt(c.Target, c.Now())
	if !ok {
		emit(nil)
		return false
	}
	emit(&cd)
	return true
}
