package engine

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Loop drives automatic week advancement at a fixed interval. Advance is
// supplied by the caller and must serialize its own state access.
type Loop struct {
	Interval time.Duration
	Advance  func()
	running  atomic.Bool
}

// NewLoop creates an auto-advance loop. Intervals below one second are
// raised to one second.
func NewLoop(interval time.Duration, advance func()) *Loop {
	if interval < time.Second {
		interval = time.Second
	}
	return &Loop{Interval: interval, Advance: advance}
}

// Running reports whether the loop is between Run and Stop.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Run starts the loop. Blocks until Stop is called.
func (l *Loop) Run() {
	l.running.Store(true)
	slog.Info("auto-advance started", "interval", l.Interval)

	for l.running.Load() {
		start := time.Now()
		l.Advance()

		elapsed := time.Since(start)
		if elapsed < l.Interval {
			time.Sleep(l.Interval - elapsed)
		}
	}

	slog.Info("auto-advance stopped")
}

// Stop halts the loop after the current week finishes. Safe to call from
// another goroutine.
func (l *Loop) Stop() {
	l.running.Store(false)
}
