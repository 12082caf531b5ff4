// Package uiloop provides the single UI thread the overlay runtime runs on.
//
// A Loop executes posted tasks and frame callbacks one at a time on the
// goroutine that called Run. Components driven by the loop (the animator, the
// event gate, the overlay controller) may therefore share state without
// locks. Other goroutines hand work to the loop with Post.
package uiloop

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the frame interval used when none is configured.
const DefaultInterval = time.Second / 60

// Loop is a serial task and frame scheduler.
type Loop struct {
	interval time.Duration
	wake     chan struct{}
	quitCh   chan error

	mu     sync.Mutex
	tasks  []func()
	frames []func()

	afterTurn []func()
}

// New creates a loop that fires frame callbacks every interval. A
// non-positive interval selects DefaultInterval.
func New(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		interval: interval,
		wake:     make(chan struct{}, 1),
		quitCh:   make(chan error, 1),
	}
}

// Interval returns the frame interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Post schedules fn to run on the UI thread. It may be called from any
// goroutine, including the UI thread itself, and never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// PendingTasks returns the number of posted tasks that have not run.
func (l *Loop) PendingTasks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

func (l *Loop) takeTasks() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks := l.tasks
	l.tasks = nil
	return tasks
}

// RequestFrame schedules fn to run once at the next frame tick. Callbacks
// requested while frames are firing run on the following tick.
func (l *Loop) RequestFrame(fn func()) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
}

// PendingFrames returns the number of frame callbacks waiting for a tick.
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// AfterTurn registers fn to run after every batch of tasks or frames. Hosts
// use it to repaint. It must be called before Run.
func (l *Loop) AfterTurn(fn func()) {
	l.afterTurn = append(l.afterTurn, fn)
}

// Quit makes Run return err. It never blocks; only the first call in a run
// has an effect.
func (l *Loop) Quit(err error) {
	select {
	case l.quitCh <- err:
	default:
	}
}

// Run executes tasks and frames until ctx is done or Quit is called.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-l.quitCh:
			return err
		case <-l.wake:
			// Tasks posted while draining run in the same turn so a burst
			// of input is handled before the next repaint.
			if l.RunPending() > 0 {
				l.endTurn()
			}
		case <-ticker.C:
			if l.FireFrames() > 0 {
				l.endTurn()
			}
		}
	}
}

// FireFrames runs the callbacks that were pending when it was called and
// returns how many ran. Run calls it on every tick; tests call it directly to
// simulate a display refresh.
func (l *Loop) FireFrames() int {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, fn := range frames {
		fn()
	}
	return len(frames)
}

// RunPending runs queued tasks without blocking and returns how many ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		tasks := l.takeTasks()
		if len(tasks) == 0 {
			return n
		}
		for _, task := range tasks {
			task()
		}
		n += len(tasks)
	}
}

func (l *Loop) endTurn() {
	for _, fn := range l.afterTurn {
		fn()
	}
}
