package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/todio/internal/model"
)

const DefaultPollInterval = 10 * time.Second

// Snapshotter supplies the point-in-time task list a poll tick runs against.
type Snapshotter interface {
	Snapshot() []model.Task
}

// Runner drives a Notifier on a fixed poll interval and fans events out on a
// buffered channel. Sends never block; events the consumer cannot keep up
// with are counted and dropped.
type Runner struct {
	mu       sync.Mutex
	notifier *Notifier
	source   Snapshotter
	interval time.Duration
	clock    func() time.Time
	out      chan Event
	wakeup   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
}

func NewRunner(source Snapshotter, interval time.Duration, bufferSize int) *Runner {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Runner{
		notifier: NewNotifier(),
		source:   source,
		interval: interval,
		clock:    time.Now,
		out:      make(chan Event, bufferSize),
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetClock replaces the wall-clock source. Call before Start.
func (r *Runner) SetClock(clock func() time.Time) {
	if clock != nil {
		r.clock = clock
	}
}

func (r *Runner) C() <-chan Event {
	return r.out
}

func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true
	go r.loop()
}

func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.started || r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.stopCh)
	r.mu.Unlock()
	<-r.doneCh
}

// Wake forces a poll ahead of the next tick, typically after a store change.
func (r *Runner) Wake() {
	select {
	case r.wakeup <- struct{}{}:
	default:
	}
}

// Forget drops notification progress for a deleted task.
func (r *Runner) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifier.Forget(id)
}

func (r *Runner) Dropped() uint64 {
	return atomic.LoadUint64(&r.dropped)
}

func (r *Runner) loop() {
	defer close(r.doneCh)
	defer close(r.out)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.pollOnce()
		case <-r.wakeup:
			r.pollOnce()
		case <-r.stopCh:
			return
		}
	}
}

func (r *Runner) pollOnce() {
	now := r.clock()
	tasks := r.source.Snapshot()

	r.mu.Lock()
	events := r.notifier.Poll(now, tasks)
	r.mu.Unlock()

	for _, ev := range events {
		select {
		case r.out <- ev:
		default:
			atomic.AddUint64(&r.dropped, 1)
		}
	}
}
