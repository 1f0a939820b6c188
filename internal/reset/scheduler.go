package reset

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/logging"
)

// Result is delivered on Done once a scheduled navigation finishes or is cancelled
type Result struct {
	Target    string
	Cancelled bool
	Err       error
}

// Scheduler runs one delayed, cancellable navigation at a time
type Scheduler struct {
	navigator Navigator
	delay     time.Duration
	target    string

	mu      sync.Mutex
	cancel  context.CancelFunc
	pending bool
	done    chan Result
}

// NewScheduler creates a scheduler that navigates to FlushTarget after delay
func NewScheduler(nav Navigator, delay time.Duration) *Scheduler {
	return &Scheduler{
		navigator: nav,
		delay:     delay,
		target:    FlushTarget,
		done:      make(chan Result, 1),
	}
}

// Target returns the navigation target
func (s *Scheduler) Target() string {
	return s.target
}

// Schedule arms the timer. It returns false when a navigation is already
// pending; the pending one is kept.
func (s *Scheduler) Schedule(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.pending = true

	logging.Info("Reset scheduled",
		zap.Duration("delay", s.delay),
		zap.String("target", s.target),
	)

	go s.run(ctx)
	return true
}

// Stop cancels a pending navigation. It reports whether one was pending.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending {
		return false
	}
	s.cancel()
	return true
}

// Pending reports whether a navigation is armed or in flight
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Done delivers the outcome of each scheduled navigation
func (s *Scheduler) Done() <-chan Result {
	return s.done
}

func (s *Scheduler) run(ctx context.Context) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	var res Result
	res.Target = s.target

	select {
	case <-ctx.Done():
		res.Cancelled = true
		logging.Debug("Reset cancelled before navigation", zap.String("target", s.target))
	case <-timer.C:
		res.Err = s.navigator.Navigate(ctx, s.target)
		if res.Err != nil {
			logging.Error("Reset navigation failed", zap.Error(res.Err))
		} else {
			logging.Info("Reset navigation completed", zap.String("target", s.target))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.cancel()

	// Drop a stale unread result so the newest one wins
	select {
	case <-s.done:
	default:
	}
	s.done <- res
}
