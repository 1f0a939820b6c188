package reset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recordingNavigator records targets it was asked to open
type recordingNavigator struct {
	mu      sync.Mutex
	targets []string
	at      []time.Time
	err     error
}

func (n *recordingNavigator) Navigate(ctx context.Context, target string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
	n.at = append(n.at, time.Now())
	return n.err
}

func (n *recordingNavigator) calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

func waitResult(t *testing.T, s *Scheduler) Result {
	t.Helper()
	select {
	case res := <-s.Done():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for scheduler result")
		return Result{}
	}
}

func TestConstants(t *testing.T) {
	if Delay != time.Second {
		t.Errorf("Delay = %v, want 1s", Delay)
	}
	if FlushTarget != "/?flush_session=1" {
		t.Errorf("FlushTarget = %s, want /?flush_session=1", FlushTarget)
	}
}

func TestSchedulerNavigatesAfterDelay(t *testing.T) {
	nav := &recordingNavigator{}
	s := NewScheduler(nav, 50*time.Millisecond)

	start := time.Now()
	if !s.Schedule(context.Background()) {
		t.Fatal("Schedule() = false, want true")
	}
	if !s.Pending() {
		t.Error("Pending() should be true right after Schedule()")
	}

	res := waitResult(t, s)
	if res.Cancelled || res.Err != nil {
		t.Fatalf("Result = %+v, want success", res)
	}
	if res.Target != FlushTarget {
		t.Errorf("Target = %s, want %s", res.Target, FlushTarget)
	}

	calls := nav.calls()
	if len(calls) != 1 || calls[0] != FlushTarget {
		t.Fatalf("navigator calls = %v, want [%s]", calls, FlushTarget)
	}
	if elapsed := nav.at[0].Sub(start); elapsed < 50*time.Millisecond {
		t.Errorf("navigated after %v, want at least 50ms", elapsed)
	}
	if s.Pending() {
		t.Error("Pending() should be false after navigation")
	}
}

func TestSchedulerStopCancels(t *testing.T) {
	nav := &recordingNavigator{}
	s := NewScheduler(nav, time.Hour)

	s.Schedule(context.Background())
	if !s.Stop() {
		t.Fatal("Stop() = false, want true for a pending navigation")
	}

	res := waitResult(t, s)
	if !res.Cancelled {
		t.Errorf("Result = %+v, want cancelled", res)
	}
	if len(nav.calls()) != 0 {
		t.Errorf("navigator called %v after Stop()", nav.calls())
	}
	if s.Stop() {
		t.Error("second Stop() should report nothing pending")
	}
}

func TestSchedulerParentContextCancels(t *testing.T) {
	nav := &recordingNavigator{}
	s := NewScheduler(nav, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	s.Schedule(ctx)
	cancel()

	if res := waitResult(t, s); !res.Cancelled {
		t.Errorf("Result = %+v, want cancelled", res)
	}
}

func TestSchedulerIgnoresDoubleSchedule(t *testing.T) {
	nav := &recordingNavigator{}
	s := NewScheduler(nav, 30*time.Millisecond)

	s.Schedule(context.Background())
	if s.Schedule(context.Background()) {
		t.Error("second Schedule() while pending should return false")
	}

	waitResult(t, s)
	if got := len(nav.calls()); got != 1 {
		t.Errorf("navigator called %d times, want 1", got)
	}

	// Can be armed again once the first one finished
	if !s.Schedule(context.Background()) {
		t.Error("Schedule() after completion should return true")
	}
	waitResult(t, s)
}

func TestSchedulerReportsNavigationError(t *testing.T) {
	wantErr := errors.New("console unreachable")
	s := NewScheduler(&recordingNavigator{err: wantErr}, time.Millisecond)

	s.Schedule(context.Background())
	res := waitResult(t, s)
	if !errors.Is(res.Err, wantErr) {
		t.Errorf("Err = %v, want %v", res.Err, wantErr)
	}
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	nav := NavigatorFunc(func(ctx context.Context, target string) error {
		got = target
		return nil
	})

	if err := nav.Navigate(context.Background(), FlushTarget); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if got != FlushTarget {
		t.Errorf("target = %s, want %s", got, FlushTarget)
	}
}
