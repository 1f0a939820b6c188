// Package reset flushes a demo session after the user confirms "Reset
// configuration".
//
// Confirmation does not navigate immediately. A Scheduler waits Delay (one
// second) and then asks a Navigator to open FlushTarget, which tells the
// backend to drop the demo session. The wait is tied to a context and can be
// cancelled with Stop, so a component that is torn down before the timer
// fires never acts on a dead screen.
//
//	s := reset.NewScheduler(reset.NewHTTPNavigator("http://localhost:8081"), reset.Delay)
//	s.Schedule(ctx)
//	defer s.Stop()
//	res := <-s.Done()
package reset
