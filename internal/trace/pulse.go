package trace

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// Pulse emits a heartbeat every interval until the returned stop is called,
// so a stuck ParseDir shows pulses without span ends. With tracing off or
// interval <= 0 it does nothing.
func Pulse(ctx context.Context, interval time.Duration) (stop func()) {
	t := FromContext(ctx)
	if t.Level() == LevelOff || interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for n := 1; ; n++ {
			select {
			case <-ticker.C:
				t.Emit(stamp(Event{
					Kind:   KindPulse,
					Scope:  ScopeCommand,
					Parent: CurrentSpan(ctx),
					Name:   "pulse",
					Attrs:  []Attr{Int("n", n), Int("goroutines", runtime.NumGoroutine())},
				}))
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return sync.OnceFunc(func() {
		close(done)
		wg.Wait()
	})
}
