package examrunner

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerSchedulerDebounceCoalesces(t *testing.T) {
	s := NewTimerScheduler()

	var mu sync.Mutex
	var got []string
	record := func(v string) func() {
		return func() {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		}
	}

	s.Debounce("field", 30*time.Millisecond, record("first"))
	s.Debounce("field", 30*time.Millisecond, record("second"))
	s.Debounce("field", 30*time.Millisecond, record("last"))

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "last" {
		t.Errorf("debounced calls = %v, want only \"last\"", got)
	}
}

func TestTimerSchedulerEveryStops(t *testing.T) {
	s := NewTimerScheduler()

	var ticks int64
	stop := s.Every(10*time.Millisecond, func() { atomic.AddInt64(&ticks, 1) })

	time.Sleep(100 * time.Millisecond)
	stop()
	stop() // stopping twice must be safe

	if atomic.LoadInt64(&ticks) == 0 {
		t.Fatalf("periodic callback never ran")
	}

	at := atomic.LoadInt64(&ticks)
	time.Sleep(100 * time.Millisecond)
	// One tick may have been in flight while stopping.
	if after := atomic.LoadInt64(&ticks); after > at+1 {
		t.Errorf("ticks kept running after stop: %d -> %d", at, after)
	}
}
