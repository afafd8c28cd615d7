package examrunner

import (
	"sync"
	"time"
)

// Scheduler decouples timing policy from page behavior. Every runs fn
// repeatedly until the returned stop function is called. Debounce
// schedules fn after delay under the given key, cancelling any send
// still pending for that key.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
	Debounce(key string, delay time.Duration, fn func())
}

// TimerScheduler is the wall-clock Scheduler.
type TimerScheduler struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{pending: make(map[string]*time.Timer)}
}

func (s *TimerScheduler) Every(interval time.Duration, fn func()) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				ticker.Stop()
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

func (s *TimerScheduler) Debounce(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[key]; ok {
		t.Stop()
	}
	s.pending[key] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
		fn()
	})
}
