package examrunner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// fakeScheduler captures registrations so tests fire them by hand.
type fakeScheduler struct {
	periodic []func()
	pending  map[string]func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[string]func())}
}

func (s *fakeScheduler) Every(_ time.Duration, fn func()) (stop func()) {
	s.periodic = append(s.periodic, fn)
	return func() {}
}

func (s *fakeScheduler) Debounce(key string, _ time.Duration, fn func()) {
	s.pending[key] = fn
}

// fire runs the pending debounced callback for key, as the quiet
// period elapsing would.
func (s *fakeScheduler) fire(key string) {
	if fn, ok := s.pending[key]; ok {
		delete(s.pending, key)
		fn()
	}
}

// recordSender collects answers; radio sends arrive on their own
// goroutines, so access is locked and tests wait on the counter.
type recordSender struct {
	mu   sync.Mutex
	sent []Answer
	got  chan struct{}
}

func newRecordSender() *recordSender {
	return &recordSender{got: make(chan struct{}, 16)}
}

func (r *recordSender) Send(_ context.Context, answer Answer) {
	r.mu.Lock()
	r.sent = append(r.sent, answer)
	r.mu.Unlock()
	r.got <- struct{}{}
}

// wait blocks until n answers have been delivered and returns them.
func (r *recordSender) wait(t *testing.T, n int) []Answer {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.got:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for send %d of %d", i+1, n)
		}
	}
	return r.answers()
}

func (r *recordSender) answers() []Answer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Answer(nil), r.sent...)
}

func TestRadioSendsImmediately(t *testing.T) {
	sched := newFakeScheduler()
	sender := newRecordSender()
	a := NewAutosave(sched, sender)

	field := Field{ID: "q1", Kind: FieldRadio, SubmissionID: "sub-1", QuestionID: "q-1"}
	a.OnChange(field, "B")
	a.OnChange(field, "C")

	got := sender.wait(t, 2)
	want := []Answer{
		{SubmissionID: "sub-1", QuestionID: "q-1", Response: "B"},
		{SubmissionID: "sub-1", QuestionID: "q-1", Response: "C"},
	}
	byResponse := cmpopts.SortSlices(func(a, b Answer) bool { return a.Response < b.Response })
	if diff := cmp.Diff(want, got, byResponse); diff != "" {
		t.Errorf("radio sends mismatch (-want +got):\n%s", diff)
	}
	if len(sched.pending) != 0 {
		t.Errorf("radio change scheduled a debounce, want none")
	}
}

func TestRadioSendDoesNotBlockEventPath(t *testing.T) {
	sched := newFakeScheduler()
	release := make(chan struct{})
	sender := &stallSender{release: release}
	a := NewAutosave(sched, sender)

	done := make(chan struct{})
	go func() {
		a.OnChange(Field{ID: "q1", Kind: FieldRadio, SubmissionID: "s", QuestionID: "q"}, "A")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("OnChange blocked on a slow sender")
	}
	close(release)
}

// stallSender blocks every delivery until released.
type stallSender struct {
	release chan struct{}
}

func (s *stallSender) Send(_ context.Context, _ Answer) {
	<-s.release
}

func TestTextDebounceSendsOnlyLastValue(t *testing.T) {
	sched := newFakeScheduler()
	sender := newRecordSender()
	a := NewAutosave(sched, sender)

	field := Field{ID: "q2", Kind: FieldText, SubmissionID: "sub-1", QuestionID: "q-2"}
	a.OnChange(field, "h")
	a.OnChange(field, "ha")
	a.OnChange(field, "harbour")

	if got := sender.answers(); len(got) != 0 {
		t.Fatalf("sent %d answers before the quiet period, want 0", len(got))
	}

	sched.fire("q2")

	want := []Answer{{SubmissionID: "sub-1", QuestionID: "q-2", Response: "harbour"}}
	if diff := cmp.Diff(want, sender.wait(t, 1)); diff != "" {
		t.Errorf("debounced send mismatch (-want +got):\n%s", diff)
	}
}

func TestTextFieldsDebounceIndependently(t *testing.T) {
	sched := newFakeScheduler()
	sender := newRecordSender()
	a := NewAutosave(sched, sender)

	f1 := Field{ID: "q3", Kind: FieldText, SubmissionID: "sub-1", QuestionID: "q-3"}
	f2 := Field{ID: "q4", Kind: FieldText, SubmissionID: "sub-1", QuestionID: "q-4"}
	a.OnChange(f1, "one")
	a.OnChange(f2, "two")

	sched.fire("q3")
	sched.fire("q4")

	want := []Answer{
		{SubmissionID: "sub-1", QuestionID: "q-3", Response: "one"},
		{SubmissionID: "sub-1", QuestionID: "q-4", Response: "two"},
	}
	if diff := cmp.Diff(want, sender.wait(t, 2)); diff != "" {
		t.Errorf("independent debounce mismatch (-want +got):\n%s", diff)
	}
}

func TestRunnerWiresCountdownAndAutosave(t *testing.T) {
	sched := newFakeScheduler()
	sender := newRecordSender()
	var display string

	r := New(Page{
		MinutesAttr: "30",
		Render:      func(s string) { display = s },
	}, sched, sender)
	r.Start()

	if display != "30:00" {
		t.Errorf("initial display = %q, want \"30:00\"", display)
	}
	if len(sched.periodic) != 1 {
		t.Fatalf("periodic registrations = %d, want 1", len(sched.periodic))
	}

	sched.periodic[0]()
	if display != "29:59" {
		t.Errorf("display after one tick = %q, want \"29:59\"", display)
	}

	r.OnChange(Field{ID: "q1", Kind: FieldRadio, SubmissionID: "s", QuestionID: "q"}, "A")
	if got := sender.wait(t, 1); len(got) != 1 {
		t.Errorf("sends after radio change = %d, want 1", len(got))
	}
}
