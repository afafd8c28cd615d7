package examrunner

import (
	"fmt"
	"regexp"
	"testing"
)

type submitRecorder struct {
	count int
}

func (r *submitRecorder) form(action string) Form {
	return Form{Action: action, Submit: func() { r.count++ }}
}

func TestCountdownRunsToZeroAndSubmitsOnce(t *testing.T) {
	var rec submitRecorder
	var display string
	c := NewCountdown("2", func(s string) { display = s }, []Form{rec.form("/test/sample/finish/1")})

	for i := 1; i <= 119; i++ {
		c.Tick()
		if rec.count != 0 {
			t.Fatalf("submitted at tick %d, want submission only at tick 120", i)
		}
	}

	c.Tick() // tick 120: 2 minutes fully elapsed
	if display != "00:00" {
		t.Errorf("display after 120 ticks = %q, want \"00:00\"", display)
	}
	if rec.count != 1 {
		t.Fatalf("submissions after 120 ticks = %d, want 1", rec.count)
	}

	// The periodic tick keeps firing after expiry; it must stay a no-op.
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	if rec.count != 1 {
		t.Errorf("submissions after extra ticks = %d, want 1", rec.count)
	}
	if display != "00:00" {
		t.Errorf("display after extra ticks = %q, want \"00:00\"", display)
	}
}

func TestCountdownDisplayAlwaysMMSS(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{2,}:\d{2}$`)
	var display string
	c := NewCountdown("3", func(s string) { display = s }, nil)

	c.Render()
	for i := 0; i <= 180; i++ {
		if !pattern.MatchString(display) {
			t.Fatalf("display %q does not match MM:SS after %d ticks", display, i)
		}
		c.Tick()
	}
}

func TestCountdownDisplayMatchesCounters(t *testing.T) {
	var display string
	c := NewCountdown("2", func(s string) { display = s }, nil)

	remaining := 120
	for i := 0; i < 120; i++ {
		c.Tick()
		remaining--
		want := fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
		if display != want {
			t.Fatalf("tick %d: display = %q, want %q", i+1, display, want)
		}
	}
}

func TestCountdownDefaultsTo60Minutes(t *testing.T) {
	for _, attr := range []string{"", "abc", "12.5", "-3"} {
		var display string
		c := NewCountdown(attr, func(s string) { display = s }, nil)
		c.Render()
		if display != "60:00" {
			t.Errorf("minutes attr %q: initial display = %q, want \"60:00\"", attr, display)
		}
	}
}

func TestCountdownParsesMinutesAttr(t *testing.T) {
	var display string
	c := NewCountdown("45", func(s string) { display = s }, nil)
	c.Tick()
	if display != "44:59" {
		t.Errorf("display after one tick = %q, want \"44:59\"", display)
	}
}

func TestCountdownZeroMinutes(t *testing.T) {
	var rec submitRecorder
	var display string
	c := NewCountdown("0", func(s string) { display = s }, []Form{rec.form("/finish")})

	c.Render()
	if display != "00:00" {
		t.Errorf("initial display = %q, want \"00:00\"", display)
	}

	c.Tick()
	c.Tick()
	if rec.count != 1 {
		t.Errorf("submissions = %d, want 1", rec.count)
	}
}

func TestCountdownWithoutDisplayIsInert(t *testing.T) {
	var rec submitRecorder
	c := NewCountdown("0", nil, []Form{rec.form("/finish")})

	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if rec.count != 0 {
		t.Errorf("countdown without display submitted %d times, want 0", rec.count)
	}
}

func TestCountdownFinishFormMatching(t *testing.T) {
	var first, second, other submitRecorder
	forms := []Form{
		other.form("/test/sample/start"),
		first.form("/test/sample/finish/7"),
		second.form("/other/finish"),
	}
	c := NewCountdown("0", func(string) {}, forms)

	c.Tick()

	if other.count != 0 {
		t.Errorf("non-matching form submitted")
	}
	if first.count != 1 {
		t.Errorf("first matching form submissions = %d, want 1", first.count)
	}
	if second.count != 0 {
		t.Errorf("later matching form submitted, want first match only")
	}
}

func TestCountdownNoFinishFormIsNoop(t *testing.T) {
	var rec submitRecorder
	c := NewCountdown("0", func(string) {}, []Form{rec.form("/test/sample/start")})

	c.Tick() // must not panic or submit
	if rec.count != 0 {
		t.Errorf("submissions = %d, want 0", rec.count)
	}
	if !c.Expired() {
		t.Errorf("countdown not expired after zero-state tick")
	}
}
