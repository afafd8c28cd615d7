package examrunner

import (
	"fmt"
	"strconv"
	"strings"
)

// Form is a submittable form on the page, identified by its action URL.
type Form struct {
	Action string
	Submit func()
}

// Countdown owns the remaining-time state of one exam session. It is
// advanced by Tick once per second; it never schedules itself.
// Not safe for concurrent use: the scheduler serializes ticks.
type Countdown struct {
	minutes   int
	seconds   int
	submitted bool
	render    func(string)
	forms     []Form
}

// NewCountdown parses the page-supplied minute count (base 10),
// falling back to DefaultMinutes when it is absent, unparseable or
// negative. A nil render makes the whole component inert, matching a
// page without a timer display.
func NewCountdown(minutesAttr string, render func(string), forms []Form) *Countdown {
	minutes, err := strconv.Atoi(strings.TrimSpace(minutesAttr))
	if err != nil || minutes < 0 {
		minutes = DefaultMinutes
	}
	return &Countdown{
		minutes: minutes,
		seconds: 0,
		render:  render,
		forms:   forms,
	}
}

// Display returns the current remaining time as zero-padded MM:SS.
func (c *Countdown) Display() string {
	return fmt.Sprintf("%02d:%02d", c.minutes, c.seconds)
}

// Render writes the current display. Called once when the session
// starts so the page shows the full duration before the first tick.
func (c *Countdown) Render() {
	if c.render != nil {
		c.render(c.Display())
	}
}

// Tick advances the countdown by one second and re-renders. On the
// transition into the zero state it submits the first form whose
// action contains "finish", exactly once; every invocation after that
// returns immediately, so the periodic tick keeps firing as a no-op.
func (c *Countdown) Tick() {
	if c.render == nil {
		return
	}
	if c.seconds == 0 {
		if c.minutes == 0 {
			c.expire()
			return
		}
		c.minutes--
		c.seconds = 59
	} else {
		c.seconds--
	}
	c.render(c.Display())
	if c.minutes == 0 && c.seconds == 0 {
		c.expire()
	}
}

// Expired reports whether the countdown has reached its terminal state.
func (c *Countdown) Expired() bool {
	return c.submitted
}

func (c *Countdown) expire() {
	if c.submitted {
		return
	}
	c.submitted = true
	// First match in document order; zero matches is a silent no-op.
	for _, f := range c.forms {
		if strings.Contains(f.Action, "finish") {
			f.Submit()
			return
		}
	}
}
