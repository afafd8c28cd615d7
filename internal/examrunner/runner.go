package examrunner

// Page describes what the runner finds when the exam page loads: the
// timer display (nil Render means no display and an inert countdown),
// the duration attribute, and the page's forms.
type Page struct {
	MinutesAttr string
	Render      func(string)
	Forms       []Form
}

// Runner wires the countdown and autosave to one page. The two
// behaviors are independent reactions to the same page-ready signal.
type Runner struct {
	countdown *Countdown
	autosave  *Autosave
	sched     Scheduler
	stopTick  func()
}

func New(page Page, sched Scheduler, sender Sender) *Runner {
	return &Runner{
		countdown: NewCountdown(page.MinutesAttr, page.Render, page.Forms),
		autosave:  NewAutosave(sched, sender),
		sched:     sched,
	}
}

// Start renders the initial time and begins ticking. The periodic tick
// is never cancelled on expiry; it idles once the countdown submits.
func (r *Runner) Start() {
	r.countdown.Render()
	r.stopTick = r.sched.Every(TickInterval, r.countdown.Tick)
}

// OnChange forwards a field input event to the autosaver.
func (r *Runner) OnChange(field Field, value string) {
	r.autosave.OnChange(field, value)
}

// Countdown exposes the timer state. Read it only from the tick
// goroutine or after Stop.
func (r *Runner) Countdown() *Countdown {
	return r.countdown
}

// Stop is the page-unload analogue: it halts the periodic tick.
// In-flight sends are not cancelled.
func (r *Runner) Stop() {
	if r.stopTick != nil {
		r.stopTick()
		r.stopTick = nil
	}
}
