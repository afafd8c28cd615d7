// Package examrunner drives an exam-taking session the way the exam
// page does: a one-second countdown that submits the finish form when
// time runs out, and an autosave component that ships each answered
// question to the answer endpoint as the candidate works, debounced
// for free-text inputs.
//
// Timing sits behind the Scheduler interface and delivery behind the
// Sender interface, so the behaviors are deterministic under test and
// reusable by the headless exam agent.
package examrunner

import "time"

const (
	// DefaultMinutes is used when the page supplies no usable
	// duration.
	DefaultMinutes = 60

	// TickInterval is the countdown resolution.
	TickInterval = time.Second

	// DebounceDelay is the quiet period after the last keystroke in a
	// free-text field before its value is sent.
	DebounceDelay = 500 * time.Millisecond

	// AnswerEndpoint is the server path autosaved answers go to.
	AnswerEndpoint = "/api/answer"
)
