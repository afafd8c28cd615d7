package examrunner

import "context"

// Answer is one autosaved response, keyed by the attempt and question
// it belongs to.
type Answer struct {
	SubmissionID string `json:"submission_id"`
	QuestionID   string `json:"question_id"`
	Response     string `json:"response"`
}

// Sender delivers answers best-effort. Implementations must swallow
// every failure: no retry, no surfaced error.
type Sender interface {
	Send(ctx context.Context, answer Answer)
}

// FieldKind selects how input events on a field are handled.
type FieldKind int

const (
	// FieldRadio commits on selection; every change is sent
	// immediately.
	FieldRadio FieldKind = iota
	// FieldText fires on every keystroke; sends are debounced and
	// only the last value in a quiet window goes out.
	FieldText
)

// Field is one answer input on the page.
type Field struct {
	ID           string
	Kind         FieldKind
	SubmissionID string
	QuestionID   string
}

// Autosave ships field changes to the answer endpoint. Fields debounce
// independently; there is no ordering guarantee between fields and no
// dedup of in-flight sends.
type Autosave struct {
	sched  Scheduler
	sender Sender
}

func NewAutosave(sched Scheduler, sender Sender) *Autosave {
	return &Autosave{sched: sched, sender: sender}
}

// OnChange handles one input event with the field's value at that
// moment.
func (a *Autosave) OnChange(field Field, value string) {
	answer := Answer{
		SubmissionID: field.SubmissionID,
		QuestionID:   field.QuestionID,
		Response:     value,
	}

	if field.Kind == FieldRadio {
		// Dispatch off the event path: the send is fire-and-forget and
		// must not block further input handling.
		go a.sender.Send(context.Background(), answer)
		return
	}

	a.sched.Debounce(field.ID, DebounceDelay, func() {
		a.sender.Send(context.Background(), answer)
	})
}
