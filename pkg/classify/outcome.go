package classify

import "fmt"

// Status is the per-patch result kind.
type Status int

// Outcome statuses.
const (
	// Success means an in-range class index arrived.
	Success Status = iota
	// OutOfRange means the reply was not below the number of classes.
	OutOfRange
	// Absent means nothing arrived within the read timeout.
	Absent
	// Malformed means a line reply could not be parsed as an index.
	Malformed
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case OutOfRange:
		return "out-of-range"
	case Absent:
		return "absent"
	case Malformed:
		return "malformed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome is the classification result of one patch.
type Outcome struct {
	// Index is the position of the patch in the sequence.
	Index  int
	X      int
	Y      int
	Status Status
	// Class is the received index; meaningful for Success and OutOfRange.
	Class int
	// Raw holds the received text for line replies.
	Raw string
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o.Status {
	case Success, OutOfRange:
		return fmt.Sprintf("#%d (%d,%d) %s %d", o.Index, o.X, o.Y, o.Status, o.Class)
	case Malformed:
		return fmt.Sprintf("#%d (%d,%d) %s %q", o.Index, o.X, o.Y, o.Status, o.Raw)
	}
	return fmt.Sprintf("#%d (%d,%d) %s", o.Index, o.X, o.Y, o.Status)
}

// OutcomeHandler is notified after each outcome is recorded.
type OutcomeHandler interface {
	HandleOutcome(Outcome)
}

// HandleOutcomeFunc is func type of OutcomeHandler.
type HandleOutcomeFunc func(Outcome)

// HandleOutcome implements OutcomeHandler.
func (f HandleOutcomeFunc) HandleOutcome(o Outcome) {
	f(o)
}

// Handlers fans an outcome out to multiple handlers.
type Handlers []OutcomeHandler

// HandleOutcome implements OutcomeHandler.
func (h Handlers) HandleOutcome(o Outcome) {
	for _, handler := range h {
		if handler != nil {
			handler.HandleOutcome(o)
		}
	}
}
