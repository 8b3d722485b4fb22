// Package report turns classification outcomes into text.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/robotalks/patchlink/pkg/classify"
)

// Describe returns the label of a successful outcome, or a diagnostic.
// An in-range class without a label is described by its index.
func Describe(o classify.Outcome, labels Labels) string {
	switch o.Status {
	case classify.Success:
		if label, ok := labels.Label(o.Class); ok {
			return label
		}
		return fmt.Sprintf("class %d", o.Class)
	case classify.OutOfRange:
		return fmt.Sprintf("out of range class %d", o.Class)
	case classify.Absent:
		return "no response"
	case classify.Malformed:
		return fmt.Sprintf("malformed response %q", o.Raw)
	}
	return o.Status.String()
}

// Counts tallies outcomes by status.
type Counts struct {
	Success    int
	OutOfRange int
	Absent     int
	Malformed  int
}

// Count tallies outcomes.
func Count(outcomes []classify.Outcome) (c Counts) {
	for _, o := range outcomes {
		switch o.Status {
		case classify.Success:
			c.Success++
		case classify.OutOfRange:
			c.OutOfRange++
		case classify.Absent:
			c.Absent++
		case classify.Malformed:
			c.Malformed++
		}
	}
	return
}

// Summary describes a run: how many patches completed out of total and
// the error that stopped it, if any.
func Summary(outcomes []classify.Outcome, total int, err error) string {
	c := Count(outcomes)
	s := fmt.Sprintf("%d/%d patches: %d classified, %d out of range, %d absent",
		len(outcomes), total, c.Success, c.OutOfRange, c.Absent)
	if c.Malformed > 0 {
		s += fmt.Sprintf(", %d malformed", c.Malformed)
	}
	if err != nil {
		s += fmt.Sprintf("; stopped: %v", err)
	}
	return s
}

// TextReporter writes one line per outcome.
type TextReporter struct {
	Out    io.Writer
	Labels Labels

	lock sync.Mutex
}

// NewTextReporter creates a TextReporter.
func NewTextReporter(out io.Writer, labels Labels) *TextReporter {
	return &TextReporter{Out: out, Labels: labels}
}

// HandleOutcome implements classify.OutcomeHandler.
func (r *TextReporter) HandleOutcome(o classify.Outcome) {
	r.lock.Lock()
	defer r.lock.Unlock()
	fmt.Fprintf(r.Out, "Patch (%d,%d) → %s\n", o.X, o.Y, Describe(o, r.Labels))
}
