package classify

import "fmt"

// RunError is a transport failure that ended a run early.
type RunError struct {
	// Completed is the number of patches with a recorded outcome.
	Completed int
	Total     int
	Err       error
}

// Error implements error.
func (e *RunError) Error() string {
	return fmt.Sprintf("run aborted after %d/%d patches: %v", e.Completed, e.Total, e.Err)
}

// Unwrap returns the transport error.
func (e *RunError) Unwrap() error {
	return e.Err
}
