package sim

// FrameState indicates whether a frame is partially received.
type FrameState int

const (
	// FrameIdle means no bytes of the next frame have arrived.
	FrameIdle FrameState = iota
	// FrameReceiving means a frame is partially received.
	FrameReceiving
)

// TimerAction defines what to do with the inter-byte gap timer.
type TimerAction int

const (
	// TimerRestart restarts the gap timer.
	TimerRestart TimerAction = iota
	// TimerStop stops the gap timer.
	TimerStop
)

// AssembleResult is the result of one assembling step.
type AssembleResult struct {
	State FrameState
	// Frame is set when the last byte of a frame arrived.
	Frame []byte
	// Dropped counts bytes of a partial frame discarded on timeout.
	Dropped int
}

// WhatAboutTimer decides what to do with the gap timer.
func (r AssembleResult) WhatAboutTimer() TimerAction {
	if r.State == FrameReceiving {
		return TimerRestart
	}
	return TimerStop
}

// Assembler collects a byte stream into fixed-size frames. A gap in the
// stream drops the partial frame so that the next byte starts a new one,
// which is how the device side resynchronizes after lost bytes.
type Assembler struct {
	frame []byte
	n     int
}

// NewAssembler creates an Assembler for frames of size bytes.
func NewAssembler(size int) *Assembler {
	return &Assembler{frame: make([]byte, size)}
}

// State gets the current frame state.
func (a *Assembler) State() FrameState {
	if a.n > 0 {
		return FrameReceiving
	}
	return FrameIdle
}

// Feed consumes one byte.
func (a *Assembler) Feed(b byte) (r AssembleResult) {
	a.frame[a.n] = b
	a.n++
	if a.n == len(a.frame) {
		r.Frame = make([]byte, len(a.frame))
		copy(r.Frame, a.frame)
		a.n = 0
	}
	r.State = a.State()
	return
}

// Timeout notifies the gap timer expired.
func (a *Assembler) Timeout() (r AssembleResult) {
	r.Dropped, a.n = a.n, 0
	r.State = a.State()
	return
}
