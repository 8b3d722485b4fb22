package link

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/patchlink/pkg/framework"
)

// Session is an open channel to one accelerator.
type Session struct {
	port         Port
	name         string
	writeTimeout time.Duration

	closed    int32
	closeOnce sync.Once
	closeErr  error

	rbuf [1]byte
}

// Open opens the port described by cfg.
func Open(cfg Config) (*Session, error) {
	port, err := Dial(cfg)
	if err != nil {
		return nil, newError(DeviceUnavailable, cfg.Port, err)
	}
	glog.Infof("opened %s (%d baud)", cfg.Port, cfg.Baud)
	s := NewSession(port, cfg)
	if cfg.SettleDelay > 0 {
		time.Sleep(cfg.SettleDelay)
	}
	return s, nil
}

// NewSession wraps an already opened Port.
func NewSession(port Port, cfg Config) *Session {
	return &Session{port: port, name: cfg.Port, writeTimeout: cfg.WriteTimeout}
}

// WithSession opens a session, runs fn and always closes the session.
func WithSession(cfg Config, fn func(*Session) error) error {
	s, err := Open(cfg)
	if err != nil {
		return err
	}
	var errs fx.AggregatedError
	errs.Add(fn(s))
	errs.Add(s.Close())
	return errs.Aggregate()
}

// Name returns the port identifier.
func (s *Session) Name() string {
	return s.name
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return atomic.LoadInt32(&s.closed) != 0
}

// Close releases the port. It is idempotent and may be called from
// another goroutine to abort a blocked read or write.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		atomic.StoreInt32(&s.closed, 1)
		s.closeErr = s.port.Close()
		glog.V(2).Infof("closed %s", s.name)
	})
	return s.closeErr
}

// WriteBytes transmits p. ModePaced writes and flushes one byte at a time,
// sleeping delay after each; ModeBlock writes p at once and flushes.
// Failures are not retried.
func (s *Session) WriteBytes(p []byte, mode Mode, delay time.Duration) error {
	if s.Closed() {
		return newError(DeviceError, s.name, ErrClosed)
	}
	if mode == ModeBlock {
		return s.writeChunk(p)
	}
	for i := range p {
		if err := s.writeChunk(p[i : i+1]); err != nil {
			return err
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	return nil
}

func (s *Session) writeChunk(p []byte) error {
	var err error
	if d, ok := s.port.(writeDeadliner); ok || s.writeTimeout <= 0 {
		if ok && s.writeTimeout > 0 {
			if err = d.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
				return s.writeErr(err)
			}
		}
		err = s.write(p)
	} else {
		err = s.writeBounded(p)
	}
	return s.writeErr(err)
}

func (s *Session) write(p []byte) error {
	n, err := s.port.Write(p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return ErrShortWrite
	}
	return s.port.Flush()
}

// writeBounded enforces the write timeout on ports without deadlines.
// A stalled write is released by closing the port.
func (s *Session) writeBounded(p []byte) error {
	done := make(chan error, 1)
	go func() {
		done <- s.write(p)
	}()
	timer := time.NewTimer(s.writeTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		s.Close()
		return ErrPollExpired
	}
}

func (s *Session) writeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case os.IsTimeout(err):
		return newError(WriteTimeout, s.name, err)
	case s.Closed():
		return newError(DeviceError, s.name, ErrClosed)
	}
	return newError(DeviceError, s.name, err)
}

// ReadByte waits up to timeout for one byte. ok is false when nothing
// arrived, which is not an error.
func (s *Session) ReadByte(timeout time.Duration) (b byte, ok bool, err error) {
	if s.Closed() {
		return 0, false, newError(ReadTimeout, s.name, ErrClosed)
	}
	deadline := time.Now().Add(timeout)
	if d, isDeadliner := s.port.(readDeadliner); isDeadliner {
		if err = d.SetReadDeadline(deadline); err != nil {
			return 0, false, s.readErr(err)
		}
	}
	for {
		n, rerr := s.port.Read(s.rbuf[:])
		if n > 0 {
			return s.rbuf[0], true, nil
		}
		if rerr != nil && !os.IsTimeout(rerr) {
			return 0, false, s.readErr(rerr)
		}
		if s.Closed() {
			return 0, false, newError(ReadTimeout, s.name, ErrClosed)
		}
		if !time.Now().Before(deadline) {
			return 0, false, nil
		}
	}
}

func (s *Session) readErr(err error) error {
	if s.Closed() {
		return newError(ReadTimeout, s.name, ErrClosed)
	}
	return newError(DeviceError, s.name, err)
}

// ReadLine reads a newline terminated response within timeout, with at
// most max bytes. A partial line is returned if the timeout hits after
// some bytes arrived; ok is false only when nothing arrived.
func (s *Session) ReadLine(timeout time.Duration, max int) (line string, ok bool, err error) {
	var sb strings.Builder
	deadline := time.Now().Add(timeout)
	for sb.Len() < max {
		remain := time.Until(deadline)
		if remain < 0 {
			remain = 0
		}
		b, got, err := s.ReadByte(remain)
		if err != nil {
			return "", false, err
		}
		if !got {
			break
		}
		if b == '\n' {
			return strings.TrimRight(sb.String(), "\r"), true, nil
		}
		sb.WriteByte(b)
	}
	if sb.Len() == 0 {
		return "", false, nil
	}
	return strings.TrimRight(sb.String(), "\r"), true, nil
}

// Drain discards bytes already waiting on the port, up to max. It stops
// at the first read that stays quiet for the quiet duration.
func (s *Session) Drain(quiet time.Duration, max int) (int, error) {
	n := 0
	for n < max {
		_, ok, err := s.ReadByte(quiet)
		if err != nil {
			return n, err
		}
		if !ok {
			break
		}
		n++
	}
	return n, nil
}
