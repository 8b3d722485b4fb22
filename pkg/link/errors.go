package link

import (
	"errors"
	"fmt"
)

// Kind classifies transport failures.
type Kind int

// Transport failure kinds.
const (
	// DeviceUnavailable means the port could not be opened.
	DeviceUnavailable Kind = iota + 1
	// WriteTimeout means a write didn't complete in time.
	WriteTimeout
	// DeviceError means the device failed during an operation.
	DeviceError
	// ReadTimeout means a read was cut short because the session was closed.
	ReadTimeout
)

func (k Kind) String() string {
	switch k {
	case DeviceUnavailable:
		return "device unavailable"
	case WriteTimeout:
		return "write timeout"
	case DeviceError:
		return "device error"
	case ReadTimeout:
		return "read timeout"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a transport failure on a port.
type Error struct {
	Kind Kind
	Port string
	Err  error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Port, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Port, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrClosed indicates the session is already closed.
	ErrClosed = errors.New("session closed")
	// ErrShortWrite indicates the port accepted fewer bytes than written.
	ErrShortWrite = errors.New("short write")
)

func newError(kind Kind, port string, err error) *Error {
	return &Error{Kind: kind, Port: port, Err: err}
}

// KindOf returns the Kind of a transport error, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsDeviceUnavailable reports whether err is a DeviceUnavailable failure.
func IsDeviceUnavailable(err error) bool { return KindOf(err) == DeviceUnavailable }

// IsWriteTimeout reports whether err is a WriteTimeout failure.
func IsWriteTimeout(err error) bool { return KindOf(err) == WriteTimeout }

// IsDeviceError reports whether err is a DeviceError failure.
func IsDeviceError(err error) bool { return KindOf(err) == DeviceError }

// IsReadTimeout reports whether err is a ReadTimeout failure.
func IsReadTimeout(err error) bool { return KindOf(err) == ReadTimeout }

// IsFatal reports whether err ends a classification run.
func IsFatal(err error) bool { return KindOf(err) != 0 }
