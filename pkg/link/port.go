package link

import (
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Port is the raw channel a Session drives.
//
// Read must return within a bounded time, either by honoring
// SetReadDeadline or by an inter-read poll timeout configured at open;
// a poll expiry is reported as an error satisfying os.IsTimeout.
type Port interface {
	io.ReadWriteCloser

	// Flush forces buffered bytes onto the wire.
	Flush() error
}

type readDeadliner interface {
	SetReadDeadline(time.Time) error
}

type writeDeadliner interface {
	SetWriteDeadline(time.Time) error
}

// Dialer opens a Port for a URL-style port identifier.
type Dialer func(u *url.URL, cfg Config) (Port, error)

var (
	dialers     = make(map[string]Dialer)
	dialersLock sync.RWMutex
)

// RegisterDialer registers a Dialer for a URL scheme.
func RegisterDialer(scheme string, d Dialer) {
	dialersLock.Lock()
	dialers[scheme] = d
	dialersLock.Unlock()
}

// Dial opens the Port described by cfg without wrapping it in a Session.
// Identifiers without a scheme are opened as serial devices.
func Dial(cfg Config) (Port, error) {
	if !strings.Contains(cfg.Port, "://") {
		return openSerial(cfg)
	}
	u, err := url.Parse(cfg.Port)
	if err != nil {
		return nil, errors.Wrap(err, "invalid port URL")
	}
	dialersLock.RLock()
	d := dialers[u.Scheme]
	dialersLock.RUnlock()
	if d == nil {
		return nil, errors.Errorf("unknown port scheme: %q", u.Scheme)
	}
	return d(u, cfg)
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// ErrPollExpired is returned by ports whose Read gave up after the
// poll interval without data.
var ErrPollExpired error = timeoutError{}
