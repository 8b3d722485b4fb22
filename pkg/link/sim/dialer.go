package sim

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/patchlink/pkg/link"
)

// FromURL configures an Accelerator from sim:// query parameters:
// size (patch side, 32), classes (20), silent (every n-th frame silent),
// hangup (frames before hanging up), latency (duration), gap (duration),
// text (1 for line replies).
func FromURL(u *url.URL) (*Accelerator, error) {
	q := u.Query()
	intParam := func(name string, def int) (int, error) {
		if v := q.Get(name); v != "" {
			return strconv.Atoi(v)
		}
		return def, nil
	}
	durParam := func(name string, def time.Duration) (time.Duration, error) {
		if v := q.Get(name); v != "" {
			return time.ParseDuration(v)
		}
		return def, nil
	}
	size, err := intParam("size", 32)
	if err != nil {
		return nil, err
	}
	classes, err := intParam("classes", 20)
	if err != nil {
		return nil, err
	}
	silent, err := intParam("silent", 0)
	if err != nil {
		return nil, err
	}
	a := NewAccelerator(size, classes)
	a.Classify = SilentEvery(silent, a.Classify)
	if a.HangupAfter, err = intParam("hangup", 0); err != nil {
		return nil, err
	}
	if a.Latency, err = durParam("latency", 0); err != nil {
		return nil, err
	}
	if a.FrameGap, err = durParam("gap", a.FrameGap); err != nil {
		return nil, err
	}
	a.TextReplies = q.Get("text") == "1"
	return a, nil
}

// Attach connects a in-process to a host side Port.
func (a *Accelerator) Attach() link.Port {
	host, device := net.Pipe()
	go func() {
		if err := a.Serve(device); err != nil {
			glog.V(2).Infof("sim: stopped: %v", err)
		}
	}()
	return link.NewConnPort(host)
}

func dial(u *url.URL, cfg link.Config) (link.Port, error) {
	a, err := FromURL(u)
	if err != nil {
		return nil, err
	}
	return a.Attach(), nil
}

func init() {
	link.RegisterDialer("sim", dial)
}
