// Package classify implements the per-patch classification exchange.
//
// Each patch is sent, then exactly one reply is awaited before the next
// patch goes out, so reply i always belongs to patch i. Silence and bad
// class indices are recorded as outcomes and the run continues; only
// transport failures end a run.
package classify

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/robotalks/patchlink/pkg/link"
	"github.com/robotalks/patchlink/pkg/patch"
)

const (
	drainQuiet = time.Millisecond
	drainMax   = 4096
	maxLineLen = 16
)

// Protocol classifies patches over a Session.
type Protocol struct {
	Session *link.Session
	Config  Config
	Handler OutcomeHandler
}

// New creates a Protocol.
func New(s *link.Session, cfg *Config) *Protocol {
	return &Protocol{Session: s, Config: *cfg}
}

// WithHandler sets the OutcomeHandler.
func (p *Protocol) WithHandler(h OutcomeHandler) *Protocol {
	p.Handler = h
	return p
}

// Classify runs patches through s with cfg.
func Classify(patches []patch.Patch, s *link.Session, cfg *Config) ([]Outcome, error) {
	return New(s, cfg).Run(patches)
}

// Run classifies patches in order. It returns one outcome per patch, or,
// when the transport fails at patch k, the first k outcomes and a
// *RunError. The session is closed on transport failure.
func (p *Protocol) Run(patches []patch.Patch) ([]Outcome, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	for n, pt := range patches {
		if pt.Size != p.Config.PatchSize || len(pt.Data) != pt.Size*pt.Size {
			return nil, errors.Wrapf(patch.ErrInvalidDimensions,
				"patch %d %s: size %d with %d bytes, expect size %d", n, pt, pt.Size, len(pt.Data), p.Config.PatchSize)
		}
	}

	outcomes := make([]Outcome, 0, len(patches))
	for n, pt := range patches {
		o, err := p.exchange(n, pt)
		if err != nil {
			glog.Errorf("patch %d %s: %v", n, pt, err)
			p.Session.Close()
			return outcomes, &RunError{Completed: n, Total: len(patches), Err: err}
		}
		outcomes = append(outcomes, o)
		if h := p.Handler; h != nil {
			h.HandleOutcome(o)
		}
	}
	return outcomes, nil
}

func (p *Protocol) exchange(n int, pt patch.Patch) (o Outcome, err error) {
	o = Outcome{Index: n, X: pt.X, Y: pt.Y}
	if p.Config.DrainStale {
		dropped, err := p.Session.Drain(drainQuiet, drainMax)
		if err != nil {
			return o, err
		}
		if dropped > 0 {
			glog.Warningf("patch %d: discarded %d stale bytes", n, dropped)
		}
	}

	if err = p.Session.WriteBytes(pt.Data, p.Config.Mode, p.Config.InterByteDelay); err != nil {
		return o, err
	}

	if p.Config.Response == ResponseLine {
		err = p.awaitLine(&o)
	} else {
		err = p.awaitByte(&o)
	}
	if err != nil {
		return o, err
	}

	if o.Status == Success {
		glog.V(2).Infof("patch %d (%d,%d): class %d", n, o.X, o.Y, o.Class)
	} else {
		glog.Warningf("patch %d (%d,%d): %s", n, o.X, o.Y, o)
	}
	return o, nil
}

func (p *Protocol) awaitByte(o *Outcome) error {
	b, ok, err := p.Session.ReadByte(p.Config.ReadTimeout)
	if err != nil {
		return err
	}
	if !ok {
		o.Status = Absent
		return nil
	}
	o.Class = int(b)
	o.Status = p.rangeStatus(o.Class)
	return nil
}

func (p *Protocol) awaitLine(o *Outcome) error {
	line, ok, err := p.Session.ReadLine(p.Config.ReadTimeout, maxLineLen)
	if err != nil {
		return err
	}
	if !ok {
		o.Status = Absent
		return nil
	}
	o.Raw = line
	class, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || class < 0 {
		o.Status = Malformed
		return nil
	}
	o.Class = class
	o.Status = p.rangeStatus(class)
	return nil
}

func (p *Protocol) rangeStatus(class int) Status {
	if class < p.Config.NumClasses {
		return Success
	}
	return OutOfRange
}
