// Package pipeline runs one image through an open session: load,
// extract, classify and report.
package pipeline

import (
	"context"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/patchlink/pkg/classify"
	fx "github.com/robotalks/patchlink/pkg/framework"
	"github.com/robotalks/patchlink/pkg/link"
	"github.com/robotalks/patchlink/pkg/patch"
	"github.com/robotalks/patchlink/pkg/report"
	"github.com/robotalks/patchlink/pkg/report/mqtt"
)

// Job is one classification run.
type Job struct {
	Image    string
	Patch    patch.Config
	Classify classify.Config
	Labels   report.Labels
	// Out receives one line per outcome and the summary, may be nil.
	Out io.Writer
	// Publisher is optional.
	Publisher *mqtt.Publisher
}

// Result is what a Job produced.
type Result struct {
	Outcomes []classify.Outcome
	Total    int
}

// Summary describes the result.
func (r *Result) Summary(err error) string {
	return report.Summary(r.Outcomes, r.Total, err)
}

// Protocol derives the protocol config. Without an explicit number of
// classes, the label count is used.
func (j *Job) Protocol() classify.Config {
	cfg := j.Classify
	if cfg.NumClasses <= 0 && len(j.Labels) > 0 {
		cfg.NumClasses = len(j.Labels)
	}
	return cfg
}

// Run classifies the image over s. Canceling ctx closes s, which aborts
// the exchange in flight.
func (j *Job) Run(ctx context.Context, s *link.Session) (*Result, error) {
	pcfg := j.Patch
	pcfg.Size = j.Classify.PatchSize
	patches, err := pcfg.LoadPatches(j.Image)
	if err != nil {
		return nil, err
	}
	glog.Infof("%s: %d patches of %dx%d", j.Image, len(patches), pcfg.Size, pcfg.Size)

	var handlers classify.Handlers
	if j.Out != nil {
		handlers = append(handlers, report.NewTextReporter(j.Out, j.Labels))
	}
	if j.Publisher != nil {
		handlers = append(handlers, j.Publisher)
	}
	cfg := j.Protocol()
	proto := classify.New(s, &cfg).WithHandler(handlers)

	result := &Result{Total: len(patches)}
	err = fx.RunWithContextCancel(ctx, func() { s.Close() }, func() (err error) {
		result.Outcomes, err = proto.Run(patches)
		return
	})

	if j.Publisher != nil {
		if perr := j.Publisher.PublishSummary(j.Image, result.Outcomes, result.Total, err); perr != nil {
			glog.Warningf("publish summary: %v", perr)
		}
	}
	return result, err
}
