// Package sh provides an interactive shell to drive an accelerator.
package sh

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/patchlink/pkg/classify"
	"github.com/robotalks/patchlink/pkg/env"
	"github.com/robotalks/patchlink/pkg/link"
	"github.com/robotalks/patchlink/pkg/patch"
	"github.com/robotalks/patchlink/pkg/pipeline"
	"github.com/robotalks/patchlink/pkg/report"
	"github.com/robotalks/patchlink/pkg/report/mqtt"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool

	Shell    *ishell.Shell
	Link     link.Config
	Patch    patch.Config
	Classify classify.Config
	Labels   report.Labels

	Session   *link.Session
	Publisher *mqtt.Publisher
}

const (
	shellKey       = "$shell"
	unopenedPrompt = "[closed] > "
)

var (
	evalOnly bool

	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
		&StatusCmd,
		&ClassifyCmd,
		&LabelsCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Link:        *link.Default(),
		Patch:       *patch.Default(),
		Classify:    *classify.Default(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unopenedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps command func requires an open session.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if s := ShellFrom(c); s.Session == nil || s.Session.Closed() {
			c.Err(fmt.Errorf("port not open"))
			return
		}
		fn(c)
	}
}

// Open opens the configured port, closing the current one.
func (s *Shell) Open(port string) error {
	if port != "" {
		s.Link.Port = port
	}
	sess, err := link.Open(s.Link)
	if err != nil {
		return err
	}
	s.Close()
	s.Session = sess
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", s.Link.Port))
	return nil
}

// Close closes the current session.
func (s *Shell) Close() {
	if s.Session != nil {
		s.Session.Close()
		s.Session = nil
		s.Shell.SetPrompt(unopenedPrompt)
	}
}

// Job builds a classification job for image.
func (s *Shell) Job(image string) *pipeline.Job {
	return &pipeline.Job{
		Image:     image,
		Patch:     s.Patch,
		Classify:  s.Classify,
		Labels:    s.Labels,
		Out:       os.Stdout,
		Publisher: s.Publisher,
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			glog.Exitln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	glog.Exitln("command expected")
}

var (
	// OpenCmd opens a port.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[PORT]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var port string
			if len(c.Args) > 0 {
				port = c.Args[0]
			}
			if err := s.Open(port); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the port.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}

	// StatusCmd prints the session and protocol settings.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"s"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			state := "closed"
			if s.Session != nil && !s.Session.Closed() {
				state = "open"
			}
			c.Printf("port %s (%d baud) %s\n", s.Link.Port, s.Link.Baud, state)
			cfg := s.Job("").Protocol()
			c.Printf("patch %d, mode %s, response %s, classes %d, read timeout %s\n",
				cfg.PatchSize, cfg.Mode, cfg.Response, cfg.NumClasses, cfg.ReadTimeout)
		},
	}

	// ClassifyCmd classifies images.
	ClassifyCmd = ishell.Cmd{
		Name:    "classify",
		Aliases: []string{"c"},
		Help:    "IMAGE...",
		Func: MustBeOpen(func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("image expected"))
				return
			}
			for _, image := range c.Args {
				result, err := s.Job(image).Run(context.Background(), s.Session)
				if result != nil {
					c.Println(result.Summary(err))
				}
				if err != nil {
					c.Err(err)
					if link.IsFatal(err) {
						s.Close()
					}
					return
				}
			}
		}),
	}

	// LabelsCmd shows or sets labels.
	LabelsCmd = ishell.Cmd{
		Name: "labels",
		Help: "[LABEL,... | @FILE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				labels, err := (&report.Config{Labels: strings.Join(c.Args, " ")}).LoadLabels()
				if err != nil {
					c.Err(err)
					return
				}
				s.Labels = labels
			}
			for n, label := range s.Labels {
				c.Printf("%3d %s\n", n, label)
			}
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	s := New()
	labels, err := report.Default().LoadLabels()
	if err != nil {
		glog.Exitln(err)
	}
	s.Labels = labels
	if cfg := mqtt.Default(); cfg.URL != "" {
		if s.Publisher, err = mqtt.Dial(cfg, env.HostID(), labels); err != nil {
			glog.Exitln(err)
		}
		defer s.Publisher.Close()
	}
	defer s.Close()
	s.Run(flag.Args()...)
}
