package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/patchlink/pkg/classify"
	"github.com/robotalks/patchlink/pkg/env"
	fx "github.com/robotalks/patchlink/pkg/framework"
	"github.com/robotalks/patchlink/pkg/link"
	"github.com/robotalks/patchlink/pkg/patch"
	"github.com/robotalks/patchlink/pkg/pipeline"
	"github.com/robotalks/patchlink/pkg/report"
	"github.com/robotalks/patchlink/pkg/report/mqtt"

	_ "github.com/robotalks/patchlink/pkg/link/sim"
)

func init() {
	link.SetupFlags()
	patch.SetupFlags()
	classify.SetupFlags()
	report.SetupFlags()
	mqtt.SetupFlags()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] IMAGE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	defer glog.Flush()
	if err := run(flag.Arg(0)); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(image string) error {
	labels, err := report.Default().LoadLabels()
	if err != nil {
		return err
	}
	job := &pipeline.Job{
		Image:    image,
		Patch:    *patch.Default(),
		Classify: *classify.Default(),
		Labels:   labels,
		Out:      os.Stdout,
	}
	if cfg := mqtt.Default(); cfg.URL != "" {
		if job.Publisher, err = mqtt.Dial(cfg, env.HostID(), labels); err != nil {
			return err
		}
		defer job.Publisher.Close()
	}

	runner := fx.NewRunner().HandleSignals()
	return link.WithSession(*link.Default(), func(s *link.Session) error {
		result, err := job.Run(runner.Context, s)
		if result != nil {
			fmt.Println(result.Summary(err))
		}
		return err
	})
}
