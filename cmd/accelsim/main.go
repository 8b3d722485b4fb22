package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"net"
	"os"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/patchlink/pkg/framework"
	"github.com/robotalks/patchlink/pkg/link/sim"
)

var (
	listenAddr = ":5555"
	patchSize  = 32
	classes    = 20
	silent     int
	latency    time.Duration
	textReply  bool
)

func init() {
	flag.StringVar(&listenAddr, "listen", listenAddr, "TCP address to serve on.")
	flag.IntVar(&patchSize, "patch-size", patchSize, "Patch side length in pixels.")
	flag.IntVar(&classes, "classes", classes, "Number of classes.")
	flag.IntVar(&silent, "silent", silent, "Stay silent on every n-th patch, 0 never.")
	flag.DurationVar(&latency, "latency", latency, "Delay before each reply.")
	flag.BoolVar(&textReply, "text", textReply, "Reply with decimal lines.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	a := sim.NewAccelerator(patchSize, classes)
	a.Classify = sim.SilentEvery(silent, a.Classify)
	a.Latency = latency
	a.TextReplies = textReply

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		glog.Exitf("listen %s: %v", listenAddr, err)
	}
	glog.Infof("accelerator listening on %s (patch %d, %d classes)", ln.Addr(), patchSize, classes)

	err = fx.NewRunner().HandleSignals().
		Go(fx.NamedRun("accelerator", &sim.Server{Listener: ln, Accelerator: a})).
		Wait()
	if err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}
