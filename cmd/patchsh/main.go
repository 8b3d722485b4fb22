package main

//go-build: CGO_ENABLED=0

import (
	"github.com/robotalks/patchlink/pkg/classify"
	"github.com/robotalks/patchlink/pkg/cli/sh"
	"github.com/robotalks/patchlink/pkg/link"
	"github.com/robotalks/patchlink/pkg/patch"
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
	sh.Main()
}
