package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/dlpacket.go/pkg/dl/env"
	"github.com/robotalks/dlpacket.go/pkg/dl/sampler"
	"github.com/robotalks/dlpacket.go/pkg/framework"
	"github.com/robotalks/dlpacket.go/pkg/joystick"
)

func init() {
	env.SetupFlags()
	joystick.SetupFlags()
}

func main() {
	flag.Parse()

	conf := env.NewConfig()
	sink := conf.MustNewSink()
	defer sink.Close()

	js := joystick.NewConfig().NewSource()
	smp := sampler.New(sink).Add(js)
	loop := framework.NewLoop().Add(js, smp)
	loop.Interval = conf.Interval

	reporter, closer, err := conf.NewStatsReporter(smp.Stats)
	if err != nil {
		log.Fatalln(err)
	}
	if reporter != nil {
		defer closer.Close()
		loop.Add(reporter)
	}
	loop.RunOrFail()
}
