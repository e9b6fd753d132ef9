package main

import (
	"github.com/robotalks/dlpacket.go/pkg/cli/sh"
	"github.com/robotalks/dlpacket.go/pkg/dl/env"

	_ "github.com/robotalks/dlpacket.go/pkg/cli/cmds/packet"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
