// Package packet provides shell commands to build and send frames.
package packet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/dlpacket.go/pkg/cli/sh"
)

// Analog adds analog values. Values are added in order and adding
// stops at the first rejected one.
func Analog(s *sh.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", sh.ErrValueExpected
	}
	for n, arg := range args {
		val, err := strconv.ParseUint(arg, 0, 16)
		if err != nil {
			return "", fmt.Errorf("invalid analog value %q: %v", arg, err)
		}
		if !s.Builder.AddAnalogValue(uint16(val)) {
			return "", fmt.Errorf("no room for %d, %d of %d values added", val, n, len(args))
		}
	}
	return "", nil
}

// ParseBool accepts 1/0, on/off, true/false, high/low.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "1", "on", "t", "true", "h", "high":
		return true, nil
	case "0", "off", "f", "false", "l", "low":
		return false, nil
	}
	return false, fmt.Errorf("invalid digital value %q", str)
}

// Digital adds digital values.
func Digital(s *sh.Session, args []string) (string, error) {
	if len(args) == 0 {
		return "", sh.ErrValueExpected
	}
	for n, arg := range args {
		val, err := ParseBool(arg)
		if err != nil {
			return "", err
		}
		if !s.Builder.AddDigitalValue(val) {
			return "", fmt.Errorf("no room for %v, %d of %d values added", val, n, len(args))
		}
	}
	return "", nil
}

// Full reports whether no more value can be added.
func Full(s *sh.Session, _ []string) (string, error) {
	return strconv.FormatBool(s.Builder.IsFull()), nil
}

// Status describes the pending frame.
func Status(s *sh.Session, _ []string) (string, error) {
	return s.Status(), nil
}

// Send sends the pending frame and prints it.
func Send(s *sh.Session, _ []string) (string, error) {
	return s.Send()
}

// Reset drops pending values.
func Reset(s *sh.Session, _ []string) (string, error) {
	s.Builder.Reset()
	return "", nil
}

// Frame prints the pending frame without sending.
func Frame(s *sh.Session, _ []string) (string, error) {
	if s.Builder.Empty() {
		return "(empty)", nil
	}
	return s.FrameString(), nil
}

var (
	// AnalogCmd adds analog values.
	AnalogCmd = ishell.Cmd{
		Name:    "analog",
		Aliases: []string{"a"},
		Help:    "VALUE... (0-65535)",
		Func:    sh.SessionCmd(Analog),
	}

	// DigitalCmd adds digital values.
	DigitalCmd = ishell.Cmd{
		Name:    "digital",
		Aliases: []string{"d"},
		Help:    "VALUE... (1/0, on/off)",
		Func:    sh.SessionCmd(Digital),
	}

	// FullCmd tells whether the frame is full.
	FullCmd = ishell.Cmd{
		Name: "full",
		Help: "",
		Func: sh.SessionCmd(Full),
	}

	// StatusCmd prints slot usage.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func:    sh.SessionCmd(Status),
	}

	// SendCmd sends the frame.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "",
		Func:    sh.SessionCmd(Send),
	}

	// ResetCmd drops pending values.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "",
		Func: sh.SessionCmd(Reset),
	}

	// FrameCmd prints the pending frame.
	FrameCmd = ishell.Cmd{
		Name:    "frame",
		Aliases: []string{"f"},
		Help:    "",
		Func:    sh.SessionCmd(Frame),
	}
)

func init() {
	sh.AddCmds(
		&AnalogCmd,
		&DigitalCmd,
		&FullCmd,
		&StatusCmd,
		&SendCmd,
		&ResetCmd,
		&FrameCmd,
	)
}
