// Package sh provides an ishell backed interactive shell building
// DL frames by hand.
package sh

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/dlpacket.go/pkg/dl/comm/hexdump"
	"github.com/robotalks/dlpacket.go/pkg/dl/env"
	"github.com/robotalks/dlpacket.go/pkg/dl/packet"
)

// Session is the state shared by shell commands.
type Session struct {
	Builder *packet.Builder
	Sink    io.WriteCloser
	Sent    int
}

// NewSession creates a Session writing frames to sink.
func NewSession(sink io.WriteCloser) *Session {
	return &Session{Builder: packet.NewBuilder(sink), Sink: sink}
}

// Prompt reflects used slots.
func (s *Session) Prompt() string {
	b := s.Builder
	if b.IsFull() {
		return fmt.Sprintf("[%d/%d FULL] > ", b.Len(), packet.MaxValues)
	}
	return fmt.Sprintf("[%d/%d] > ", b.Len(), packet.MaxValues)
}

// Status describes the pending frame.
func (s *Session) Status() string {
	b := s.Builder
	return fmt.Sprintf("slots %d/%d analog %d/%d digital %d full %v size %d sent %d",
		b.Len(), packet.MaxValues, b.AnalogLen(), packet.MaxAnalogBytes,
		b.DigitalLen(), b.IsFull(), b.Size(), s.Sent)
}

// FrameString renders the pending frame as hex, empty if nothing pending.
func (s *Session) FrameString() string {
	return hexdump.Format(s.Builder.Frame())
}

// Send sends the pending frame.
func (s *Session) Send() (string, error) {
	frame := s.Builder.Frame()
	if !s.Builder.Send() {
		return "", ErrNothingToSend
	}
	if err := s.Builder.Err(); err != nil {
		return "", err
	}
	s.Sent++
	return hexdump.Format(frame), nil
}

// Shell wraps ishell with a Session.
type Shell struct {
	Interactive bool

	Shell   *ishell.Shell
	Config  *env.Config
	Session *Session
}

const shellKey = "$shell"

var (
	evalOnly bool

	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Config:      conf,
	}
	s.Shell.Set(shellKey, s)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// SessionCmd adapts a session command to an ishell command func.
// Output is printed and errors are reported on the context.
func SessionCmd(fn func(s *Session, args []string) (string, error)) func(*ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		out, err := fn(s.Session, c.Args)
		if err != nil {
			c.Err(err)
		} else if out != "" {
			c.Println(out)
		}
		s.Shell.SetPrompt(s.Session.Prompt())
	}
}

// Run opens the sink and runs the shell. With args the command line is
// processed and the shell exits.
func (s *Shell) Run(args ...string) {
	sink, err := s.Config.NewSink()
	if err != nil {
		log.Fatalln(err)
	}
	defer sink.Close()
	s.Session = NewSession(sink)
	s.Shell.SetPrompt(s.Session.Prompt())

	if len(args) > 0 {
		for _, line := range strings.Split(strings.Join(args, " "), ";") {
			if fields := strings.Fields(line); len(fields) > 0 {
				if err := s.Shell.Process(fields...); err != nil {
					log.Fatalln(err)
				}
			}
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).Run(flag.Args()...)
}
