package sampler

import (
	"strconv"

	fx "github.com/robotalks/dlpacket.go/pkg/framework"
)

// Kind tells how a Reading is encoded.
type Kind int

// Reading kinds.
const (
	Analog Kind = iota
	Digital
)

// Reading is a single value to put in a frame.
type Reading struct {
	Kind  Kind
	Value uint16
}

// AnalogReading creates an analog Reading.
func AnalogReading(val uint16) Reading {
	return Reading{Kind: Analog, Value: val}
}

// DigitalReading creates a digital Reading.
func DigitalReading(on bool) Reading {
	r := Reading{Kind: Digital}
	if on {
		r.Value = 1
	}
	return r
}

// Bool returns the digital state.
func (r Reading) Bool() bool {
	return r.Value != 0
}

func (r Reading) String() string {
	if r.Kind == Digital {
		return strconv.FormatBool(r.Bool())
	}
	return "A" + strconv.Itoa(int(r.Value))
}

// Source provides readings once per loop iteration.
type Source interface {
	Read(fx.ControlContext) ([]Reading, error)
}

// SourceFunc is the func form of Source.
type SourceFunc func(fx.ControlContext) ([]Reading, error)

// Read implements Source.
func (f SourceFunc) Read(cc fx.ControlContext) ([]Reading, error) {
	return f(cc)
}

// StaticSource always provides the same readings.
type StaticSource []Reading

// Read implements Source.
func (s StaticSource) Read(fx.ControlContext) ([]Reading, error) {
	return s, nil
}
