// Package sampler collects readings each loop iteration and packs them
// into DL frames.
package sampler

import (
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/dlpacket.go/pkg/dl/packet"
	"github.com/robotalks/dlpacket.go/pkg/dl/stats"
	fx "github.com/robotalks/dlpacket.go/pkg/framework"
)

// Sampler is a controller polling Sources and sending frames.
// Readings posted to the loop as messages (Reading or []Reading)
// are packed after the Sources.
type Sampler struct {
	Builder *packet.Builder
	Stats   *stats.Counters

	sources []Source
}

// New creates a Sampler writing frames to w.
func New(w io.Writer) *Sampler {
	return &Sampler{
		Builder: packet.NewBuilder(w),
		Stats:   &stats.Counters{},
	}
}

// Add appends Sources, polled in order.
func (s *Sampler) Add(sources ...Source) *Sampler {
	s.sources = append(s.sources, sources...)
	return s
}

// AddToLoop implements LoopAdder.
func (s *Sampler) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvSense, s)
}

// Control implements Controller.
func (s *Sampler) Control(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	for _, src := range s.sources {
		readings, err := src.Read(cc)
		if err != nil {
			errs.Add(err)
		}
		s.Pack(readings...)
	}
	cc.Messages().ProcessMessages(func(msg fx.Message) bool {
		switch m := msg.(type) {
		case Reading:
			s.Pack(m)
		case []Reading:
			s.Pack(m...)
		default:
			return false
		}
		return true
	})
	s.Flush()
	return errs.Aggregate()
}

// Pack adds readings to the current frame. A full frame is sent
// and packing continues in a fresh one.
func (s *Sampler) Pack(readings ...Reading) {
	for _, r := range readings {
		s.Stats.Readings++
		if s.add(r) {
			continue
		}
		if s.send() {
			s.Stats.Splits++
			if s.add(r) {
				continue
			}
		}
		glog.Warningf("reading %s dropped", r)
		s.Stats.Dropped++
	}
}

// Flush sends the pending frame if any.
func (s *Sampler) Flush() bool {
	return s.send()
}

func (s *Sampler) add(r Reading) bool {
	if r.Kind == Digital {
		return s.Builder.AddDigitalValue(r.Bool())
	}
	return s.Builder.AddAnalogValue(r.Value)
}

func (s *Sampler) send() bool {
	size := s.Builder.Size()
	if !s.Builder.Send() {
		return false
	}
	if s.Builder.Err() != nil {
		s.Stats.SinkErrors++
		return true
	}
	s.Stats.Frames++
	s.Stats.Bytes += uint64(size)
	return true
}
