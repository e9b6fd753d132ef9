package sampler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/dlpacket.go/pkg/dl/packet"
	fx "github.com/robotalks/dlpacket.go/pkg/framework"
)

type packetRecorder struct {
	packets []packet.Frame
	err     error
}

func (r *packetRecorder) Write(p []byte) (int, error) {
	return len(p), r.WritePacket(p)
}

func (r *packetRecorder) WritePacket(p []byte) error {
	if r.err != nil {
		return r.err
	}
	r.packets = append(r.packets, append(packet.Frame(nil), p...))
	return nil
}

func runOnce(s *Sampler) {
	fx.NewLoop().Add(s).RunOnce(context.Background())
}

func digitals(n int) []Reading {
	r := make([]Reading, n)
	for i := range r {
		r[i] = DigitalReading(i%2 == 0)
	}
	return r
}

func TestReading(t *testing.T) {
	require.True(t, DigitalReading(true).Bool())
	require.False(t, DigitalReading(false).Bool())
	require.Equal(t, Reading{Kind: Analog, Value: 256}, AnalogReading(256))
	require.Equal(t, Reading{Kind: Digital, Value: 1}, DigitalReading(true))
	require.Equal(t, "A300", AnalogReading(300).String())
	require.Equal(t, "true", DigitalReading(true).String())
}

func TestSamplerSingleFrame(t *testing.T) {
	var rec packetRecorder
	s := New(&rec).Add(StaticSource{AnalogReading(128), DigitalReading(true)})
	runOnce(s)
	require.Len(t, rec.packets, 1)
	require.Equal(t, packet.Frame{0x64, 0x6c, 0x11, 0x80, 0x01, 0x64 ^ 0x6c ^ 0x11 ^ 0x80 ^ 0x01}, rec.packets[0])
	require.Equal(t, uint64(1), s.Stats.Frames)
	require.Equal(t, uint64(6), s.Stats.Bytes)
	require.Equal(t, uint64(2), s.Stats.Readings)
	require.Zero(t, s.Stats.Splits)
	require.True(t, s.Builder.Empty())
}

func TestSamplerNothingToSend(t *testing.T) {
	var rec packetRecorder
	s := New(&rec).Add(StaticSource{})
	runOnce(s)
	require.Empty(t, rec.packets)
	require.Zero(t, s.Stats.Frames)
}

func TestSamplerSplitsAcrossFrames(t *testing.T) {
	testCases := []struct {
		name     string
		readings []Reading
		totals   []int
	}{
		{"20 digital", digitals(20), []int{16, 4}},
		{"32 digital", digitals(32), []int{16, 16}},
		{"split value after 15 slots", append(digitals(15), AnalogReading(1000)), []int{15, 2}},
		{"16 analog", func() []Reading {
			r := make([]Reading, 16)
			for i := range r {
				r[i] = AnalogReading(uint16(i))
			}
			return r
		}(), []int{15, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var rec packetRecorder
			s := New(&rec).Add(StaticSource(tc.readings))
			runOnce(s)
			require.Len(t, rec.packets, len(tc.totals))
			for n, f := range rec.packets {
				require.True(t, f.Valid())
				require.Equal(t, tc.totals[n], f.Manifest().Total())
			}
			require.Equal(t, uint64(len(tc.totals)-1), s.Stats.Splits)
			require.Equal(t, uint64(len(tc.readings)), s.Stats.Readings)
			require.Zero(t, s.Stats.Dropped)
		})
	}
}

func TestSamplerSourcesInOrder(t *testing.T) {
	var rec packetRecorder
	s := New(&rec).Add(
		StaticSource{DigitalReading(true)},
		SourceFunc(func(fx.ControlContext) ([]Reading, error) {
			return []Reading{AnalogReading(7)}, nil
		}),
		StaticSource{DigitalReading(false)},
	)
	runOnce(s)
	require.Len(t, rec.packets, 1)
	require.Equal(t, []byte{7}, rec.packets[0].Analog())
	require.Equal(t, []byte{0x01}, rec.packets[0].Digital())
}

func TestSamplerSourceError(t *testing.T) {
	var rec packetRecorder
	errRead := errors.New("read failed")
	s := New(&rec).Add(
		SourceFunc(func(fx.ControlContext) ([]Reading, error) { return nil, errRead }),
		StaticSource{DigitalReading(true)},
	)
	err := s.Control(&fakeContext{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "read failed")
	require.Len(t, rec.packets, 1)
}

func TestSamplerMessages(t *testing.T) {
	var rec packetRecorder
	s := New(&rec)
	l := fx.NewLoop().Add(s)
	l.PostMessage(AnalogReading(3))
	l.PostMessage([]Reading{DigitalReading(true), DigitalReading(true)})
	l.PostMessage("unrelated")
	l.RunOnce(context.Background())
	require.Len(t, rec.packets, 1)
	require.Equal(t, 3, rec.packets[0].Manifest().Total())
	require.Equal(t, 1, rec.packets[0].Manifest().Analog())
}

func TestSamplerSinkErrors(t *testing.T) {
	rec := packetRecorder{err: errors.New("offline")}
	s := New(&rec).Add(StaticSource(digitals(17)))
	runOnce(s)
	require.Equal(t, uint64(2), s.Stats.SinkErrors)
	require.Zero(t, s.Stats.Frames)
	require.Zero(t, s.Stats.Dropped)
	require.True(t, s.Builder.Empty())
}

type fakeContext struct {
	fx.LoopControl
	messages []fx.Message
}

func (c *fakeContext) Context() context.Context  { return context.Background() }
func (c *fakeContext) Time() time.Time           { return time.Time{} }
func (c *fakeContext) PriorityLevel() int        { return fx.PrLvSense }
func (c *fakeContext) Messages() fx.MessageStore { return c }

func (c *fakeContext) ProcessMessages(fn func(fx.Message) bool) {
	for _, msg := range c.messages {
		fn(msg)
	}
}
