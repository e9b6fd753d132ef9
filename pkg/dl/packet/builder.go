package packet

import (
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/dlpacket.go/pkg/dl/comm"
)

// Builder accumulates analog and digital values and sends them
// as a single frame.
//
// Analog values are unsigned integers up to 65535, encoded on 1 byte
// when <= 255 and split into 2 bytes (low byte first) otherwise. A split
// value takes 2 of the 16 value slots. Digital values take 1 slot each.
// At most 15 analog bytes and 16 digital bits are allowed.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	sink    comm.Sink
	packets comm.PacketWriter
	analog  []byte
	digital []bool
	err     error
}

// NewBuilder creates a Builder writing frames to w.
// If w implements comm.PacketWriter, each frame is written as one packet.
func NewBuilder(w io.Writer) *Builder {
	b := &Builder{
		analog:  make([]byte, 0, MaxAnalogBytes),
		digital: make([]bool, 0, MaxDigitalBits),
	}
	if pw, ok := w.(comm.PacketWriter); ok {
		b.packets = pw
	} else {
		b.sink = comm.AsSink(w)
	}
	return b
}

// IsFull indicates no more value can be added.
func (b *Builder) IsFull() bool {
	return len(b.analog) == MaxAnalogBytes || b.Len() == MaxValues
}

// Len returns the number of used value slots.
func (b *Builder) Len() int {
	return len(b.analog) + len(b.digital)
}

// AnalogLen returns the number of analog bytes (slots).
func (b *Builder) AnalogLen() int {
	return len(b.analog)
}

// DigitalLen returns the number of digital bits.
func (b *Builder) DigitalLen() int {
	return len(b.digital)
}

// Size returns the size of the frame Send would write, 0 when empty.
func (b *Builder) Size() int {
	if b.Empty() {
		return 0
	}
	return NewManifest(b.Len(), len(b.analog)).FrameSize()
}

// Empty indicates there is nothing to send.
func (b *Builder) Empty() bool {
	return b.Len() == 0
}

// AddAnalogValue adds an analog value. It returns false, leaving the
// Builder unchanged, if there is not enough room left.
func (b *Builder) AddAnalogValue(val uint16) bool {
	if b.IsFull() {
		return false
	}
	if val > 0xff {
		// both bytes or none: 14 analog bytes leave room for one byte only.
		if len(b.analog) >= MaxAnalogBytes-1 || b.Len() > MaxValues-2 {
			return false
		}
		b.analog = append(b.analog, byte(val&0xff), byte(val>>8))
		return true
	}
	b.analog = append(b.analog, byte(val))
	return true
}

// AddDigitalValue adds a digital value. It returns false if the
// Builder is full.
func (b *Builder) AddDigitalValue(val bool) bool {
	if b.IsFull() {
		return false
	}
	b.digital = append(b.digital, val)
	return true
}

// Frame encodes the current values without resetting.
// It returns nil when empty.
func (b *Builder) Frame() Frame {
	return Encode(b.analog, b.digital)
}

// Reset drops all values.
func (b *Builder) Reset() {
	b.analog, b.digital = b.analog[:0], b.digital[:0]
}

// Send writes the frame and resets the Builder. It returns false if
// the Builder is empty, in which case nothing is written.
//
// The sink is fire-and-forget: a write error doesn't keep the values,
// it is logged and can be retrieved using Err until the next Send.
func (b *Builder) Send() bool {
	frame := b.Frame()
	if frame == nil {
		return false
	}
	if glog.V(2) {
		glog.Infof("SEND % x", []byte(frame))
	}
	if b.err = b.write(frame); b.err != nil {
		glog.Warningf("frame write error: %v", b.err)
	}
	b.Reset()
	return true
}

// Err returns the sink error of the last Send.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) write(f Frame) error {
	if b.packets != nil {
		return b.packets.WritePacket(f)
	}
	m := f.Manifest()
	if _, err := b.sink.Write(f.Header()); err != nil {
		return err
	}
	if m.Analog() > 0 {
		if _, err := b.sink.Write(f.Analog()); err != nil {
			return err
		}
	}
	if m.Digital() > 0 {
		if _, err := b.sink.Write(f.Digital()); err != nil {
			return err
		}
	}
	return b.sink.WriteByte(f.Checksum())
}
