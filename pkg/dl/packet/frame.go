package packet

import "io"

// Frame layout constants.
const (
	Tag0 byte = 'd'
	Tag1 byte = 'l'

	HeaderSize = 3

	MaxValues       = 16
	MaxAnalogBytes  = 15
	MaxDigitalBits  = 16
	MaxDigitalBytes = MaxDigitalBits/8 + 1

	MinFrameSize = HeaderSize + 1 + 1
	MaxFrameSize = HeaderSize + MaxAnalogBytes + MaxDigitalBytes + 1
)

// Manifest is the third header byte.
// bits 0..3 = total values - 1, bits 4..7 = analog slots.
type Manifest byte

// NewManifest encodes the value counts. total must be 1..16.
func NewManifest(total, analog int) Manifest {
	return Manifest(byte(analog&0x0f)<<4 | byte((total-1)&0x0f))
}

// Total returns the number of values (slots) in the frame.
func (m Manifest) Total() int {
	return int(m&0x0f) + 1
}

// Analog returns the number of analog bytes.
func (m Manifest) Analog() int {
	return int(m >> 4)
}

// Digital returns the number of digital bits.
func (m Manifest) Digital() int {
	return m.Total() - m.Analog()
}

// DigitalBytes returns the number of bytes carrying digital bits:
// digital/8 + 1, or 0 without digital values. With 8 or 16 values the
// last byte is 0.
func (m Manifest) DigitalBytes() int {
	return digitalBytes(m.Digital())
}

// FrameSize returns the full size of a frame with this manifest.
func (m Manifest) FrameSize() int {
	return HeaderSize + m.Analog() + m.DigitalBytes() + 1
}

func digitalBytes(bits int) int {
	if bits <= 0 {
		return 0
	}
	return bits/8 + 1
}

// Frame is an encoded packet.
type Frame []byte

// Encode builds the frame for the given analog bytes and digital bits.
// It returns nil if both are empty.
func Encode(analog []byte, digital []bool) Frame {
	total := len(analog) + len(digital)
	if total == 0 {
		return nil
	}
	f := make(Frame, 0, HeaderSize+len(analog)+digitalBytes(len(digital))+1)
	f = append(f, Tag0, Tag1, byte(NewManifest(total, len(analog))))
	f = append(f, analog...)
	f = append(f, PackBits(digital)...)
	return append(f, Checksum(f))
}

// PackBits packs bits low-bit-first into len(bits)/8 + 1 bytes, none
// for no bits.
func PackBits(bits []bool) []byte {
	packed := make([]byte, digitalBytes(len(bits)))
	for n, bit := range bits {
		if bit {
			packed[n/8] |= 1 << uint(n%8)
		}
	}
	return packed
}

// Checksum XORs all bytes.
func Checksum(p []byte) (sum byte) {
	for _, b := range p {
		sum ^= b
	}
	return
}

// Manifest returns the manifest byte, or 0 if the frame is too short.
func (f Frame) Manifest() Manifest {
	if len(f) < HeaderSize {
		return 0
	}
	return Manifest(f[2])
}

// Header returns the 3 header bytes.
func (f Frame) Header() []byte {
	return f[:HeaderSize]
}

// Analog returns the analog section.
func (f Frame) Analog() []byte {
	return f[HeaderSize : HeaderSize+f.Manifest().Analog()]
}

// Digital returns the packed digital section.
func (f Frame) Digital() []byte {
	start := HeaderSize + f.Manifest().Analog()
	return f[start : start+f.Manifest().DigitalBytes()]
}

// Checksum returns the trailing checksum byte.
func (f Frame) Checksum() byte {
	return f[len(f)-1]
}

// Valid checks tags, length against the manifest and the checksum.
func (f Frame) Valid() bool {
	if len(f) < MinFrameSize || f[0] != Tag0 || f[1] != Tag1 {
		return false
	}
	m := f.Manifest()
	if m.Analog() > MaxAnalogBytes || m.Analog() > m.Total() || len(f) != m.FrameSize() {
		return false
	}
	return Checksum(f) == 0
}

// WriteTo implements io.WriterTo.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f)
	return int64(n), err
}
