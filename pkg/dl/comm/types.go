package comm

import "io"

// Sink is the byte-consuming end of a stream transport.
// Frames are written to it in order, piece by piece.
type Sink interface {
	io.Writer
	io.ByteWriter
}

// PacketWriter writes a complete frame in one message.
// Message oriented transports (MQTT, websocket) implement this.
type PacketWriter interface {
	WritePacket([]byte) error
}

// AsSink adapts an io.Writer to Sink.
func AsSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return &byteWriter{Writer: w}
}

type byteWriter struct {
	io.Writer
	buf [1]byte
}

// WriteByte implements io.ByteWriter.
func (w *byteWriter) WriteByte(b byte) error {
	w.buf[0] = b
	_, err := w.Write(w.buf[:])
	return err
}
