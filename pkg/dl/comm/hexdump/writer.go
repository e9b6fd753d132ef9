// Package hexdump prints DL frames as hex lines.
package hexdump

import (
	"encoding/hex"
	"io"
	"strings"
	"sync"
)

// Writer prints each packet on one line of space separated hex bytes.
type Writer struct {
	Out io.Writer

	lock sync.Mutex
}

// New creates a Writer.
func New(out io.Writer) *Writer {
	return &Writer{Out: out}
}

// Format renders p as space separated hex bytes.
func Format(p []byte) string {
	str := hex.EncodeToString(p)
	var sb strings.Builder
	sb.Grow(len(str) + len(p))
	for n := 0; n < len(str); n += 2 {
		if n > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(str[n : n+2])
	}
	return sb.String()
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.WritePacket(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WritePacket implements PacketWriter.
func (w *Writer) WritePacket(pkt []byte) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	_, err := io.WriteString(w.Out, Format(pkt)+"\n")
	return err
}
