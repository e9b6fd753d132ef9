// Package websocket sends DL frames as binary websocket messages.
package websocket

import (
	"net/url"

	"golang.org/x/net/websocket"
)

// Writer sends each packet as one binary message.
type Writer websocket.Conn

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *Writer {
	return (*Writer)(conn)
}

// Dial connects to a websocket server.
func Dial(serverURL string) (*Writer, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	origin := "http://" + u.Host
	if u.Scheme == "wss" {
		origin = "https://" + u.Host
	}
	conn, err := websocket.Dial(serverURL, "", origin)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
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
	return websocket.Message.Send((*websocket.Conn)(w), pkt)
}

// ReadPacket receives one message.
func (w *Writer) ReadPacket() (pkt []byte, err error) {
	err = websocket.Message.Receive((*websocket.Conn)(w), &pkt)
	return
}

// Close implements io.Closer.
func (w *Writer) Close() error {
	return (*websocket.Conn)(w).Close()
}
