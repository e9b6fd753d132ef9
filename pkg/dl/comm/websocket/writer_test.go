package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func TestWriterSendsBinaryMessages(t *testing.T) {
	received := make(chan []byte, 2)
	srv := httptest.NewServer(websocket.Handler(func(conn *websocket.Conn) {
		r := New(conn)
		for {
			pkt, err := r.ReadPacket()
			if err != nil {
				close(received)
				return
			}
			received <- pkt
		}
	}))
	defer srv.Close()

	w, err := Dial("ws" + strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	frame := []byte{0x64, 0x6c, 0x10, 0x80, 0x64 ^ 0x6c ^ 0x10 ^ 0x80}
	require.NoError(t, w.WritePacket(frame))
	n, err := w.Write([]byte{0x64, 0x6c, 0x00, 0x01, 0x09})
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, frame, <-received)
	require.Equal(t, []byte{0x64, 0x6c, 0x00, 0x01, 0x09}, <-received)
	require.NoError(t, w.Close())
}

func TestDialBadURL(t *testing.T) {
	_, err := Dial("ws://%zz")
	require.Error(t, err)
}
