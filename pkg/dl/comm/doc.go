// Package comm defines the transports frames are written to.
package comm

// A transport is either a byte stream (serial port, file, pipe) which
// receives a frame as ordered writes, or a message channel (MQTT topic,
// websocket) which receives one complete frame per message.
//
// Producer: packet.Builder
// Consumer: whatever sits at the other end of the link.
