// Package device reads Linux joystick devices (/dev/input/jsN).
package device

import "io"

// Event is a js_event: an axis move or a button change.
// Events flagged init report the state when the device is opened.
type Event interface {
	IsInit() bool
	// Index of the axis or button.
	Index() int
}

// AxisEvent carries the axis position in -32768..32767.
type AxisEvent interface {
	Event
	Value() int
}

// ButtonEvent carries the button state.
type ButtonEvent interface {
	Event
	Pressed() bool
}

// EventReader reads events one by one, blocking until available.
type EventReader interface {
	ReadEvent() (Event, error)
}

// Device is an opened joystick.
type Device interface {
	EventReader
	io.Closer

	Index() int
	Name() string
	AxisCount() int
	ButtonCount() int
}
