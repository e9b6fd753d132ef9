// Package serial opens serial ports as frame sinks.
package serial

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.bug.st/serial"
)

// DefaultBaudRate is the baud rate used when not specified.
const DefaultBaudRate = 57600

// PortOptions describes the serial connection parameters.
type PortOptions struct {
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
}

// Normalize validates the options and applies defaults for unset values.
func (o PortOptions) Normalize() (PortOptions, error) {
	opts := o
	if opts.BaudRate <= 0 {
		opts.BaudRate = DefaultBaudRate
	}
	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, fmt.Errorf("invalid data bits %d: must be between 5 and 8", opts.DataBits)
	}
	if opts.StopBits == 0 {
		opts.StopBits = 1
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", opts.StopBits)
	}
	switch parity := strings.TrimSpace(strings.ToUpper(opts.Parity)); parity {
	case "", "N", "NONE":
		opts.Parity = "N"
	case "E", "EVEN":
		opts.Parity = "E"
	case "O", "ODD":
		opts.Parity = "O"
	default:
		return opts, fmt.Errorf("unsupported parity %q: expected N, E, or O", opts.Parity)
	}
	return opts, nil
}

// SerialMode converts the options into serial.Mode.
func (o PortOptions) SerialMode() (*serial.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}
	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	if opts.StopBits == 2 {
		mode.StopBits = serial.TwoStopBits
	}
	switch opts.Parity {
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	}
	return mode, nil
}

// ParseURL extracts the device path and options from
// serial:///dev/ttyUSB0?baud=57600&data-bits=8&stop-bits=1&parity=N.
func ParseURL(u *url.URL) (string, PortOptions, error) {
	var opts PortOptions
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	if path == "" {
		return "", opts, fmt.Errorf("serial device path missing: %s", u)
	}
	query := u.Query()
	for key, val := range map[string]*int{
		"baud":      &opts.BaudRate,
		"data-bits": &opts.DataBits,
		"stop-bits": &opts.StopBits,
	} {
		str := query.Get(key)
		if str == "" {
			continue
		}
		n, err := strconv.Atoi(str)
		if err != nil {
			return "", opts, fmt.Errorf("invalid %s %q: %v", key, str, err)
		}
		*val = n
	}
	opts.Parity = query.Get("parity")
	opts, err := opts.Normalize()
	return path, opts, err
}

// Open opens the serial port at path.
func Open(path string, opts PortOptions) (serial.Port, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	return serial.Open(path, mode)
}

// OpenURL opens the serial port described by u.
func OpenURL(u *url.URL) (serial.Port, error) {
	path, opts, err := ParseURL(u)
	if err != nil {
		return nil, err
	}
	return Open(path, opts)
}
