package sh

import "errors"

var (
	// ErrNothingToSend is returned when sending an empty frame.
	ErrNothingToSend = errors.New("nothing to send")
	// ErrValueExpected is returned when a command gets no value.
	ErrValueExpected = errors.New("value expected")
)
