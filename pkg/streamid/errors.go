package streamid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPrefix is returned when a text id does not start with Prefix.
	ErrInvalidPrefix = errors.New("streamid: invalid prefix")
	// ErrInvalidEncoding is returned when the base64 body is malformed or too long.
	ErrInvalidEncoding = errors.New("streamid: invalid encoding")
	// ErrInvalidTrack is returned when the track byte is not a known track.
	ErrInvalidTrack = errors.New("streamid: invalid track")
)

// IOError reports a buffer that is too short for the field being read or written.
// Err is io.ErrUnexpectedEOF on decode and io.ErrShortBuffer on encode.
type IOError struct {
	Op    string
	Field string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("streamid: %s %s: %v", e.Op, e.Field, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
