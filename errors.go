package mqc

import (
	"errors"
	"fmt"
)

// ErrUnexpectedMarker reports a marker sequence (a 0xFF byte followed by
// a value above 0x8F) inside the coded data, before the logical end of
// the stream. The message cannot be recovered past that point.
var ErrUnexpectedMarker = errors.New("mqc: marker byte before end of stream")

// markerError attaches the byte position of the offending marker byte,
// to help distinguish a truncated stream from a corrupted one.
func markerError(pos int) error {
	return fmt.Errorf("%w (position %d)", ErrUnexpectedMarker, pos)
}
