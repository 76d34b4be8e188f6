package mqc

// ByteStream is the byte buffer a Coder writes to and reads from.
// It is an append-oriented store with random read access: the coder
// appends bytes while encoding, reads bytes by position while decoding,
// and trims trailing bytes during optimal termination.
//
// A ByteStream is not safe for concurrent use, matching the coder that
// owns it.
type ByteStream struct {
	buf []byte
}

// NewByteStream returns an empty stream, ready for encoding.
func NewByteStream() *ByteStream {
	return &ByteStream{
		buf: make([]byte, 0, 128),
	}
}

// NewByteStreamBytes returns a stream backed by data, ready for decoding.
// The stream shares data rather than copying it; the caller must not
// mutate data while the stream is bound to a coder.
func NewByteStreamBytes(data []byte) *ByteStream {
	return &ByteStream{buf: data}
}

// PutByte appends one byte to the stream.
func (s *ByteStream) PutByte(b byte) {
	s.buf = append(s.buf, b)
}

// GetByte returns the byte at position i. It panics if i is outside
// [0, Len()), like any slice access.
func (s *ByteStream) GetByte(i int) byte {
	return s.buf[i]
}

// Len returns the number of bytes currently in the stream.
func (s *ByteStream) Len() int {
	return len(s.buf)
}

// RemoveByte removes the last byte. Removing from an empty stream is a
// no-op.
func (s *ByteStream) RemoveByte() {
	if len(s.buf) > 0 {
		s.buf = s.buf[:len(s.buf)-1]
	}
}

// RemoveBytes removes the last n bytes, or all of them if fewer remain.
func (s *ByteStream) RemoveBytes(n int) {
	if n <= 0 {
		return
	}
	if n > len(s.buf) {
		n = len(s.buf)
	}
	s.buf = s.buf[:len(s.buf)-n]
}

// Bytes returns the stream contents. The slice aliases the internal
// buffer and is only valid until the next mutation.
func (s *ByteStream) Bytes() []byte {
	return s.buf
}

// Reset truncates the stream to zero length, keeping the allocated
// capacity so the stream can be reused for the next message.
func (s *ByteStream) Reset() {
	s.buf = s.buf[:0]
}
