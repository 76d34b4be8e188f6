package mqc

import (
	"bytes"
	"testing"
)

func TestByteStreamAppendAndRead(t *testing.T) {
	s := NewByteStream()
	if s.Len() != 0 {
		t.Fatalf("New stream has length %d", s.Len())
	}

	for i := 0; i < 300; i++ {
		s.PutByte(byte(i))
	}
	if s.Len() != 300 {
		t.Fatalf("Expected length 300, got %d", s.Len())
	}
	for i := 0; i < 300; i++ {
		if got := s.GetByte(i); got != byte(i) {
			t.Fatalf("Byte %d: got 0x%02X, want 0x%02X", i, got, byte(i))
		}
	}
}

func TestByteStreamRemove(t *testing.T) {
	s := NewByteStream()
	for i := 0; i < 10; i++ {
		s.PutByte(byte(i))
	}

	s.RemoveByte()
	if s.Len() != 9 {
		t.Errorf("After RemoveByte: length %d, want 9", s.Len())
	}
	s.RemoveBytes(4)
	if s.Len() != 5 {
		t.Errorf("After RemoveBytes(4): length %d, want 5", s.Len())
	}

	// Removing more than remains clamps at empty.
	s.RemoveBytes(100)
	if s.Len() != 0 {
		t.Errorf("After RemoveBytes(100): length %d, want 0", s.Len())
	}
	s.RemoveByte()
	s.RemoveBytes(-1)
	if s.Len() != 0 {
		t.Errorf("Removal from empty stream changed length to %d", s.Len())
	}
}

func TestByteStreamBytes(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	s := NewByteStreamBytes(data)
	if !bytes.Equal(s.Bytes(), data) {
		t.Errorf("Bytes() = % X, want % X", s.Bytes(), data)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}

func TestByteStreamReset(t *testing.T) {
	s := NewByteStream()
	for iter := 0; iter < 64; iter++ {
		s.PutByte(0xAB)
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("After Reset: length %d, want 0", s.Len())
	}
	s.PutByte(0x01)
	if s.Len() != 1 || s.GetByte(0) != 0x01 {
		t.Errorf("Stream unusable after Reset")
	}
}

func TestByteStreamOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("GetByte past the end did not panic")
		}
	}()
	s := NewByteStream()
	s.PutByte(0x00)
	s.GetByte(1)
}
