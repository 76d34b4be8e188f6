package mqc

import (
	"math/rand"
	"testing"
)

func TestNewCoderInit(t *testing.T) {
	mq := NewCoder(19)

	if mq.a != 0x8000 {
		t.Errorf("Expected a=0x8000 after construction, got 0x%04X", mq.a)
	}
	if mq.c != 0 {
		t.Errorf("Expected c=0 after construction, got 0x%08X", mq.c)
	}
	if mq.t != 12 {
		t.Errorf("Expected t=12 after construction, got %d", mq.t)
	}
	if mq.pos != -1 {
		t.Errorf("Expected pos=-1 after construction, got %d", mq.pos)
	}
	if len(mq.contexts) != 19 {
		t.Errorf("Expected 19 contexts, got %d", len(mq.contexts))
	}
	for i, ctx := range mq.contexts {
		if ctx.state != 0 || ctx.mps != 0 {
			t.Errorf("Context %d: expected state=0 mps=0, got state=%d mps=%d",
				i, ctx.state, ctx.mps)
		}
	}
}

func TestNewCoderZeroContexts(t *testing.T) {
	// A coder without contexts is valid for the probability-driven calls.
	mq := NewCoder(0)
	mq.SetStream(NewByteStream())

	code := Prob0ToMQ(0.8)
	for _, bit := range []int{0, 0, 1, 0, 1} {
		mq.EncodeBitProb(bit, code)
	}
	mq.Terminate()
}

func TestCoderReset(t *testing.T) {
	mq := NewCoder(4)
	mq.SetStream(NewByteStream())

	for i := 0; i < 64; i++ {
		mq.EncodeBitContext(i&1, i%4)
	}

	evolved := false
	for _, ctx := range mq.contexts {
		if ctx.state != 0 {
			evolved = true
		}
	}
	if !evolved {
		t.Fatal("No context evolved after 64 coded bits")
	}

	mq.Reset()
	for i, ctx := range mq.contexts {
		if ctx.state != 0 || ctx.mps != 0 {
			t.Errorf("Context %d not reset: state=%d mps=%d", i, ctx.state, ctx.mps)
		}
	}
}

func TestSetStreamNil(t *testing.T) {
	mq := NewCoder(1)
	mq.SetStream(nil)

	// A nil rebinding must leave a usable empty stream behind.
	mq.EncodeBitContext(1, 0)
	mq.Terminate()
}

func TestRemainingBytes(t *testing.T) {
	mq := NewCoder(1)
	mq.SetStream(NewByteStream())

	// Fresh registers hold t=12, well within the 4-byte flush zone.
	if n := mq.RemainingBytes(); n != 4 {
		t.Errorf("Fresh coder: RemainingBytes=%d, want 4", n)
	}

	// The answer tracks the register countdown exactly: 4 bytes unless
	// fewer than 5 transfer bits remain.
	rng := rand.New(rand.NewSource(7))
	seen := map[int]bool{}
	for iter := 0; iter < 4096; iter++ {
		mq.EncodeBitContext(rng.Intn(2), 0)
		want := 4
		if 27-mq.t > 22 {
			want = 5
		}
		got := mq.RemainingBytes()
		if got != want {
			t.Fatalf("t=%d: RemainingBytes=%d, want %d", mq.t, got, want)
		}
		seen[got] = true
	}
	if !seen[4] || !seen[5] {
		t.Errorf("Expected both answers over 4096 random bits, saw %v", seen)
	}
}

func TestPosition(t *testing.T) {
	out := NewByteStream()
	mq := NewCoder(1)
	mq.SetStream(out)

	if mq.Position() != -1 {
		t.Errorf("Expected position -1 before the first transfer, got %d", mq.Position())
	}

	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 512; iter++ {
		mq.EncodeBitContext(rng.Intn(2), 0)
	}
	mq.Terminate()

	dec := NewCoder(1)
	dec.SetStream(out)
	if err := dec.RestartDecoding(); err != nil {
		t.Fatalf("RestartDecoding: %v", err)
	}
	if dec.Position() != 2 {
		t.Errorf("Expected position 2 after decoder priming, got %d", dec.Position())
	}
	for iter := 0; iter < 512; iter++ {
		if _, err := dec.DecodeBitContext(0); err != nil {
			t.Fatalf("DecodeBitContext: %v", err)
		}
	}
	if dec.Position() > out.Len() {
		t.Errorf("Decoder position %d ran past stream length %d", dec.Position(), out.Len())
	}
}

func TestCoderReuseAcrossMessages(t *testing.T) {
	// One coder instance, several messages, following the documented
	// rebinding orders on both sides.
	rng := rand.New(rand.NewSource(11))
	messages := make([][]int, 5)
	for m := range messages {
		bits := make([]int, 100+rng.Intn(400))
		for i := range bits {
			bits[i] = rng.Intn(2)
		}
		messages[m] = bits
	}

	enc := NewCoder(3)
	streams := make([]*ByteStream, len(messages))
	for m, bits := range messages {
		streams[m] = NewByteStream()
		enc.SetStream(streams[m])
		enc.RestartEncoding()
		enc.Reset()
		for i, bit := range bits {
			enc.EncodeBitContext(bit, i%3)
		}
		enc.Terminate()
	}

	dec := NewCoder(3)
	for m, bits := range messages {
		dec.SetStream(streams[m])
		if err := dec.RestartDecoding(); err != nil {
			t.Fatalf("Message %d: RestartDecoding: %v", m, err)
		}
		dec.Reset()
		for i, want := range bits {
			got, err := dec.DecodeBitContext(i % 3)
			if err != nil {
				t.Fatalf("Message %d, bit %d: %v", m, i, err)
			}
			if got != want {
				t.Fatalf("Message %d, bit %d: decoded %d, want %d", m, i, got, want)
			}
		}
	}
}

func TestStateBoundsUnderRandomTraffic(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	out := NewByteStream()
	mq := NewCoder(8)
	mq.SetStream(out)

	check := func(stage string) {
		t.Helper()
		for i, ctx := range mq.contexts {
			if ctx.state < 0 || ctx.state >= numStates {
				t.Fatalf("%s: context %d state %d out of [0,%d)", stage, i, ctx.state, numStates)
			}
			if ctx.mps != 0 && ctx.mps != 1 {
				t.Fatalf("%s: context %d mps %d not a bit", stage, i, ctx.mps)
			}
		}
	}

	bits := make([]int, 20000)
	ctxs := make([]int, len(bits))
	for i := range bits {
		bits[i] = rng.Intn(2)
		ctxs[i] = rng.Intn(8)
		mq.EncodeBitContext(bits[i], ctxs[i])
		check("encode")
	}
	mq.Terminate()

	dec := NewCoder(8)
	dec.SetStream(out)
	if err := dec.RestartDecoding(); err != nil {
		t.Fatalf("RestartDecoding: %v", err)
	}
	for i := range bits {
		if _, err := dec.DecodeBitContext(ctxs[i]); err != nil {
			t.Fatalf("Bit %d: %v", i, err)
		}
		for j, ctx := range dec.contexts {
			if ctx.state < 0 || ctx.state >= numStates {
				t.Fatalf("decode: context %d state %d out of range", j, ctx.state)
			}
			if ctx.mps != 0 && ctx.mps != 1 {
				t.Fatalf("decode: context %d mps %d not a bit", j, ctx.mps)
			}
		}
	}
}
