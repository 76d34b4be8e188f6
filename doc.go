// Package mqc implements a context-adaptive binary arithmetic coder
// based on the MQ coding scheme of the JPEG2000 standard (ITU-T T.800
// Annex C lineage).
//
// The coder turns a sequence of binary decisions into a compact byte
// stream and decodes it back bit for bit. Each bit is coded either
// against an adaptive context, whose probability estimate follows a
// 47-state automaton, or against an explicit fixed probability. The
// byte stream uses the JPEG2000 bit-stuffing rule: a 0xFF byte is
// never followed by a byte above 0x8F, so marker codes cannot appear
// inside coded data.
//
// A single Coder performs both encoding and decoding. What the bits
// mean is entirely up to the caller; the coder is a pure transcoder
// driven by (bit, context) or (bit, probability) pairs.
//
// Encoding:
//
//	out := mqc.NewByteStream()
//	mq := mqc.NewCoder(numContexts)
//	mq.SetStream(out)
//	for _, bit := range bits {
//	    mq.EncodeBitContext(bit, 0)
//	}
//	mq.Terminate()
//	compressed := out.Bytes()
//
// Decoding:
//
//	mq := mqc.NewCoder(numContexts)
//	mq.SetStream(mqc.NewByteStreamBytes(compressed))
//	if err := mq.RestartDecoding(); err != nil {
//	    log.Fatal(err)
//	}
//	mq.Reset()
//	for range n {
//	    bit, err := mq.DecodeBitContext(0)
//	    ...
//	}
//
// A coder can be reused for many messages without reallocation. On the
// encode side call Terminate, rebind with SetStream, then
// RestartEncoding and Reset, in that order. On the decode side rebind
// with SetStream, then RestartDecoding and Reset.
//
// Terminate uses the optimal termination: it searches for the minimum
// number of trailing bytes for which the stream still decodes
// correctly, which typically saves a byte or two per message compared
// to TerminateEasy.
package mqc
