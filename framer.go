// Copyright (c) 2024 Neomantra Corp
//
// Framer reads ITCH's length-prefixed wire framing. Adapted from the
// teacher's DbnScanner (dbn_scanner.go): a bufio.Reader wrapped around
// the caller's source, a single reused scratch buffer sized for the
// largest wire message, and a pull-style Next()/Error() API rather than
// a channel, so steady-state scanning allocates nothing.

package itch

import (
	"bufio"
	"encoding/binary"
	"io"
)

// DefaultScratchBufferSize comfortably exceeds the largest ITCH message
// (the widest layout, NOII on an 8-byte symbol, is well under 64 bytes;
// this leaves generous headroom for future message types).
const DefaultScratchBufferSize = 256

// Framer pulls `[len:u16 BE][type:u8][payload:len-1 bytes]` frames off
// an octet source. It does not interpret the type byte; unknown types
// are returned to the caller verbatim (spec §4.1).
type Framer struct {
	src       *bufio.Reader
	scratch   []byte
	lastType  byte
	lastLen   int // payload length, excluding the type byte
	lastErr   error
}

// NewFramer wraps r with a buffered reader and a reusable scratch buffer.
func NewFramer(r io.Reader) *Framer {
	return &Framer{
		src:     bufio.NewReaderSize(r, 16*1024),
		scratch: make([]byte, DefaultScratchBufferSize),
	}
}

// Next reads the next frame. It returns false at clean end-of-stream or
// on a fatal framing error; callers must check Error() to distinguish
// the two. A partial read after a length prefix has been consumed is a
// fatal framing error (spec §4.1), never treated as a clean EOF.
func (f *Framer) Next() bool {
	var lenBuf [2]byte
	if _, err := io.ReadFull(f.src, lenBuf[:]); err != nil {
		if err == io.EOF {
			f.lastErr = io.EOF
		} else {
			f.lastErr = shortFrameError(2, 0)
		}
		return false
	}
	length := int(binary.BigEndian.Uint16(lenBuf[:]))
	if length < 1 {
		f.lastErr = ErrMalformedPayload
		return false
	}
	if length > len(f.scratch) {
		f.scratch = make([]byte, length)
	}
	n, err := io.ReadFull(f.src, f.scratch[:length])
	if err != nil {
		f.lastErr = shortFrameError(length, n)
		return false
	}
	f.lastType = f.scratch[0]
	f.lastLen = length - 1
	f.lastErr = nil
	return true
}

// Error returns the last error from Next(), which may be io.EOF for a
// clean end-of-stream.
func (f *Framer) Error() error {
	return f.lastErr
}

// Frame returns the type byte and payload of the last frame read by
// Next(). The returned slice aliases the Framer's scratch buffer and is
// only valid until the next call to Next().
func (f *Framer) Frame() (msgType byte, payload []byte) {
	return f.lastType, f.scratch[1 : 1+f.lastLen]
}
