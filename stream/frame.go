// Package stream serves staging frames to websocket clients and exposes
// store metrics for Prometheus.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pthm-cable/swarm/particles"
	"github.com/pthm-cable/swarm/staging"
)

// OpFrame tags a frame carrying visible particle records.
const OpFrame byte = 0x01

// HeaderSize is the opcode byte plus the uint32 record count.
const HeaderSize = 1 + 4

var (
	ErrShortFrame = errors.New("stream: frame too short")
	ErrOpcode     = errors.New("stream: unknown opcode")
)

// FrameSize returns the encoded size of a frame with n records.
func FrameSize(n int) int {
	return HeaderSize + n*particles.ProjectionWords*4
}

// AppendFrame appends the first n records of buf to dst as a frame:
// opcode, little-endian count, then count*6 little-endian words.
func AppendFrame(dst []byte, buf *staging.Buffer, n int) []byte {
	dst = append(dst, OpFrame)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(n))
	return buf.AppendBytes(dst, n)
}

// EncodeFrame returns a freshly allocated frame for the first n records.
// The result is never reused, so it can be shared between clients.
func EncodeFrame(buf *staging.Buffer, n int) []byte {
	return AppendFrame(make([]byte, 0, FrameSize(n)), buf, n)
}

// DecodeFrame parses a frame and returns its record words.
func DecodeFrame(b []byte) ([]uint32, error) {
	if len(b) < HeaderSize {
		return nil, ErrShortFrame
	}
	if b[0] != OpFrame {
		return nil, fmt.Errorf("%w: %#x", ErrOpcode, b[0])
	}
	n := int(binary.LittleEndian.Uint32(b[1:]))
	want := FrameSize(n)
	if len(b) != want {
		return nil, fmt.Errorf("%w: %d records need %d bytes, got %d", ErrShortFrame, n, want, len(b))
	}
	words := make([]uint32, n*particles.ProjectionWords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[HeaderSize+i*4:])
	}
	return words, nil
}
