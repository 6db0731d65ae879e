// Package staging provides the render staging buffer that the particle store
// compacts visible particles into each frame.
package staging

import (
	"encoding/binary"
	"math"

	"github.com/pthm-cable/swarm/particles"
)

// Instance is one decoded staging record.
type Instance struct {
	X, Y        float32
	Radius      float32
	StrokeWidth float32
	Fill        particles.Color
	Stroke      particles.Color
}

// Line is one decoded link line record.
type Line struct {
	AX, AY    float32
	BX, BY    float32
	Color     particles.Color
	Thickness float32
}

// Buffer is a growable run of 32-bit scalars, six per record.
// It implements particles.Staging.
type Buffer struct {
	words   []uint32
	resizes int
}

// New creates a buffer with room for the given number of scalars.
func New(scalars int) *Buffer {
	if scalars < 0 {
		scalars = 0
	}
	return &Buffer{words: make([]uint32, scalars)}
}

// Cap returns the capacity in scalars.
func (b *Buffer) Cap() int { return len(b.words) }

// Resize reallocates the buffer to n scalars. Contents are not preserved;
// the store always rewrites from offset 0.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	b.words = make([]uint32, n)
	b.resizes++
}

// Resizes returns how many times the buffer was reallocated.
func (b *Buffer) Resizes() int { return b.resizes }

// Words returns the write surface. Callers must fetch it again after any
// call that may resize the buffer.
func (b *Buffer) Words() []uint32 { return b.words }

// Instance decodes the i-th particle record.
func (b *Buffer) Instance(i int) Instance {
	w := b.words[i*particles.ProjectionWords : (i+1)*particles.ProjectionWords]
	return Instance{
		X:           math.Float32frombits(w[0]),
		Y:           math.Float32frombits(w[1]),
		Radius:      math.Float32frombits(w[2]),
		StrokeWidth: math.Float32frombits(w[3]),
		Fill:        particles.Color(w[4]),
		Stroke:      particles.Color(w[5]),
	}
}

// Line decodes the i-th line record.
func (b *Buffer) Line(i int) Line {
	w := b.words[i*particles.LineWords : (i+1)*particles.LineWords]
	return Line{
		AX:        math.Float32frombits(w[0]),
		AY:        math.Float32frombits(w[1]),
		BX:        math.Float32frombits(w[2]),
		BY:        math.Float32frombits(w[3]),
		Color:     particles.Color(w[4]),
		Thickness: math.Float32frombits(w[5]),
	}
}

// AppendBytes appends the first n records to dst as little-endian words,
// the layout a GPU instance buffer or a binary websocket frame expects.
func (b *Buffer) AppendBytes(dst []byte, n int) []byte {
	for _, w := range b.words[:n*particles.ProjectionWords] {
		dst = binary.LittleEndian.AppendUint32(dst, w)
	}
	return dst
}
