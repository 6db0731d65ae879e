// Package particles implements a fixed-stride particle store backed by a
// single word buffer, with garbage-free removal, geometric growth and a
// per-frame integrate/cull/compact pass into a caller-owned staging buffer.
package particles

import "math"

// Stride is the number of 32-bit words per particle record.
// 13 words are used; the rest pad the record to 64 bytes.
const Stride = 16

// Word offsets within a record. The first ProjectionWords words are laid out
// exactly as a staging instance so compaction copies a contiguous prefix.
const (
	fieldX = iota
	fieldY
	fieldRadius
	fieldStrokeWidth
	fieldFill
	fieldStroke
	fieldVX
	fieldVY
	fieldMass
	fieldFriction
	fieldRestitution
	fieldLink
	fieldFlags
)

// ProjectionWords is the number of scalars written to the staging buffer per
// visible particle: x, y, radius, strokeWidth, fill bits, stroke bits.
const ProjectionWords = 6

// LineWords is the number of scalars per link line record:
// ax, ay, bx, by, color bits, thickness.
const LineWords = 6

// NoLink marks a particle without a link node.
const NoLink int32 = -1

// Record is a copy of one raw particle slot.
type Record [Stride]uint32

// Flags is the per-particle status bitmask.
type Flags uint32

const (
	// FlagStatic excludes a particle from force application and integration.
	FlagStatic Flags = 1 << 0
	// FlagSensor marks a particle that takes no collision response.
	FlagSensor Flags = 1 << 1
)

// IsStatic reports whether the static bit is set.
func (f Flags) IsStatic() bool { return f&FlagStatic != 0 }

// IsSensor reports whether the sensor bit is set.
func (f Flags) IsSensor() bool { return f&FlagSensor != 0 }

// With returns f with the given bits set.
func (f Flags) With(bits Flags) Flags { return f | bits }

// Without returns f with the given bits cleared.
func (f Flags) Without(bits Flags) Flags { return f &^ bits }

// dynamicMask is all ones for dynamic particles and zero for static ones.
func dynamicMask(flags uint32) uint32 {
	return (flags & uint32(FlagStatic)) - 1
}

// maskedAdd returns a + delta for dynamic particles and a, bit for bit, for
// static ones, without a data-dependent branch. The mask selects between the
// old and new bits, so a static -0 stays -0.
func maskedAdd(a, delta float32, mask uint32) float32 {
	old := math.Float32bits(a)
	sum := math.Float32bits(a + delta)
	return math.Float32frombits(old&^mask | sum&mask)
}

func f32(w uint32) float32 { return math.Float32frombits(w) }

func bits(f float32) uint32 { return math.Float32bits(f) }
