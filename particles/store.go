package particles

// GrowthThreshold is the capacity at which growth switches from doubling to 1.5x.
const GrowthThreshold = 1024

// NextCapacity returns the capacity after one growth step.
// Capacities below GrowthThreshold double; from the threshold up they grow
// by half, which bounds the slack at scale.
func NextCapacity(capacity int) int {
	if capacity < 1 {
		return 1
	}
	if capacity >= GrowthThreshold {
		return capacity + capacity/2
	}
	return capacity * 2
}

// Spec describes a particle to insert. Use DefaultSpec as a starting point;
// a zero Spec inserts a particle with zero mass, radius and colors.
type Spec struct {
	X, Y        float32
	VX, VY      float32
	Radius      float32
	StrokeWidth float32
	Fill        Color
	Stroke      Color
	Mass        float32
	Friction    float32
	Restitution float32
	Link        int32
	Flags       Flags
}

// DefaultSpec returns a Spec with the store's documented defaults.
func DefaultSpec() Spec {
	return Spec{
		Radius:      5,
		StrokeWidth: 1,
		Fill:        White,
		Stroke:      Black,
		Mass:        1,
		Friction:    0.001,
		Restitution: 0.9,
		Link:        NoLink,
	}
}

// Option configures a Store.
type Option func(*Store)

// WithGrowHook registers a callback fired after every reallocation.
func WithGrowHook(fn func(from, to int)) Option {
	return func(s *Store) { s.onGrow = fn }
}

// Store holds particle records in one contiguous word buffer.
// Slots [0, Len()) are live; everything above is unspecified.
//
// Slot indices are not stable: Remove moves the last record into the freed
// slot. Use a Tracker when identity must survive removals.
type Store struct {
	words    []uint32
	capacity int
	count    int
	grows    int
	onGrow   func(from, to int)
}

// New creates a store with room for capacity particles (minimum 1).
func New(capacity int, opts ...Option) *Store {
	if capacity < 1 {
		capacity = 1
	}
	s := &Store{
		words:    make([]uint32, capacity*Stride),
		capacity: capacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of live particles.
func (s *Store) Len() int { return s.count }

// Cap returns the number of slots currently allocated.
func (s *Store) Cap() int { return s.capacity }

// Grows returns how many reallocations the store has performed.
func (s *Store) Grows() int { return s.grows }

// Insert writes a new record at slot Len(), growing first if the store is
// full, and returns the slot. It never fails.
func (s *Store) Insert(p Spec) int {
	if s.count == s.capacity {
		s.grow()
	}
	slot := s.count
	r := s.words[slot*Stride : slot*Stride+Stride : slot*Stride+Stride]
	r[fieldX] = bits(p.X)
	r[fieldY] = bits(p.Y)
	r[fieldRadius] = bits(p.Radius)
	r[fieldStrokeWidth] = bits(p.StrokeWidth)
	r[fieldFill] = uint32(p.Fill)
	r[fieldStroke] = uint32(p.Stroke)
	r[fieldVX] = bits(p.VX)
	r[fieldVY] = bits(p.VY)
	r[fieldMass] = bits(p.Mass)
	r[fieldFriction] = bits(p.Friction)
	r[fieldRestitution] = bits(p.Restitution)
	r[fieldLink] = uint32(p.Link)
	r[fieldFlags] = uint32(p.Flags)
	for i := fieldFlags + 1; i < Stride; i++ {
		r[i] = 0
	}
	s.count++
	return slot
}

// Remove deletes the particle at slot by moving the last live record into it.
// Every other record keeps its slot. Removing from an empty store, or a slot
// outside [0, Len()), does nothing.
func (s *Store) Remove(slot int) {
	if s.count == 0 || slot < 0 || slot >= s.count {
		return
	}
	last := s.count - 1
	if slot != last {
		copy(s.words[slot*Stride:slot*Stride+Stride], s.words[last*Stride:last*Stride+Stride])
	}
	s.count = last
}

// Reset drops every live particle. The buffer is kept for reuse.
func (s *Store) Reset() {
	s.count = 0
}

// grow reallocates the buffer at NextCapacity and copies the raw words over.
func (s *Store) grow() {
	from := s.capacity
	to := NextCapacity(from)
	words := make([]uint32, to*Stride)
	copy(words, s.words)
	s.words = words
	s.capacity = to
	s.grows++
	if s.onGrow != nil {
		s.onGrow(from, to)
	}
}

// ApplyForce adds f*dt to the particle's velocity. Static particles are left
// untouched via a bit mask rather than a branch.
func (s *Store) ApplyForce(slot int, fx, fy, dt float32) {
	if slot < 0 || slot >= s.count {
		return
	}
	r := s.words[slot*Stride : slot*Stride+Stride : slot*Stride+Stride]
	mask := dynamicMask(r[fieldFlags])
	r[fieldVX] = bits(maskedAdd(f32(r[fieldVX]), fx*dt, mask))
	r[fieldVY] = bits(maskedAdd(f32(r[fieldVY]), fy*dt, mask))
}

func (s *Store) word(slot, field int) uint32 {
	return s.words[slot*Stride+field]
}

func (s *Store) setWord(slot, field int, w uint32) {
	s.words[slot*Stride+field] = w
}

// Position returns the particle's position.
func (s *Store) Position(slot int) (x, y float32) {
	return f32(s.word(slot, fieldX)), f32(s.word(slot, fieldY))
}

// SetPosition overwrites the particle's position.
func (s *Store) SetPosition(slot int, x, y float32) {
	s.setWord(slot, fieldX, bits(x))
	s.setWord(slot, fieldY, bits(y))
}

// Velocity returns the particle's velocity.
func (s *Store) Velocity(slot int) (vx, vy float32) {
	return f32(s.word(slot, fieldVX)), f32(s.word(slot, fieldVY))
}

// SetVelocity overwrites the particle's velocity, static or not.
func (s *Store) SetVelocity(slot int, vx, vy float32) {
	s.setWord(slot, fieldVX, bits(vx))
	s.setWord(slot, fieldVY, bits(vy))
}

// Radius returns the particle's radius.
func (s *Store) Radius(slot int) float32 { return f32(s.word(slot, fieldRadius)) }

// StrokeWidth returns the particle's outline thickness.
func (s *Store) StrokeWidth(slot int) float32 { return f32(s.word(slot, fieldStrokeWidth)) }

// Fill returns the particle's fill color.
func (s *Store) Fill(slot int) Color { return Color(s.word(slot, fieldFill)) }

// Stroke returns the particle's stroke color.
func (s *Store) Stroke(slot int) Color { return Color(s.word(slot, fieldStroke)) }

// Mass returns the particle's mass.
func (s *Store) Mass(slot int) float32 { return f32(s.word(slot, fieldMass)) }

// Friction returns the stored friction coefficient. It is not applied by
// the integrator.
func (s *Store) Friction(slot int) float32 { return f32(s.word(slot, fieldFriction)) }

// Restitution returns the stored bounce coefficient. It is not applied by
// the integrator.
func (s *Store) Restitution(slot int) float32 { return f32(s.word(slot, fieldRestitution)) }

// Link returns the particle's link node, or NoLink.
func (s *Store) Link(slot int) int32 { return int32(s.word(slot, fieldLink)) }

// SetLink overwrites the particle's link node.
func (s *Store) SetLink(slot int, link int32) { s.setWord(slot, fieldLink, uint32(link)) }

// Flags returns the particle's status flags.
func (s *Store) Flags(slot int) Flags { return Flags(s.word(slot, fieldFlags)) }

// SetFlags overwrites the particle's status flags.
func (s *Store) SetFlags(slot int, f Flags) { s.setWord(slot, fieldFlags, uint32(f)) }

// Get decodes the record at slot.
func (s *Store) Get(slot int) Spec {
	x, y := s.Position(slot)
	vx, vy := s.Velocity(slot)
	return Spec{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Radius:      s.Radius(slot),
		StrokeWidth: s.StrokeWidth(slot),
		Fill:        s.Fill(slot),
		Stroke:      s.Stroke(slot),
		Mass:        s.Mass(slot),
		Friction:    s.Friction(slot),
		Restitution: s.Restitution(slot),
		Link:        s.Link(slot),
		Flags:       s.Flags(slot),
	}
}

// Raw returns a copy of the raw words at slot.
func (s *Store) Raw(slot int) Record {
	var r Record
	copy(r[:], s.words[slot*Stride:slot*Stride+Stride])
	return r
}
