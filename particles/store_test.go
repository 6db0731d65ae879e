package particles

import (
	"math"
	"math/rand"
	"testing"
)

// testStaging is a minimal Staging backed by a plain slice.
type testStaging struct {
	words   []uint32
	resizes int
}

func (b *testStaging) Cap() int        { return len(b.words) }
func (b *testStaging) Words() []uint32 { return b.words }
func (b *testStaging) Resize(n int) {
	b.words = make([]uint32, n)
	b.resizes++
}

func specAt(x, y float32) Spec {
	p := DefaultSpec()
	p.X, p.Y = x, y
	return p
}

func TestNewClampsCapacity(t *testing.T) {
	for _, c := range []int{-3, 0, 1} {
		s := New(c)
		if s.Cap() != 1 {
			t.Errorf("New(%d).Cap() = %d, want 1", c, s.Cap())
		}
		if s.Len() != 0 {
			t.Errorf("New(%d).Len() = %d, want 0", c, s.Len())
		}
	}
}

func TestInsertDefaults(t *testing.T) {
	s := New(4)
	slot := s.Insert(DefaultSpec())
	if slot != 0 {
		t.Fatalf("first insert went to slot %d, want 0", slot)
	}

	got := s.Get(slot)
	want := DefaultSpec()
	if got != want {
		t.Errorf("Get(0) = %+v, want %+v", got, want)
	}
	if s.Mass(slot) != 1 || s.Radius(slot) != 5 || s.StrokeWidth(slot) != 1 {
		t.Errorf("unexpected defaults: mass=%v radius=%v stroke=%v", s.Mass(slot), s.Radius(slot), s.StrokeWidth(slot))
	}
	if s.Friction(slot) != 0.001 || s.Restitution(slot) != 0.9 {
		t.Errorf("unexpected friction/restitution: %v/%v", s.Friction(slot), s.Restitution(slot))
	}
	if s.Fill(slot) != White || s.Stroke(slot) != Black {
		t.Errorf("unexpected colors: fill=%v stroke=%v", s.Fill(slot), s.Stroke(slot))
	}
	if s.Link(slot) != NoLink {
		t.Errorf("Link = %d, want %d", s.Link(slot), NoLink)
	}
	if s.Flags(slot) != 0 {
		t.Errorf("Flags = %b, want 0", s.Flags(slot))
	}
}

func TestInsertRoundTripsAllFields(t *testing.T) {
	s := New(1)
	p := Spec{
		X: -1.5, Y: 2.25, VX: 3, VY: -4,
		Radius: 7, StrokeWidth: 0.5,
		Fill: RGBA(1, 2, 3, 4), Stroke: RGBA(250, 251, 252, 253),
		Mass: 2.5, Friction: 0.1, Restitution: 0.2,
		Link: 42, Flags: FlagSensor,
	}
	slot := s.Insert(p)
	if got := s.Get(slot); got != p {
		t.Errorf("Get = %+v, want %+v", got, p)
	}
}

func TestInsertRemoveCountInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := New(1)

	inserts, removes := 0, 0
	for i := 0; i < 5000; i++ {
		if rng.Intn(3) == 0 {
			before := s.Len()
			s.Remove(rng.Intn(before + 1))
			if before > 0 && s.Len() == before-1 {
				removes++
			}
			continue
		}
		s.Insert(specAt(float32(i), 0))
		inserts++
	}
	if s.Len() != inserts-removes {
		t.Errorf("Len = %d, want %d inserts - %d removes", s.Len(), inserts, removes)
	}
}

func TestRemoveEmptyIsNoop(t *testing.T) {
	s := New(2)
	s.Remove(0)
	if s.Len() != 0 {
		t.Errorf("Len after remove on empty = %d, want 0", s.Len())
	}
}

func TestRemoveOutOfRangeIsNoop(t *testing.T) {
	s := New(2)
	s.Insert(specAt(1, 1))
	s.Remove(1)
	s.Remove(-1)
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestRemoveSwapAndPop(t *testing.T) {
	s := New(8)
	for i := 0; i < 6; i++ {
		p := specAt(float32(i), float32(i*10))
		p.Fill = Color(i)
		s.Insert(p)
	}

	before := make([]Record, s.Len())
	for i := range before {
		before[i] = s.Raw(i)
	}

	const k = 2
	last := s.Len() - 1
	s.Remove(k)

	if s.Len() != last {
		t.Fatalf("Len = %d, want %d", s.Len(), last)
	}
	if s.Raw(k) != before[last] {
		t.Errorf("slot %d = %v, want former last record %v", k, s.Raw(k), before[last])
	}
	for i := 0; i < s.Len(); i++ {
		if i == k {
			continue
		}
		if s.Raw(i) != before[i] {
			t.Errorf("slot %d changed: got %v, want %v", i, s.Raw(i), before[i])
		}
	}
}

func TestRemoveLastSlot(t *testing.T) {
	s := New(4)
	s.Insert(specAt(1, 1))
	s.Insert(specAt(2, 2))
	first := s.Raw(0)

	s.Remove(1)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if s.Raw(0) != first {
		t.Errorf("slot 0 changed after removing last slot")
	}
}

func TestNextCapacity(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{1, 2},
		{2, 4},
		{512, 1024},
		{1023, 2046},
		{1024, 1536},
		{1536, 2304},
		{1025, 1537},
	}
	for _, tt := range tests {
		if got := NextCapacity(tt.in); got != tt.want {
			t.Errorf("NextCapacity(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGrowthSequence(t *testing.T) {
	var seq []int
	s := New(1, WithGrowHook(func(from, to int) {
		if len(seq) == 0 {
			seq = append(seq, from)
		}
		seq = append(seq, to)
	}))

	for i := 0; i < 1025; i++ {
		s.Insert(specAt(float32(i), 0))
	}

	want := []int{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 1536}
	if len(seq) != len(want) {
		t.Fatalf("reallocations = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("reallocations = %v, want %v", seq, want)
		}
	}
	if s.Cap() < 1025 {
		t.Errorf("Cap = %d, want >= 1025", s.Cap())
	}
	if s.Grows() != len(want)-1 {
		t.Errorf("Grows = %d, want %d", s.Grows(), len(want)-1)
	}
}

func TestGrowthPreservesContent(t *testing.T) {
	s := New(3)
	for i := 0; i < 3; i++ {
		p := specAt(float32(i)*1.5, -float32(i))
		p.VX = float32(i)
		p.Link = int32(i - 1)
		p.Flags = Flags(i)
		s.Insert(p)
	}
	before := []Record{s.Raw(0), s.Raw(1), s.Raw(2)}

	s.Insert(specAt(99, 99))
	if s.Cap() != 6 {
		t.Fatalf("Cap after growth = %d, want 6", s.Cap())
	}
	for i, r := range before {
		if s.Raw(i) != r {
			t.Errorf("slot %d changed across growth: got %v, want %v", i, s.Raw(i), r)
		}
	}
}

func TestApplyForce(t *testing.T) {
	s := New(2)
	slot := s.Insert(specAt(0, 0))
	s.ApplyForce(slot, 10, -20, 0.5)
	vx, vy := s.Velocity(slot)
	if vx != 5 || vy != -10 {
		t.Errorf("velocity = (%v, %v), want (5, -10)", vx, vy)
	}

	// Out-of-range slots are ignored.
	s.ApplyForce(5, 1, 1, 1)
}

func TestStaticExemption(t *testing.T) {
	s := New(1)
	p := specAt(3, 4)
	p.VX, p.VY = 1, 2
	p.Flags = FlagStatic | FlagSensor
	slot := s.Insert(p)
	staging := &testStaging{}
	vp := Viewport{Width: 100, Height: 100}

	forces := []float32{1, -1e30, 1e30, float32(math.Inf(1)), float32(math.NaN())}
	dts := []float32{0.016, 1, 1e20, float32(math.Inf(-1))}
	for _, f := range forces {
		for _, dt := range dts {
			s.ApplyForce(slot, f, f, dt)
			s.Update(dt, vp, staging)
		}
	}

	x, y := s.Position(slot)
	vx, vy := s.Velocity(slot)
	if x != 3 || y != 4 {
		t.Errorf("static position moved to (%v, %v)", x, y)
	}
	if vx != 1 || vy != 2 {
		t.Errorf("static velocity changed to (%v, %v)", vx, vy)
	}
}

func TestFlags(t *testing.T) {
	var f Flags
	if f.IsStatic() || f.IsSensor() {
		t.Fatal("zero flags should have no bits set")
	}
	f = f.With(FlagStatic)
	if !f.IsStatic() || f.IsSensor() {
		t.Errorf("With(FlagStatic) = %b", f)
	}
	f = f.With(FlagSensor).Without(FlagStatic)
	if f.IsStatic() || !f.IsSensor() {
		t.Errorf("With(FlagSensor).Without(FlagStatic) = %b", f)
	}
}

func TestReset(t *testing.T) {
	s := New(2)
	s.Insert(specAt(1, 1))
	s.Insert(specAt(2, 2))
	s.Insert(specAt(3, 3))
	capBefore := s.Cap()

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", s.Len())
	}
	if s.Cap() != capBefore {
		t.Errorf("Cap after Reset = %d, want %d", s.Cap(), capBefore)
	}
}
