package particles

import (
	"math"
	"testing"
)

func TestUpdateScenario(t *testing.T) {
	s := New(2)

	a := DefaultSpec()
	a.Flags = FlagStatic
	s.Insert(a)

	b := specAt(100, 100)
	b.VX = 10
	s.Insert(b)

	staging := &testStaging{}
	visible, grew := s.Update(1, Viewport{X: 0, Y: 0, Width: 50, Height: 50}, staging)

	if x, y := s.Position(1); x != 110 || y != 100 {
		t.Errorf("B position = (%v, %v), want (110, 100)", x, y)
	}
	if x, y := s.Position(0); x != 0 || y != 0 {
		t.Errorf("A position = (%v, %v), want (0, 0)", x, y)
	}
	if visible != 1 {
		t.Fatalf("visible = %d, want 1", visible)
	}
	if !grew {
		t.Error("expected staging to grow on first frame")
	}

	raw := s.Raw(0)
	for i := 0; i < ProjectionWords; i++ {
		if staging.words[i] != raw[i] {
			t.Errorf("staging[%d] = %#x, want %#x", i, staging.words[i], raw[i])
		}
	}
}

func TestUpdateStagingResizePolicy(t *testing.T) {
	s := New(10)
	s.Insert(specAt(1, 1))
	staging := &testStaging{words: make([]uint32, 59)}

	_, grew := s.Update(0, Viewport{Width: 10, Height: 10}, staging)
	if !grew {
		t.Fatal("expected resize when capacity*6 > staging capacity")
	}
	if staging.Cap() != 120 {
		t.Errorf("staging capacity = %d, want 120", staging.Cap())
	}

	_, grew = s.Update(0, Viewport{Width: 10, Height: 10}, staging)
	if grew {
		t.Error("second frame should not resize")
	}
	if staging.resizes != 1 {
		t.Errorf("resizes = %d, want 1", staging.resizes)
	}
}

func TestUpdateExactFitDoesNotResize(t *testing.T) {
	s := New(4)
	staging := &testStaging{words: make([]uint32, 24)}
	if _, grew := s.Update(0, Viewport{Width: 1, Height: 1}, staging); grew {
		t.Error("capacity*6 == staging capacity should not resize")
	}
}

func TestUpdateNilStagingIsNoop(t *testing.T) {
	s := New(1)
	p := specAt(0, 0)
	p.VX = 1
	s.Insert(p)

	if v, grew := s.Update(1, Viewport{Width: 10, Height: 10}, nil); v != 0 || grew {
		t.Errorf("nil staging: got (%d, %v), want (0, false)", v, grew)
	}
	if x, _ := s.Position(0); x != 0 {
		t.Errorf("no-op update moved particle to x=%v", x)
	}
}

func TestUpdateZeroAreaViewport(t *testing.T) {
	s := New(2)

	a := DefaultSpec()
	a.Flags = FlagStatic
	s.Insert(a)

	b := DefaultSpec()
	b.VX = 10
	s.Insert(b)

	staging := &testStaging{}
	visible, _ := s.Update(1, Viewport{}, staging)

	if x, _ := s.Position(1); x != 10 {
		t.Errorf("dynamic x = %v, want 10", x)
	}
	// The origin particle's radius reaches past the zero-area rect.
	if visible != 1 {
		t.Fatalf("visible = %d, want 1", visible)
	}
	if got := math.Float32frombits(staging.words[0]); got != 0 {
		t.Errorf("staged x = %v, want 0", got)
	}
	if got := math.Float32frombits(staging.words[2]); got != 5 {
		t.Errorf("staged radius = %v, want 5", got)
	}
}

func TestUpdateStaticKeepsNegativeZero(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	s := New(1)
	p := specAt(negZero, negZero)
	p.VX, p.VY = negZero, 3
	p.Flags = FlagStatic
	slot := s.Insert(p)

	s.ApplyForce(slot, 1, 1, 1)
	s.Update(1, Viewport{Width: 10, Height: 10}, &testStaging{})

	raw := s.Raw(slot)
	for _, f := range []int{fieldX, fieldY, fieldVX} {
		if raw[f] != 0x80000000 {
			t.Errorf("field %d bits = %#x, want 0x80000000", f, raw[f])
		}
	}
}

func TestVisibilityBoundary(t *testing.T) {
	const (
		w, h = 100, 80
		r    = 5
	)
	eps := float32(1e-3)
	vp := Viewport{Width: w, Height: h}

	tests := []struct {
		name    string
		x, y    float32
		visible bool
	}{
		{"left edge", -r, 40, false},
		{"left inside", -r + eps, 40, true},
		{"right edge", w + r, 40, false},
		{"right inside", w + r - eps, 40, true},
		{"top edge", 50, -r, false},
		{"top inside", 50, -r + eps, true},
		{"bottom edge", 50, h + r, false},
		{"bottom inside", 50, h + r - eps, true},
		{"center", 50, 40, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(1)
			p := specAt(tt.x, tt.y)
			p.Radius = r
			s.Insert(p)
			visible, _ := s.Update(0, vp, &testStaging{})
			if (visible == 1) != tt.visible {
				t.Errorf("(%v, %v) visible = %v, want %v", tt.x, tt.y, visible == 1, tt.visible)
			}
		})
	}
}

func TestViewportOffset(t *testing.T) {
	vp := Viewport{X: 100, Y: 200, Width: 50, Height: 50}
	if vp.Contains(50, 220, 5) {
		t.Error("point left of offset viewport should be culled")
	}
	if !vp.Contains(120, 220, 5) {
		t.Error("point inside offset viewport should be visible")
	}
}

func TestUpdateCompactionPacking(t *testing.T) {
	s := New(16)
	vp := Viewport{Width: 100, Height: 100}

	// Alternate visible and culled particles.
	var wantVisible []int
	for i := 0; i < 12; i++ {
		x := float32(10 + i)
		if i%3 == 1 {
			x = -500
		} else {
			wantVisible = append(wantVisible, i)
		}
		p := specAt(x, 50)
		p.Fill = Color(0x100 + i)
		s.Insert(p)
	}

	staging := &testStaging{}
	visible, _ := s.Update(0, vp, staging)
	if visible != len(wantVisible) {
		t.Fatalf("visible = %d, want %d", visible, len(wantVisible))
	}
	for n, slot := range wantVisible {
		raw := s.Raw(slot)
		got := staging.words[n*ProjectionWords : (n+1)*ProjectionWords]
		for i := range got {
			if got[i] != raw[i] {
				t.Errorf("instance %d word %d = %#x, want slot %d word %#x", n, i, got[i], slot, raw[i])
			}
		}
	}
}

func TestUpdateIntegratesDynamic(t *testing.T) {
	s := New(1)
	p := specAt(1, 2)
	p.VX, p.VY = 3, -4
	s.Insert(p)

	s.Update(0.5, Viewport{Width: 10, Height: 10}, &testStaging{})
	x, y := s.Position(0)
	if math.Abs(float64(x-2.5)) > 1e-6 || math.Abs(float64(y-0)) > 1e-6 {
		t.Errorf("position = (%v, %v), want (2.5, 0)", x, y)
	}
}

func TestUpdateCulledParticlesStayInStore(t *testing.T) {
	s := New(2)
	s.Insert(specAt(-1000, -1000))
	visible, _ := s.Update(0, Viewport{Width: 10, Height: 10}, &testStaging{})
	if visible != 0 {
		t.Errorf("visible = %d, want 0", visible)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, culling must not remove particles", s.Len())
	}
}
