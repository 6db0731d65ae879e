package particles

import (
	"math"
	"testing"
)

func TestLinks(t *testing.T) {
	s := New(4)
	vp := Viewport{Width: 100, Height: 100}

	a := specAt(10, 10)
	a.Stroke = RGBA(9, 8, 7, 6)
	a.StrokeWidth = 2
	s.Insert(a) // 0, no link

	b := specAt(20, 20)
	b.Link = 0
	b.Stroke = RGBA(1, 2, 3, 4)
	b.StrokeWidth = 3
	s.Insert(b) // 1 -> 0

	c := specAt(30, 30)
	c.Link = 7 // dangling
	s.Insert(c)

	d := specAt(40, 40)
	d.Link = 3 // self
	s.Insert(d)

	staging := &testStaging{}
	lines, grew := s.Links(vp, staging)
	if lines != 1 {
		t.Fatalf("lines = %d, want 1", lines)
	}
	if !grew {
		t.Error("expected first Links call to size the staging buffer")
	}

	got := staging.words[:LineWords]
	want := []float32{20, 20, 10, 10}
	for i, w := range want {
		if math.Float32frombits(got[i]) != w {
			t.Errorf("line word %d = %v, want %v", i, math.Float32frombits(got[i]), w)
		}
	}
	if Color(got[4]) != RGBA(1, 2, 3, 4) {
		t.Errorf("line color = %v, want %v", Color(got[4]), RGBA(1, 2, 3, 4))
	}
	if math.Float32frombits(got[5]) != 3 {
		t.Errorf("line thickness = %v, want 3", math.Float32frombits(got[5]))
	}
}

func TestLinksCullsFullyOffscreen(t *testing.T) {
	s := New(4)
	vp := Viewport{Width: 100, Height: 100}
	s.Insert(specAt(-500, -500))
	p := specAt(-600, -600)
	p.Link = 0
	s.Insert(p)

	// One end visible keeps the line.
	q := specAt(50, 50)
	q.Link = 0
	s.Insert(q)

	lines, _ := s.Links(vp, &testStaging{})
	if lines != 1 {
		t.Errorf("lines = %d, want 1", lines)
	}
}
