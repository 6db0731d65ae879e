package staging

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/pthm-cable/swarm/particles"
)

func TestBufferImplementsStaging(t *testing.T) {
	var _ particles.Staging = (*Buffer)(nil)
}

func TestBufferFilledByStore(t *testing.T) {
	s := particles.New(4)
	p := particles.DefaultSpec()
	p.X, p.Y = 12, 34
	p.Radius = 6
	p.StrokeWidth = 2
	p.Fill = particles.RGBA(10, 20, 30, 255)
	p.Stroke = particles.RGBA(40, 50, 60, 128)
	s.Insert(p)

	buf := New(0)
	visible, grew := s.Update(0, particles.Viewport{Width: 100, Height: 100}, buf)
	if visible != 1 || !grew {
		t.Fatalf("Update = (%d, %v), want (1, true)", visible, grew)
	}
	if buf.Cap() != 4*12 {
		t.Errorf("Cap = %d, want %d", buf.Cap(), 4*12)
	}
	if buf.Resizes() != 1 {
		t.Errorf("Resizes = %d, want 1", buf.Resizes())
	}

	got := buf.Instance(0)
	want := Instance{X: 12, Y: 34, Radius: 6, StrokeWidth: 2, Fill: p.Fill, Stroke: p.Stroke}
	if got != want {
		t.Errorf("Instance(0) = %+v, want %+v", got, want)
	}
}

func TestBufferResizeDropsContent(t *testing.T) {
	buf := New(6)
	buf.Words()[0] = 7
	buf.Resize(12)
	if buf.Cap() != 12 {
		t.Fatalf("Cap = %d, want 12", buf.Cap())
	}
	if buf.Words()[0] != 0 {
		t.Error("Resize should not preserve content")
	}
}

func TestBufferAppendBytes(t *testing.T) {
	buf := New(12)
	w := buf.Words()
	w[0] = math.Float32bits(1.5)
	w[4] = 0xAABBCCDD
	w[6] = 99

	out := buf.AppendBytes([]byte{0x01}, 1)
	if len(out) != 1+6*4 {
		t.Fatalf("len = %d, want %d", len(out), 1+6*4)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(out[1:])); got != 1.5 {
		t.Errorf("x = %v, want 1.5", got)
	}
	if got := binary.LittleEndian.Uint32(out[1+16:]); got != 0xAABBCCDD {
		t.Errorf("fill = %#x, want 0xAABBCCDD", got)
	}
}

func TestBufferLine(t *testing.T) {
	s := particles.New(2)
	a := particles.DefaultSpec()
	a.X, a.Y = 1, 2
	s.Insert(a)
	b := particles.DefaultSpec()
	b.X, b.Y = 3, 4
	b.Link = 0
	b.StrokeWidth = 1.5
	s.Insert(b)

	buf := New(0)
	lines, _ := s.Links(particles.Viewport{Width: 10, Height: 10}, buf)
	if lines != 1 {
		t.Fatalf("lines = %d, want 1", lines)
	}
	got := buf.Line(0)
	want := Line{AX: 3, AY: 4, BX: 1, BY: 2, Color: particles.Black, Thickness: 1.5}
	if got != want {
		t.Errorf("Line(0) = %+v, want %+v", got, want)
	}
}
