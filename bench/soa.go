package bench

import "github.com/pthm-cable/swarm/particles"

// columns is one typed slice per particle field.
type columns struct {
	x, y, vx, vy []float32
	mass         []float32
	friction     []float32
	restitution  []float32
	radius       []float32
	strokeWidth  []float32
	fill, stroke []particles.Color
	link         []int32
	status       []particles.Flags
}

func newColumns(specs []particles.Spec) *columns {
	n := len(specs)
	c := &columns{
		x:           make([]float32, n),
		y:           make([]float32, n),
		vx:          make([]float32, n),
		vy:          make([]float32, n),
		mass:        make([]float32, n),
		friction:    make([]float32, n),
		restitution: make([]float32, n),
		radius:      make([]float32, n),
		strokeWidth: make([]float32, n),
		fill:        make([]particles.Color, n),
		stroke:      make([]particles.Color, n),
		link:        make([]int32, n),
		status:      make([]particles.Flags, n),
	}
	for i, s := range specs {
		c.x[i], c.y[i], c.vx[i], c.vy[i] = s.X, s.Y, s.VX, s.VY
		c.mass[i], c.friction[i], c.restitution[i] = s.Mass, s.Friction, s.Restitution
		c.radius[i], c.strokeWidth[i] = s.Radius, s.StrokeWidth
		c.fill[i], c.stroke[i] = s.Fill, s.Stroke
		c.link[i] = s.Link
		c.status[i] = s.Flags
	}
	return c
}

// SoA loops directly over parallel slices.
type SoA struct {
	c *columns
}

// NewSoA creates an empty struct-of-arrays representation.
func NewSoA() *SoA { return &SoA{c: newColumns(nil)} }

func (s *SoA) Name() string                { return "soa" }
func (s *SoA) Len() int                    { return len(s.c.x) }
func (s *SoA) Load(specs []particles.Spec) { s.c = newColumns(specs) }

func (s *SoA) Frame(fx, fy, dt float32, vp particles.Viewport, out []uint32) int {
	c := s.c
	dvx, dvy := float32(fx*dt), float32(fy*dt)
	cursor := 0
	for i := range c.x {
		if !c.status[i].IsStatic() {
			c.vx[i] += dvx
			c.vy[i] += dvy
			c.x[i] += float32(c.vx[i] * dt)
			c.y[i] += float32(c.vy[i] * dt)
		}
		if !vp.Contains(c.x[i], c.y[i], c.radius[i]) {
			continue
		}
		stage(out, cursor, c.x[i], c.y[i], c.radius[i], c.strokeWidth[i], c.fill[i], c.stroke[i])
		cursor += particles.ProjectionWords
	}
	return cursor / particles.ProjectionWords
}
