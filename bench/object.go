package bench

import "github.com/pthm-cable/swarm/particles"

// objectParticle is one heap object per particle with its fields grouped
// in small arrays.
type objectParticle struct {
	motion   [4]float32 // x, y, vx, vy
	physical [3]float32 // mass, friction, restitution
	radius   float32
	style    [2]particles.Color // fill, stroke
	stroke   float32
	link     int32
	static   bool
	sensor   bool
}

func (p *objectParticle) applyForce(fx, fy, dt float32) {
	if p.static {
		return
	}
	p.motion[2] += float32(fx * dt)
	p.motion[3] += float32(fy * dt)
}

func (p *objectParticle) update(dt float32) {
	if p.static {
		return
	}
	p.motion[0] += float32(p.motion[2] * dt)
	p.motion[1] += float32(p.motion[3] * dt)
}

// Objects holds a slice of pointers to per-particle objects.
type Objects struct {
	items []*objectParticle
}

// NewObjects creates an empty object representation.
func NewObjects() *Objects { return &Objects{} }

func (o *Objects) Name() string { return "object" }
func (o *Objects) Len() int     { return len(o.items) }

func (o *Objects) Load(specs []particles.Spec) {
	o.items = make([]*objectParticle, len(specs))
	for i, s := range specs {
		o.items[i] = &objectParticle{
			motion:   [4]float32{s.X, s.Y, s.VX, s.VY},
			physical: [3]float32{s.Mass, s.Friction, s.Restitution},
			radius:   s.Radius,
			style:    [2]particles.Color{s.Fill, s.Stroke},
			stroke:   s.StrokeWidth,
			link:     s.Link,
			static:   s.Flags.IsStatic(),
			sensor:   s.Flags.IsSensor(),
		}
	}
}

func (o *Objects) Frame(fx, fy, dt float32, vp particles.Viewport, out []uint32) int {
	cursor := 0
	for _, p := range o.items {
		p.applyForce(fx, fy, dt)
		p.update(dt)
		if !vp.Contains(p.motion[0], p.motion[1], p.radius) {
			continue
		}
		stage(out, cursor, p.motion[0], p.motion[1], p.radius, p.stroke, p.style[0], p.style[1])
		cursor += particles.ProjectionWords
	}
	return cursor / particles.ProjectionWords
}
