package bench

import "github.com/pthm-cable/swarm/particles"

// particleProxy is a heap object that only carries an index into shared
// columns; every accessor goes through it.
type particleProxy struct {
	id  int
	buf *columns
}

func (p *particleProxy) IsStatic() bool { return p.buf.status[p.id].IsStatic() }

func (p *particleProxy) SetStatic(v bool) {
	if v {
		p.buf.status[p.id] = p.buf.status[p.id].With(particles.FlagStatic)
	} else {
		p.buf.status[p.id] = p.buf.status[p.id].Without(particles.FlagStatic)
	}
}

func (p *particleProxy) X() float32      { return p.buf.x[p.id] }
func (p *particleProxy) Y() float32      { return p.buf.y[p.id] }
func (p *particleProxy) Radius() float32 { return p.buf.radius[p.id] }

func (p *particleProxy) ApplyForce(fx, fy, dt float32) {
	if p.IsStatic() {
		return
	}
	p.buf.vx[p.id] += float32(fx * dt)
	p.buf.vy[p.id] += float32(fy * dt)
}

func (p *particleProxy) Update(dt float32) {
	if p.IsStatic() {
		return
	}
	p.buf.x[p.id] += float32(p.buf.vx[p.id] * dt)
	p.buf.y[p.id] += float32(p.buf.vy[p.id] * dt)
}

// Proxies holds one proxy object per particle over shared columns.
type Proxies struct {
	buf   *columns
	items []*particleProxy
}

// NewProxies creates an empty proxy representation.
func NewProxies() *Proxies { return &Proxies{buf: newColumns(nil)} }

func (p *Proxies) Name() string { return "proxy" }
func (p *Proxies) Len() int     { return len(p.items) }

func (p *Proxies) Load(specs []particles.Spec) {
	p.buf = newColumns(specs)
	p.items = make([]*particleProxy, len(specs))
	for i := range p.items {
		p.items[i] = &particleProxy{id: i, buf: p.buf}
	}
}

func (p *Proxies) Frame(fx, fy, dt float32, vp particles.Viewport, out []uint32) int {
	cursor := 0
	for _, q := range p.items {
		q.ApplyForce(fx, fy, dt)
		q.Update(dt)
		if !vp.Contains(q.X(), q.Y(), q.Radius()) {
			continue
		}
		stage(out, cursor, q.X(), q.Y(), q.Radius(), p.buf.strokeWidth[q.id], p.buf.fill[q.id], p.buf.stroke[q.id])
		cursor += particles.ProjectionWords
	}
	return cursor / particles.ProjectionWords
}
