package bench

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarm/particles"
)

// Position is the ECS position component.
type Position struct {
	X, Y float32
}

// Velocity is the ECS velocity component.
type Velocity struct {
	X, Y float32
}

// Body holds the remaining particle fields.
type Body struct {
	Radius      float32
	StrokeWidth float32
	Fill        particles.Color
	Stroke      particles.Color
	Mass        float32
	Friction    float32
	Restitution float32
	Link        int32
	Flags       particles.Flags
}

// ECS stores particles as entities in an ark world.
type ECS struct {
	world  *ecs.World
	mapper *ecs.Map3[Position, Velocity, Body]
	filter *ecs.Filter3[Position, Velocity, Body]
	count  int
}

// NewECS creates an empty ECS representation.
func NewECS() *ECS {
	e := &ECS{}
	e.reset()
	return e
}

func (e *ECS) reset() {
	e.world = ecs.NewWorld()
	e.mapper = ecs.NewMap3[Position, Velocity, Body](e.world)
	e.filter = ecs.NewFilter3[Position, Velocity, Body](e.world)
	e.count = 0
}

func (e *ECS) Name() string { return "ecs" }
func (e *ECS) Len() int     { return e.count }

func (e *ECS) Load(specs []particles.Spec) {
	e.reset()
	for _, s := range specs {
		pos := Position{X: s.X, Y: s.Y}
		vel := Velocity{X: s.VX, Y: s.VY}
		body := Body{
			Radius:      s.Radius,
			StrokeWidth: s.StrokeWidth,
			Fill:        s.Fill,
			Stroke:      s.Stroke,
			Mass:        s.Mass,
			Friction:    s.Friction,
			Restitution: s.Restitution,
			Link:        s.Link,
			Flags:       s.Flags,
		}
		e.mapper.NewEntity(&pos, &vel, &body)
	}
	e.count = len(specs)
}

func (e *ECS) Frame(fx, fy, dt float32, vp particles.Viewport, out []uint32) int {
	dvx, dvy := float32(fx*dt), float32(fy*dt)
	cursor := 0
	query := e.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()
		if !body.Flags.IsStatic() {
			vel.X += dvx
			vel.Y += dvy
			pos.X += float32(vel.X * dt)
			pos.Y += float32(vel.Y * dt)
		}
		if !vp.Contains(pos.X, pos.Y, body.Radius) {
			continue
		}
		stage(out, cursor, pos.X, pos.Y, body.Radius, body.StrokeWidth, body.Fill, body.Stroke)
		cursor += particles.ProjectionWords
	}
	return cursor / particles.ProjectionWords
}
