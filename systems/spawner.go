package systems

import (
	"math/rand"

	"github.com/pthm-cable/swarm/particles"
)

const spawnTimer = "spawn"

// SpawnParams controls particle emission.
type SpawnParams struct {
	Interval     float32 // seconds between batches
	Batch        int     // particles per batch
	MaxParticles int     // live count at which emission stops (0 = unlimited)
	Speed        float32 // max initial speed per axis
	RadiusMin    float32
	RadiusMax    float32
	StrokeChance float32
	LinkChance   float32
	StaticChance float32
}

// Spawner emits batches of randomized particles from an origin point.
type Spawner struct {
	params  SpawnParams
	rng     *rand.Rand
	timers  *Countdown
	originX float32
	originY float32
	spawned int
}

// NewSpawner creates a spawner. The same seed always produces the same
// sequence of particles for the same sequence of calls.
func NewSpawner(params SpawnParams, seed int64) *Spawner {
	return &Spawner{
		params: params,
		rng:    rand.New(rand.NewSource(seed)),
		timers: NewCountdown(),
	}
}

// Params returns the current emission parameters.
func (s *Spawner) Params() SpawnParams { return s.params }

// SetParams replaces the emission parameters.
func (s *Spawner) SetParams(p SpawnParams) { s.params = p }

// SetOrigin moves the emission point.
func (s *Spawner) SetOrigin(x, y float32) {
	s.originX, s.originY = x, y
}

// Origin returns the emission point.
func (s *Spawner) Origin() (x, y float32) { return s.originX, s.originY }

// Spawned returns the total number of particles emitted.
func (s *Spawner) Spawned() int { return s.spawned }

// Update advances the spawn timer by dt and emits a batch each time it fires.
// Returns the number of particles emitted this call.
func (s *Spawner) Update(t *particles.Tracker, dt float32) int {
	n := 0
	s.timers.Tick(spawnTimer, dt, s.params.Interval, func() {
		n = s.Emit(t, s.params.Batch)
	})
	return n
}

// Emit inserts up to n particles immediately, stopping at MaxParticles.
func (s *Spawner) Emit(t *particles.Tracker, n int) int {
	emitted := 0
	for i := 0; i < n; i++ {
		if s.params.MaxParticles > 0 && t.Len() >= s.params.MaxParticles {
			break
		}
		t.Insert(s.next(t.Len()))
		emitted++
	}
	s.spawned += emitted
	return emitted
}

// next builds a randomized particle. live is the current store length and
// bounds the link target.
func (s *Spawner) next(live int) particles.Spec {
	p := particles.DefaultSpec()
	p.X, p.Y = s.originX, s.originY
	p.VX = (s.rng.Float32()*2 - 1) * s.params.Speed
	p.VY = (s.rng.Float32()*2 - 1) * s.params.Speed
	p.Radius = randRange(s.rng.Float32(), s.params.RadiusMin, s.params.RadiusMax)
	p.Fill = particles.RGBA(uint8(s.rng.Intn(256)), uint8(s.rng.Intn(256)), uint8(s.rng.Intn(256)), 255)

	if s.rng.Float32() < s.params.StrokeChance {
		p.StrokeWidth = 1
		p.Stroke = particles.Black
	} else {
		p.StrokeWidth = 0
		p.Stroke = particles.Transparent
	}
	if live > 0 && s.rng.Float32() < s.params.LinkChance {
		p.Link = int32(s.rng.Intn(live))
	}
	if s.rng.Float32() < s.params.StaticChance {
		p.Flags = p.Flags.With(particles.FlagStatic)
	}
	return p
}
