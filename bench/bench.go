// Package bench times one simulation frame (apply force, integrate, cull and
// stage) over several particle memory layouts.
package bench

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swarm/particles"
)

// Representation is one way of holding particles in memory.
type Representation interface {
	Name() string
	// Load replaces the contents with specs.
	Load(specs []particles.Spec)
	Len() int
	// Frame applies (fx, fy) to every dynamic particle, integrates by dt and
	// writes the projection of each particle inside vp to out. It returns
	// the number of records written.
	Frame(fx, fy, dt float32, vp particles.Viewport, out []uint32) int
}

var constructors = map[string]func() Representation{
	"object": func() Representation { return NewObjects() },
	"proxy":  func() Representation { return NewProxies() },
	"soa":    func() Representation { return NewSoA() },
	"ecs":    func() Representation { return NewECS() },
	"store":  func() Representation { return NewStore() },
}

// Names returns the registered representation names, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns an empty representation by name.
func New(name string) (Representation, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown representation %q", name)
	}
	return ctor(), nil
}

// Params describes a comparison run.
type Params struct {
	Particles   int
	Frames      int // frames per repeat
	Repeats     int
	DT          float32
	ForceX      float32
	ForceY      float32
	StaticEvery int // every n-th particle is static (0 = none)
	Seed        int64
	Viewport    particles.Viewport
}

// DefaultParams is 10000 particles at dt=0.0016 with every tenth static.
func DefaultParams() Params {
	return Params{
		Particles:   10000,
		Frames:      100,
		Repeats:     5,
		DT:          0.0016,
		ForceY:      9.8,
		StaticEvery: 10,
		Seed:        1,
		Viewport:    particles.Viewport{Width: 1280, Height: 720},
	}
}

// Result is the outcome for one representation.
type Result struct {
	Representation       string  `csv:"representation"`
	Particles            int     `csv:"particles"`
	Frames               int     `csv:"frames"`
	Visible              int     `csv:"visible"`
	NsPerFrame           float64 `csv:"ns_per_frame"`
	NsPerFrameStd        float64 `csv:"ns_per_frame_std"`
	NsPerParticle        float64 `csv:"ns_per_particle"`
	HeapBytesPerParticle float64 `csv:"heap_bytes_per_particle"`
}

// LogValue implements slog.LogValuer.
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("representation", r.Representation),
		slog.Int("particles", r.Particles),
		slog.Int("visible", r.Visible),
		slog.Float64("ns_per_frame", r.NsPerFrame),
		slog.Float64("ns_per_particle", r.NsPerParticle),
		slog.Float64("heap_bytes_per_particle", r.HeapBytesPerParticle),
	)
}

// Specs generates n particles scattered over a region 20% larger than vp,
// so a share of them is culled.
func Specs(n int, seed int64, vp particles.Viewport, staticEvery int) []particles.Spec {
	rng := rand.New(rand.NewSource(seed))
	specs := make([]particles.Spec, n)
	for i := range specs {
		p := particles.DefaultSpec()
		p.X = vp.X - vp.Width*0.1 + rng.Float32()*vp.Width*1.2
		p.Y = vp.Y - vp.Height*0.1 + rng.Float32()*vp.Height*1.2
		p.VX = rng.Float32()*40 - 20
		p.VY = rng.Float32()*40 - 20
		p.Radius = 2 + rng.Float32()*8
		p.Fill = particles.RGBA(uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255)
		if staticEvery > 0 && i%staticEvery == 0 {
			p.Flags = particles.FlagStatic
		}
		specs[i] = p
	}
	return specs
}

func heapAlloc() uint64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

// Run loads rep with generated particles and times p.Repeats batches of
// p.Frames frames.
func Run(rep Representation, p Params) Result {
	if p.Frames < 1 {
		p.Frames = 1
	}
	if p.Repeats < 1 {
		p.Repeats = 1
	}
	specs := Specs(p.Particles, p.Seed, p.Viewport, p.StaticEvery)
	out := make([]uint32, p.Particles*particles.ProjectionWords)

	before := heapAlloc()
	rep.Load(specs)
	after := heapAlloc()

	samples := make([]float64, p.Repeats)
	visible := 0
	for r := range samples {
		start := time.Now()
		for f := 0; f < p.Frames; f++ {
			visible = rep.Frame(p.ForceX, p.ForceY, p.DT, p.Viewport, out)
		}
		samples[r] = float64(time.Since(start).Nanoseconds()) / float64(p.Frames)
	}
	runtime.KeepAlive(rep)

	mean, std := stat.MeanStdDev(samples, nil)
	if p.Repeats == 1 {
		std = 0
	}
	res := Result{
		Representation: rep.Name(),
		Particles:      p.Particles,
		Frames:         p.Frames * p.Repeats,
		Visible:        visible,
		NsPerFrame:     mean,
		NsPerFrameStd:  std,
	}
	if p.Particles > 0 {
		res.NsPerParticle = mean / float64(p.Particles)
		if after > before {
			res.HeapBytesPerParticle = float64(after-before) / float64(p.Particles)
		}
	}
	return res
}

// RunAll runs every named representation with the same parameters.
func RunAll(names []string, p Params) ([]Result, error) {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		rep, err := New(name)
		if err != nil {
			return nil, err
		}
		results = append(results, Run(rep, p))
	}
	return results, nil
}

// stage writes one projection record at out[cursor:].
func stage(out []uint32, cursor int, x, y, radius, strokeWidth float32, fill, stroke particles.Color) {
	rec := out[cursor : cursor+particles.ProjectionWords : cursor+particles.ProjectionWords]
	rec[0] = math.Float32bits(x)
	rec[1] = math.Float32bits(y)
	rec[2] = math.Float32bits(radius)
	rec[3] = math.Float32bits(strokeWidth)
	rec[4] = uint32(fill)
	rec[5] = uint32(stroke)
}
