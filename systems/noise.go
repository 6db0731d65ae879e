package systems

import (
	"math"
	"math/rand"
)

// Wind is a time-varying 2D force field built from gradient noise. Two
// decorrelated noise channels give the x and y components.
type Wind struct {
	perm     [512]int
	Strength float32 // peak force per axis
	Scale    float32 // world units per noise cell
	Speed    float32 // noise cells per second along the time axis
}

// NewWind creates a wind field with a permutation table shuffled from seed.
func NewWind(seed int64, strength, scale, speed float32) *Wind {
	w := &Wind{Strength: strength, Scale: scale, Speed: speed}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	for i := 0; i < 256; i++ {
		w.perm[i] = perm[i]
		w.perm[i+256] = perm[i]
	}
	return w
}

// Sample returns the wind force at world position (x, y) and time t.
func (w *Wind) Sample(x, y, t float32) (fx, fy float32) {
	if w == nil || w.Strength == 0 || w.Scale <= 0 {
		return 0, 0
	}
	nx := float64(x / w.Scale)
	ny := float64(y / w.Scale)
	nt := float64(t * w.Speed)
	fx = float32(w.noise(nx, ny, nt)) * w.Strength
	// Offset the second channel so it does not mirror the first.
	fy = float32(w.noise(nx+31.7, ny+17.3, nt)) * w.Strength
	return fx, fy
}

// noise is 3D gradient noise in roughly [-1, 1].
func (w *Wind) noise(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	u, v, s := fade(x), fade(y), fade(z)
	p := &w.perm

	a := p[xi] + yi
	aa, ab := p[a]+zi, p[a+1]+zi
	b := p[xi+1] + yi
	ba, bb := p[b]+zi, p[b+1]+zi

	near := lerp(v,
		lerp(u, grad(p[aa], x, y, z), grad(p[ba], x-1, y, z)),
		lerp(u, grad(p[ab], x, y-1, z), grad(p[bb], x-1, y-1, z)))
	far := lerp(v,
		lerp(u, grad(p[aa+1], x, y, z-1), grad(p[ba+1], x-1, y, z-1)),
		lerp(u, grad(p[ab+1], x, y-1, z-1), grad(p[bb+1], x-1, y-1, z-1)))
	return lerp(s, near, far)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
