package systems

import "github.com/pthm-cable/swarm/particles"

// ForceParams holds the global force field settings.
type ForceParams struct {
	GravityX, GravityY float32
	AttractorStrength  float32
	AttractorRadius    float32
}

// Forces applies gravity, an optional point attractor and optional wind to
// every live particle. Static particles are skipped by the store itself.
type Forces struct {
	params  ForceParams
	wind    *Wind
	attract bool
	ax, ay  float32
	elapsed float32
}

// NewForces creates a force system. wind may be nil.
func NewForces(params ForceParams, wind *Wind) *Forces {
	return &Forces{params: params, wind: wind}
}

// Params returns the current settings.
func (f *Forces) Params() ForceParams { return f.params }

// SetParams replaces the settings.
func (f *Forces) SetParams(p ForceParams) { f.params = p }

// SetAttractor enables the attractor at (x, y).
func (f *Forces) SetAttractor(x, y float32) {
	f.attract = true
	f.ax, f.ay = x, y
}

// ClearAttractor disables the attractor.
func (f *Forces) ClearAttractor() { f.attract = false }

// Attractor reports the attractor position and whether it is active.
func (f *Forces) Attractor() (x, y float32, active bool) {
	return f.ax, f.ay, f.attract
}

// Update applies one step of forces over dt.
func (f *Forces) Update(st *particles.Store, dt float32) {
	f.elapsed += dt
	gx, gy := f.params.GravityX, f.params.GravityY
	pull := f.attract && f.params.AttractorStrength != 0 && f.params.AttractorRadius > 0
	radiusSq := f.params.AttractorRadius * f.params.AttractorRadius

	for slot := 0; slot < st.Len(); slot++ {
		fx, fy := gx, gy

		if pull || f.wind != nil {
			x, y := st.Position(slot)
			if pull {
				ax, ay := f.attraction(x, y, radiusSq, st.Mass(slot))
				fx += ax
				fy += ay
			}
			if f.wind != nil {
				wx, wy := f.wind.Sample(x, y, f.elapsed)
				fx += wx
				fy += wy
			}
		}

		if fx == 0 && fy == 0 {
			continue
		}
		st.ApplyForce(slot, fx, fy, dt)
	}
}

// attraction returns the acceleration toward the attractor. Strength falls
// off linearly to zero at the radius and is divided by mass.
func (f *Forces) attraction(x, y, radiusSq, mass float32) (float32, float32) {
	d2 := distanceSq(f.ax, f.ay, x, y)
	if d2 >= radiusSq || d2 == 0 {
		return 0, 0
	}
	d := sqrtf(d2)
	falloff := 1 - d/f.params.AttractorRadius
	if mass <= 0 {
		mass = 1
	}
	k := f.params.AttractorStrength * falloff / (mass * d)
	return (f.ax - x) * k, (f.ay - y) * k
}
