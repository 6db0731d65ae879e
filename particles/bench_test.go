package particles

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/blas/blas32"
)

const benchParticles = 10000

func benchStore() *Store {
	rng := rand.New(rand.NewSource(1))
	s := New(benchParticles)
	for i := 0; i < benchParticles; i++ {
		p := DefaultSpec()
		p.X = rng.Float32() * 1280
		p.Y = rng.Float32() * 720
		p.VX = rng.Float32()*40 - 20
		p.VY = rng.Float32()*40 - 20
		if i%10 == 0 {
			p.Flags = FlagStatic
		}
		s.Insert(p)
	}
	return s
}

// Benchmark the full integrate + cull + compact pass
func BenchmarkStoreUpdate(b *testing.B) {
	s := benchStore()
	staging := &testStaging{}
	vp := Viewport{Width: 1280, Height: 720}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s.Update(0.0016, vp, staging)
	}
}

// Benchmark force application over every slot
func BenchmarkStoreApplyForce(b *testing.B) {
	s := benchStore()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for slot := 0; slot < s.Len(); slot++ {
			s.ApplyForce(slot, 0, 9.8, 0.0016)
		}
	}
}

// Benchmark integration alone on parallel float slices with blas32, as a
// lower bound for the position update without culling or flags
func BenchmarkIntegrateBLAS(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x := make([]float32, benchParticles)
	vx := make([]float32, benchParticles)
	for i := range x {
		x[i] = rng.Float32() * 1280
		vx[i] = rng.Float32()*40 - 20
	}
	vX := blas32.Vector{N: benchParticles, Inc: 1, Data: x}
	vV := blas32.Vector{N: benchParticles, Inc: 1, Data: vx}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		blas32.Axpy(0.0016, vV, vX)
	}
}

// Benchmark swap-and-pop removal followed by reinsertion
func BenchmarkStoreRemoveInsert(b *testing.B) {
	s := benchStore()
	p := DefaultSpec()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		s.Remove(n % s.Len())
		s.Insert(p)
	}
}
