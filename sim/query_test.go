package sim

import (
	"testing"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/particles"
)

func TestParticleAt(t *testing.T) {
	s := newTestSim(t, config.Defaults(), Options{Seed: 1})
	tr := s.Tracker()

	at := func(x, y, r float32) particles.Handle {
		p := particles.DefaultSpec()
		p.X, p.Y, p.Radius = x, y, r
		return tr.Insert(p)
	}
	a := at(100, 100, 5)
	b := at(108, 100, 5)
	at(300, 300, 2)

	tests := []struct {
		name   string
		x, y   float32
		slop   float32
		want   particles.Handle
		wantOK bool
	}{
		{"center of a", 100, 100, 0, a, true},
		{"overlap picks closer", 105, 100, 0, b, true},
		{"empty space", 200, 200, 0, particles.Handle{}, false},
		{"slop reaches", 300, 305, 4, tr.Handles()[2], true},
		{"slop too small", 300, 305, 2, particles.Handle{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.ParticleAt(tt.x, tt.y, tt.slop)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParticleAt(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
