package bench

import "github.com/pthm-cable/swarm/particles"

// Store runs the frame through particles.Store: ApplyForce per slot, then
// the fused integrate and compact pass of Update.
type Store struct {
	store *particles.Store
	dst   sliceStaging
}

// sliceStaging adapts the caller's output slice to particles.Staging.
type sliceStaging struct {
	words []uint32
}

func (s *sliceStaging) Cap() int        { return len(s.words) }
func (s *sliceStaging) Resize(n int)    { s.words = make([]uint32, n) }
func (s *sliceStaging) Words() []uint32 { return s.words }

// NewStore creates an empty store representation.
func NewStore() *Store { return &Store{store: particles.New(1)} }

func (s *Store) Name() string { return "store" }
func (s *Store) Len() int     { return s.store.Len() }

func (s *Store) Load(specs []particles.Spec) {
	s.store = particles.New(len(specs))
	for _, p := range specs {
		s.store.Insert(p)
	}
}

func (s *Store) Frame(fx, fy, dt float32, vp particles.Viewport, out []uint32) int {
	for slot := 0; slot < s.store.Len(); slot++ {
		s.store.ApplyForce(slot, fx, fy, dt)
	}
	s.dst.words = out
	n, _ := s.store.Update(dt, vp, &s.dst)
	if len(s.dst.words) != len(out) {
		// Update resized because out was smaller than a full frame.
		copy(out, s.dst.words[:min(len(out), n*particles.ProjectionWords)])
	}
	return n
}
