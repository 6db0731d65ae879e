package systems

import (
	"testing"

	"github.com/pthm-cable/swarm/particles"
)

func TestDespawn_RemovesOutside(t *testing.T) {
	st := particles.New(8)
	for _, x := range []float32{50, 200, -50, 105, 50, -11} {
		p := particles.DefaultSpec()
		p.X, p.Y = x, 50
		st.Insert(p)
	}

	d := NewDespawn(Bounds{Width: 100, Height: 100}, 10)
	if n := d.Update(particles.NewTracker(st)); n != 3 {
		t.Errorf("removed %d, want 3", n)
	}
	if st.Len() != 3 {
		t.Fatalf("len = %d, want 3", st.Len())
	}
	for i := 0; i < st.Len(); i++ {
		if x, _ := st.Position(i); x < -10 || x > 110 {
			t.Errorf("slot %d at x=%v survived despawn", i, x)
		}
	}
	if d.Removed() != 3 {
		t.Errorf("Removed() = %d, want 3", d.Removed())
	}
}

func TestDespawn_AllOutside(t *testing.T) {
	st := particles.New(4)
	for i := 0; i < 4; i++ {
		p := particles.DefaultSpec()
		p.X = 1000
		st.Insert(p)
	}
	NewDespawn(Bounds{Width: 10, Height: 10}, 0).Update(particles.NewTracker(st))
	if st.Len() != 0 {
		t.Errorf("len = %d, want 0", st.Len())
	}
}

func TestDespawn_NegativeMarginClamped(t *testing.T) {
	d := NewDespawn(Bounds{Width: 10, Height: 10}, -5)
	if d.Margin != 0 {
		t.Errorf("margin = %v, want 0", d.Margin)
	}
}

func TestDespawn_LinksFollowMovedParticle(t *testing.T) {
	st := particles.New(4)
	for _, x := range []float32{500, 50, 60} {
		p := particles.DefaultSpec()
		p.X = x
		st.Insert(p)
	}
	st.SetLink(1, 2)

	tr := particles.NewTracker(st)
	tr.SetLinkRepair(true)
	NewDespawn(Bounds{Width: 100, Height: 100}, 0).Update(tr)

	if st.Len() != 2 {
		t.Fatalf("len = %d, want 2", st.Len())
	}
	if x, _ := st.Position(0); x != 60 {
		t.Fatalf("slot 0 x = %v, want the moved particle at 60", x)
	}
	if got := st.Link(1); got != 0 {
		t.Errorf("link = %d, want 0 after its target moved", got)
	}
}
