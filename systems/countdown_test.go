package systems

import "testing"

func TestCountdown_FiresAtDelay(t *testing.T) {
	c := NewCountdown()
	fired := 0
	action := func() { fired++ }

	if c.Tick("a", 0.125, 0.25, action) {
		t.Fatal("fired before delay")
	}
	if !c.Tick("a", 0.125, 0.25, action) {
		t.Fatal("did not fire at delay")
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if got := c.Elapsed("a"); got != 0 {
		t.Errorf("elapsed after firing = %v, want 0", got)
	}
}

func TestCountdown_IndependentTimers(t *testing.T) {
	c := NewCountdown()
	c.Tick("a", 0.5, 1, nil)
	c.Tick("b", 0.25, 1, nil)
	if c.Elapsed("a") != 0.5 || c.Elapsed("b") != 0.25 {
		t.Errorf("elapsed = (%v, %v), want (0.5, 0.25)", c.Elapsed("a"), c.Elapsed("b"))
	}
	c.Reset("a")
	if c.Elapsed("a") != 0 {
		t.Errorf("elapsed after reset = %v, want 0", c.Elapsed("a"))
	}
}

func TestCountdown_ZeroDelayFiresEveryTick(t *testing.T) {
	c := NewCountdown()
	for i := 0; i < 3; i++ {
		if !c.Tick("z", 0, 0, nil) {
			t.Fatalf("tick %d did not fire", i)
		}
	}
}
