package telemetry

import "testing"

func TestCollector_WindowTicks(t *testing.T) {
	c := NewCollector(1.0, 0.25)
	if c.WindowDurationTicks() != 4 {
		t.Fatalf("window ticks = %d, want 4", c.WindowDurationTicks())
	}
	if c.ShouldFlush(3) {
		t.Error("should not flush before window end")
	}
	if !c.ShouldFlush(4) {
		t.Error("should flush at window end")
	}

	if NewCollector(1, 0).WindowDurationTicks() != 1 {
		t.Error("zero dt should clamp window to one tick")
	}
}

func TestCollector_FlushAggregatesAndResets(t *testing.T) {
	c := NewCollector(1.0, 0.25)
	c.RecordSpawned(100)
	c.RecordSpawned(50)
	c.RecordDespawned(20)
	c.RecordStoreGrow()
	c.RecordStagingGrow()
	c.RecordStagingGrow()
	c.RecordFrame(3, 1)
	for _, v := range []int{10, 20, 30, 40} {
		c.SampleTick(v, v/10)
	}

	s := c.Flush(4, 130, 256)
	if s.Spawned != 150 || s.Despawned != 20 {
		t.Errorf("spawned/despawned = %d/%d, want 150/20", s.Spawned, s.Despawned)
	}
	if s.StoreGrows != 1 || s.StagingGrows != 2 {
		t.Errorf("grows = %d/%d, want 1/2", s.StoreGrows, s.StagingGrows)
	}
	if s.FramesSent != 3 || s.FramesDropped != 1 {
		t.Errorf("frames = %d/%d, want 3/1", s.FramesSent, s.FramesDropped)
	}
	if s.Live != 130 || s.Capacity != 256 {
		t.Errorf("live/capacity = %d/%d, want 130/256", s.Live, s.Capacity)
	}
	if s.VisibleMean != 25 || s.VisibleMax != 40 {
		t.Errorf("visible mean/max = %v/%v, want 25/40", s.VisibleMean, s.VisibleMax)
	}
	if s.LinesMean != 2.5 {
		t.Errorf("lines mean = %v, want 2.5", s.LinesMean)
	}
	if s.SimTimeSec != 1 {
		t.Errorf("sim time = %v, want 1", s.SimTimeSec)
	}

	next := c.Flush(8, 130, 256)
	if next.WindowStartTick != 4 {
		t.Errorf("next window start = %d, want 4", next.WindowStartTick)
	}
	if next.Spawned != 0 || next.StagingGrows != 0 || next.VisibleMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
