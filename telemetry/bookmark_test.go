package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, b := range bookmarks {
		if b.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_StoreGrowAndThrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	got := bd.Check(WindowStats{WindowEndTick: 600, StoreGrows: 2, Capacity: 512, StagingGrows: 3})
	if !hasBookmark(got, BookmarkStoreGrow) {
		t.Error("expected store_grow bookmark")
	}
	if !hasBookmark(got, BookmarkStagingThrash) {
		t.Error("expected staging_thrash bookmark")
	}

	got = bd.Check(WindowStats{WindowEndTick: 1200, StagingGrows: 1})
	if len(got) != 0 {
		t.Errorf("unexpected bookmarks %v", got)
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Live: 1000})
	}

	got := bd.Check(WindowStats{WindowEndTick: 3000, Live: 500})
	if !hasBookmark(got, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}

	// Peak was reset, so a further small dip does not retrigger.
	got = bd.Check(WindowStats{WindowEndTick: 3600, Live: 480})
	if hasBookmark(got, BookmarkPopulationCrash) {
		t.Error("crash should not retrigger right after reset")
	}
}

func TestBookmarkDetector_VisibilitySpike(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), VisibleMean: 100})
	}
	got := bd.Check(WindowStats{WindowEndTick: 3000, VisibleMean: 300})
	if !hasBookmark(got, BookmarkVisibilitySpike) {
		t.Error("expected visibility_spike bookmark")
	}
}

func TestBookmarkDetector_SteadyStateOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	fired := 0
	for i := 0; i < 12; i++ {
		got := bd.Check(WindowStats{WindowEndTick: int32(i * 600), Live: 1000 + i%2})
		if hasBookmark(got, BookmarkSteadyState) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("steady_state fired %d times, want 1", fired)
	}
}
