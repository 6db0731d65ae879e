package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkStoreGrow       BookmarkType = "store_grow"
	BookmarkStagingThrash   BookmarkType = "staging_thrash"
	BookmarkPopulationCrash BookmarkType = "population_crash"
	BookmarkVisibilitySpike BookmarkType = "visibility_spike"
	BookmarkSteadyState     BookmarkType = "steady_state"
)

// Bookmark marks a window worth a second look.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for notable changes.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentLivePeak     int
	steadyWindowsCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // steady state needs four windows plus the current one
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	add(bd.checkStoreGrow(stats))
	add(bd.checkStagingThrash(stats))
	if bd.historyFull || bd.historyIdx > 0 {
		add(bd.checkPopulationCrash(stats))
		add(bd.checkVisibilitySpike(stats))
		add(bd.checkSteadyState(stats))
	}

	bd.addToHistory(stats)
	if stats.Live > bd.recentLivePeak {
		bd.recentLivePeak = stats.Live
	}
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = bd.historySize
	}
	if n > size {
		n = size
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkStoreGrow(stats WindowStats) *Bookmark {
	if stats.StoreGrows == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStoreGrow,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Store grew %d times to capacity %d", stats.StoreGrows, stats.Capacity),
	}
}

func (bd *BookmarkDetector) checkStagingThrash(stats WindowStats) *Bookmark {
	if stats.StagingGrows < 2 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkStagingThrash,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Staging buffer reallocated %d times in one window", stats.StagingGrows),
	}
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentLivePeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Live)/float64(bd.recentLivePeak)
	if drop > 0.30 && stats.Live < bd.recentLivePeak-10 {
		oldPeak := bd.recentLivePeak
		bd.recentLivePeak = stats.Live
		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Live particles fell %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Live),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkVisibilitySpike(stats WindowStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	means := make([]float64, len(history))
	for i, h := range history {
		means[i] = h.VisibleMean
	}
	avg := stat.Mean(means, nil)
	if avg == 0 {
		return nil
	}

	if stats.VisibleMean > avg*2 && stats.VisibleMean >= 10 {
		return &Bookmark{
			Type:        BookmarkVisibilitySpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Visible mean %.0f is %.1fx average (%.0f)", stats.VisibleMean, stats.VisibleMean/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSteadyState(stats WindowStats) *Bookmark {
	if stats.Live < 10 {
		bd.steadyWindowsCount = 0
		return nil
	}

	history := bd.recent(4)
	if len(history) < 4 {
		return nil
	}

	live := make([]float64, len(history))
	for i, h := range history {
		live[i] = float64(h.Live)
	}
	mean, variance := stat.PopMeanVariance(live, nil)

	// CV^2 < 0.04 means CV < 0.2
	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.steadyWindowsCount++
	} else {
		bd.steadyWindowsCount = 0
	}

	if bd.steadyWindowsCount == 5 { // trigger exactly once per steady run
		return &Bookmark{
			Type:        BookmarkSteadyState,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Steady population of about %d particles over 5+ windows", stats.Live),
		}
	}
	return nil
}
