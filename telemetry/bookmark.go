package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSettled    BookmarkType = "settled"
	BookmarkSaturated  BookmarkType = "saturated"
	BookmarkSpawnBurst BookmarkType = "spawn_burst"
)

// Bookmark represents an automatically triggered bookmark.
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

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	saturationThreshold float64
	burstMultiplier     float64

	// State tracking
	saturated bool // fill fraction was above threshold last window
	settled   bool // last window already reported settled
}

// NewBookmarkDetector creates a detector with the given history size and
// trigger thresholds.
func NewBookmarkDetector(historySize int, saturationThreshold, burstMultiplier float64) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful spawn mean
	}
	return &BookmarkDetector{
		history:             make([]WindowStats, historySize),
		historySize:         historySize,
		saturationThreshold: saturationThreshold,
		burstMultiplier:     burstMultiplier,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Settled: grains present and nothing moved for a whole window
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Saturated: fill fraction crossed the threshold
	if b := bd.checkSaturated(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Spawn burst: spawned cells well above the rolling mean
	if b := bd.checkSpawnBurst(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Update history
	bd.addToHistory(stats)

	return bookmarks
}

// Reset forgets history and edge-trigger state.
func (bd *BookmarkDetector) Reset() {
	bd.historyIdx = 0
	bd.historyFull = false
	bd.saturated = false
	bd.settled = false
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if !stats.AtRest() {
		bd.settled = false
		return nil
	}
	if bd.settled {
		return nil
	}
	bd.settled = true

	return &Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Pile of %d grains came to rest", stats.Occupied),
	}
}

func (bd *BookmarkDetector) checkSaturated(stats WindowStats) *Bookmark {
	above := bd.saturationThreshold > 0 && stats.FillFraction >= bd.saturationThreshold
	wasSaturated := bd.saturated
	bd.saturated = above
	if !above || wasSaturated {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkSaturated,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Grid %.0f%% full (threshold %.0f%%)", stats.FillFraction*100, bd.saturationThreshold*100),
	}
}

func (bd *BookmarkDetector) checkSpawnBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || bd.burstMultiplier <= 0 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Spawned
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Spawned) > avg*bd.burstMultiplier {
		return &Bookmark{
			Type:        BookmarkSpawnBurst,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Spawned %d cells, %.1fx average (%.1f)", stats.Spawned, float64(stats.Spawned)/avg, avg),
		}
	}

	return nil
}
