package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkCoverageMilestone BookmarkType = "coverage_milestone"
	BookmarkFullCoverage      BookmarkType = "full_coverage"
	BookmarkStall             BookmarkType = "stall"
)

// Coverage fractions reported as milestones, in ascending order.
var coverageMilestones = []float64{0.25, 0.5, 0.75}

// stallGain is the coverage gain over the history below which growth is
// considered stalled.
const stallGain = 0.001

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
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

// BookmarkDetector flags notable moments in a run: coverage milestones,
// reaching full coverage, and windows where coverage stops growing while area
// is still uncovered.
type BookmarkDetector struct {
	// Rolling coverage history (circular buffer)
	history     []float64
	historyIdx  int
	historyFull bool

	nextMilestone int
	fullReported  bool
	stalled       bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{history: make([]float64, historySize)}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for bd.nextMilestone < len(coverageMilestones) && stats.Coverage >= coverageMilestones[bd.nextMilestone] {
		m := coverageMilestones[bd.nextMilestone]
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkCoverageMilestone,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Coverage passed %.0f%% (%.1f%%)", m*100, stats.Coverage*100),
		})
		bd.nextMilestone++
	}

	if !bd.fullReported && stats.Coverage >= 1 {
		bd.fullReported = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFullCoverage,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Field fully covered with %d stains", stats.Stains),
		})
	}

	if b := bd.checkStall(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.history[bd.historyIdx] = stats.Coverage
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}

	return bookmarks
}

// checkStall triggers once when coverage has not grown over a full history,
// and re-arms when growth resumes.
func (bd *BookmarkDetector) checkStall(stats WindowStats) *Bookmark {
	if !bd.historyFull || stats.Coverage >= 1 {
		return nil
	}

	// Oldest entry is at historyIdx once the buffer is full
	oldest := bd.history[bd.historyIdx]
	gain := stats.Coverage - oldest
	if gain >= stallGain {
		bd.stalled = false
		return nil
	}
	if bd.stalled {
		return nil
	}
	bd.stalled = true
	return &Bookmark{
		Type:        BookmarkStall,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Coverage gained %.2f%% over %d windows at %.1f%%", gain*100, len(bd.history), stats.Coverage*100),
	}
}

// Reset forgets history and milestones.
func (bd *BookmarkDetector) Reset() {
	for i := range bd.history {
		bd.history[i] = 0
	}
	bd.historyIdx = 0
	bd.historyFull = false
	bd.nextMilestone = 0
	bd.fullReported = false
	bd.stalled = false
}
