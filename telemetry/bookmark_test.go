package telemetry

import "testing"

func countType(bms []Bookmark, typ BookmarkType) int {
	n := 0
	for _, b := range bms {
		if b.Type == typ {
			n++
		}
	}
	return n
}

func TestBookmarkDetector_Milestones(t *testing.T) {
	bd := NewBookmarkDetector(5)

	if bms := bd.Check(WindowStats{WindowEndTick: 100, Coverage: 0.1}); len(bms) != 0 {
		t.Errorf("expected no bookmarks at 10%% coverage, got %v", bms)
	}

	// Jumping past two milestones reports both
	bms := bd.Check(WindowStats{WindowEndTick: 200, Coverage: 0.6})
	if n := countType(bms, BookmarkCoverageMilestone); n != 2 {
		t.Errorf("expected 2 milestones, got %d", n)
	}

	bms = bd.Check(WindowStats{WindowEndTick: 300, Coverage: 0.65})
	if n := countType(bms, BookmarkCoverageMilestone); n != 0 {
		t.Errorf("expected milestones to trigger once, got %d", n)
	}

	bms = bd.Check(WindowStats{WindowEndTick: 400, Coverage: 1, Stains: 7})
	if countType(bms, BookmarkCoverageMilestone) != 1 || countType(bms, BookmarkFullCoverage) != 1 {
		t.Errorf("expected 75%% milestone and full coverage, got %v", bms)
	}
	if bms := bd.Check(WindowStats{WindowEndTick: 500, Coverage: 1}); countType(bms, BookmarkFullCoverage) != 0 {
		t.Error("expected full coverage to trigger once")
	}
}

func TestBookmarkDetector_Stall(t *testing.T) {
	bd := NewBookmarkDetector(3)

	var stalls int
	for i := 0; i < 10; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: i * 100, Coverage: 0.2})
		stalls += countType(bms, BookmarkStall)
	}
	if stalls != 1 {
		t.Errorf("expected one stall bookmark, got %d", stalls)
	}

	// Growth re-arms the detector
	bd.Check(WindowStats{WindowEndTick: 1100, Coverage: 0.3})
	stalls = 0
	for i := 0; i < 5; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: 1200 + i*100, Coverage: 0.3})
		stalls += countType(bms, BookmarkStall)
	}
	if stalls != 1 {
		t.Errorf("expected stall to re-trigger after growth, got %d", stalls)
	}
}

func TestBookmarkDetector_Reset(t *testing.T) {
	bd := NewBookmarkDetector(5)
	bd.Check(WindowStats{Coverage: 0.9})
	bd.Reset()

	bms := bd.Check(WindowStats{Coverage: 0.3})
	if countType(bms, BookmarkCoverageMilestone) != 1 {
		t.Errorf("expected milestones to re-arm after reset, got %v", bms)
	}
}
