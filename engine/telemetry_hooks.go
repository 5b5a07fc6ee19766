package engine

import (
	"log/slog"

	"github.com/pthm-cable/rust/telemetry"
)

// flushTelemetry emits window stats when the current window is complete.
func (e *Engine) flushTelemetry() {
	if !e.collector.ShouldFlush(e.tick) {
		return
	}
	e.emitStats()
}

// emitStats closes the current window and routes the stats and any bookmarks
// to the callback, the log and the CSV output.
func (e *Engine) emitStats() {
	fieldStats := telemetry.ComputeFieldStats(e.field.Data(), e.field.CoverThreshold())
	stats := e.collector.Flush(e.tick, fieldStats, e.Census())
	perfStats := e.perfCollector.Stats()

	if e.statsCallback != nil {
		e.statsCallback(stats)
	}

	if e.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if e.outputManager != nil {
		if err := e.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := e.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range e.bookmarks.Check(stats) {
		if e.logStats {
			bm.LogBookmark()
		}
		if err := e.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
