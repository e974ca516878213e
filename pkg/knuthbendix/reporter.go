// Progress reporting for long-running completion.
//
// The engine itself is single-threaded; the only concurrency in the
// package is the companion ticker goroutine started by Run when a
// reporter is installed. It reads nothing but the atomic counters and the
// atomic state word, so it never synchronizes with the completion loop.

package knuthbendix

import (
	"context"
	"log/slog"
	"time"
)

// Snapshot is a point-in-time view of a running (or finished) engine.
type Snapshot struct {
	Active   int
	Inactive int
	Pending  int
	Total    uint64
	State    State
	Elapsed  time.Duration
}

// Reporter receives progress snapshots during Run. Report is called from
// a goroutine other than the engine's; implementations must be safe for
// that, but never see more than one call at a time.
type Reporter interface {
	Report(Snapshot)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Snapshot)

func (f ReporterFunc) Report(s Snapshot) { f(s) }

// NewSlogReporter returns a Reporter that logs each snapshot at info
// level on l.
func NewSlogReporter(l *slog.Logger) Reporter {
	return ReporterFunc(func(s Snapshot) {
		l.Info("knuth-bendix progress",
			"state", s.State.String(),
			"active", s.Active,
			"inactive", s.Inactive,
			"pending", s.Pending,
			"total", s.Total,
			"elapsed", s.Elapsed)
	})
}

func (kb *KnuthBendix) snapshot() Snapshot {
	return Snapshot{
		Active:   kb.NumActiveRules(),
		Inactive: kb.NumInactiveRules(),
		Pending:  kb.NumPendingRules(),
		Total:    kb.TotalRules(),
		State:    kb.State(),
		Elapsed:  time.Since(kb.started),
	}
}

// startReporting launches the ticker goroutine if a reporter is
// installed. The returned stop function waits for the goroutine to exit
// and then delivers one final snapshot, so every Run produces at least
// one report.
func (kb *KnuthBendix) startReporting(ctx context.Context) func() {
	if kb.reporter == nil {
		return func() {}
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(kb.reportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				kb.reporter.Report(kb.snapshot())
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()
	return func() {
		close(stop)
		<-done
		kb.reporter.Report(kb.snapshot())
	}
}
