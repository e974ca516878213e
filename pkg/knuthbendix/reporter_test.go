package knuthbendix

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReporterFinalSnapshot(t *testing.T) {
	var (
		mu        sync.Mutex
		snapshots []Snapshot
	)
	rep := ReporterFunc(func(s Snapshot) {
		mu.Lock()
		snapshots = append(snapshots, s)
		mu.Unlock()
	})

	p, ok := LookupPresentation("sym-3")
	require.True(t, ok)
	kb, err := New(&p, WithReporter(rep, time.Hour))
	require.NoError(t, err)
	require.Equal(t, OutcomeConfluent, kb.Run(context.Background()))

	// With an hour-long interval the ticker never fires, but the stop
	// path still delivers exactly one snapshot.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, snapshots, 1)
	final := snapshots[0]
	require.Equal(t, kb.NumActiveRules(), final.Active)
	require.Zero(t, final.Pending)
	require.Equal(t, StateIdle, final.State)
	require.Equal(t, kb.TotalRules(), final.Total)
	require.Positive(t, final.Elapsed)
}

func TestReporterPeriodicSnapshots(t *testing.T) {
	var count atomic.Int32
	rep := ReporterFunc(func(Snapshot) { count.Add(1) })

	p, ok := LookupPresentation("commuting")
	require.True(t, ok)
	kb, err := New(&p, WithReporter(rep, time.Millisecond))
	require.NoError(t, err)

	// Drive the ticker goroutine directly; a real run on this
	// presentation finishes before the first tick.
	kb.started = time.Now()
	stop := kb.startReporting(context.Background())
	require.Eventually(t, func() bool { return count.Load() >= 2 },
		time.Second, time.Millisecond)
	stop()
}

func TestReporterIntervalValidation(t *testing.T) {
	p, ok := LookupPresentation("commuting")
	require.True(t, ok)
	_, err := New(&p, WithReporter(ReporterFunc(func(Snapshot) {}), 0))
	require.Error(t, err)
}

func TestSlogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	NewSlogReporter(logger).Report(Snapshot{
		Active:  3,
		Pending: 1,
		State:   StateCheckingConfluence,
		Elapsed: time.Second,
	})

	out := buf.String()
	require.Contains(t, out, "knuth-bendix progress")
	require.Contains(t, out, "active=3")
	require.Contains(t, out, "pending=1")
	require.Contains(t, out, "checking confluence")
}
