// Package race runs several interchangeable computations concurrently and
// keeps the first one to succeed, cancelling the rest. It is the internal
// engine behind racing differently configured Knuth-Bendix instances
// against each other.
package race

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrNoWinner is returned by First when every runner finishes without
// succeeding.
var ErrNoWinner = errors.New("race: no runner succeeded")

// errWon signals the errgroup to cancel the remaining runners. It never
// escapes First.
var errWon = errors.New("race: won")

// First runs every runner in its own goroutine and returns the index of
// the first to report success. The context passed to each runner is
// cancelled as soon as some other runner wins, so runners must treat
// cancellation as a normal stopping condition. If ctx itself is cancelled
// before any runner succeeds, First returns ctx.Err().
func First(ctx context.Context, runners ...func(context.Context) bool) (int, error) {
	if len(runners) == 0 {
		return 0, ErrNoWinner
	}
	g, gctx := errgroup.WithContext(ctx)
	var winner atomic.Int64
	winner.Store(-1)
	for i, run := range runners {
		i, run := i, run
		g.Go(func() error {
			if run(gctx) && winner.CompareAndSwap(-1, int64(i)) {
				return errWon
			}
			return nil
		})
	}
	err := g.Wait()
	if w := winner.Load(); w >= 0 {
		return int(w), nil
	}
	if err != nil && !errors.Is(err, errWon) {
		return 0, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	return 0, ErrNoWinner
}
