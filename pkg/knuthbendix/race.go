// Racing differently configured engines on one presentation.
//
// Which rewriter and which overlap policy finish first varies wildly
// between presentations, so when the choice is unclear the cheapest
// strategy is to run several configurations at once and keep whichever
// reaches confluence first. Each engine stays single-threaded; the race
// only adds one goroutine per engine.

package knuthbendix

import (
	"context"
	"fmt"

	"github.com/gitrdm/gosemigroups/internal/race"
)

// Race runs each engine's completion concurrently and returns the first
// one to reach confluence; the losers are cancelled and left in whatever
// sound partial state they reached. Every engine must have been built
// from the same presentation for the result to be meaningful, but that is
// not checked.
//
// Race returns an error if no engine reaches confluence, or ctx.Err() if
// the context is cancelled first.
func Race(ctx context.Context, engines ...*KnuthBendix) (*KnuthBendix, error) {
	if len(engines) == 0 {
		return nil, fmt.Errorf("knuthbendix: race needs at least one engine")
	}
	runners := make([]func(context.Context) bool, len(engines))
	for i, kb := range engines {
		runners[i] = func(ctx context.Context) bool {
			return kb.Run(ctx) == OutcomeConfluent
		}
	}
	w, err := race.First(ctx, runners...)
	if err != nil {
		return nil, err
	}
	return engines[w], nil
}
