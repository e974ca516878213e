// Reduction orderings used to orient rewriting rules.
//
// A reduction ordering is a total, well-founded order on words that is
// translation invariant: u > v implies aub > avb for all words a and b.
// Every rule in the system is oriented so that its left-hand side is
// strictly greater than its right-hand side, which guarantees that
// rewriting terminates.

package knuthbendix

import "fmt"

// Ordering compares words under a reduction ordering.
//
// Implementations must be pure: deterministic, free of side effects, and
// safe to call concurrently. The engine calls Greater on every candidate
// equation to decide which side becomes the left-hand side of a rule.
type Ordering interface {
	// Greater reports whether u is strictly greater than v.
	Greater(u, v []byte) bool
}

// ShortLex is the default reduction ordering: longer words are greater,
// and words of equal length are compared letter by letter.
type ShortLex struct {
	rank [256]int
}

// NewShortLex returns the shortlex ordering derived from the natural byte
// order of letters.
func NewShortLex() *ShortLex {
	o := &ShortLex{}
	for i := range o.rank {
		o.rank[i] = i
	}
	return o
}

// NewShortLexOrder returns a shortlex ordering in which letters compare
// according to their position in letters: earlier letters are smaller.
// Letters absent from the argument compare greater than all present ones,
// in natural byte order among themselves.
func NewShortLexOrder(letters string) (*ShortLex, error) {
	o := &ShortLex{}
	for i := range o.rank {
		o.rank[i] = len(letters) + i
	}
	seen := [256]bool{}
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if seen[c] {
			return nil, fmt.Errorf("shortlex: duplicate letter %q in letter order", c)
		}
		seen[c] = true
		o.rank[c] = i
	}
	return o, nil
}

// Greater reports whether u is strictly greater than v under shortlex.
func (o *ShortLex) Greater(u, v []byte) bool {
	if len(u) != len(v) {
		return len(u) > len(v)
	}
	for i := range u {
		if u[i] != v[i] {
			return o.rank[u[i]] > o.rank[v[i]]
		}
	}
	return false
}
