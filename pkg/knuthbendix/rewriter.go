// Shared machinery for the two rewriting strategies.
//
// A rewriter reduces words to normal form with respect to the current
// active rule set and decides local confluence. The base holds everything
// that does not depend on the indexing strategy: the pending stack of
// candidate rules, the cached confluence verdict, and the admission logic
// that keeps the active set reduced (no rule's left-hand side occurs
// inside another active rule).

package knuthbendix

import (
	"bytes"
	"context"
	"sync/atomic"
)

// rewriter is the strategy interface shared by RewriteFromLeft and
// RewriteTrie. Words are rewritten in place: rewrite receives a mutable
// byte slice and returns the (shorter or equal) reduced slice. Rules are
// length non-increasing under shortlex, so reduction never grows a word.
type rewriter interface {
	rewrite(u []byte) []byte
	confluent(ctx context.Context) bool
	processPendingRules() bool
	addRule(r *Rule)
	makeActiveRulePending(r *Rule) *Rule
	initRewriter()
	base() *rewriterBase
}

// tril mirrors a three-valued confluence verdict: true, false, or unknown.
type tril int8

const (
	trilUnknown tril = iota
	trilTrue
	trilFalse
)

type rewriterBase struct {
	*rules
	ord     Ordering
	pending []*Rule

	maxPendingDepth int

	// The verdict cache is written by the engine goroutine only, but reads
	// may race with the reporting goroutine's snapshots, hence atomics.
	cachedConfluent atomic.Bool
	confluenceKnown atomic.Bool
}

func newRewriterBase(ord Ordering) rewriterBase {
	return rewriterBase{rules: newRules(), ord: ord}
}

func (b *rewriterBase) base() *rewriterBase { return b }

func (b *rewriterBase) setCachedConfluent(v tril) {
	switch v {
	case trilTrue:
		b.confluenceKnown.Store(true)
		b.cachedConfluent.Store(true)
	case trilFalse:
		b.confluenceKnown.Store(true)
		b.cachedConfluent.Store(false)
	default:
		b.confluenceKnown.Store(false)
	}
}

func (b *rewriterBase) numPending() int { return len(b.pending) }

// addPendingRule pushes a candidate rule unless it is trivial; trivial
// candidates go straight back to the pool and only count towards the total.
// Reports whether the rule was actually queued.
func (b *rewriterBase) addPendingRule(r *Rule) bool {
	if r.active {
		panic("knuthbendix: internal error: pending rule is active")
	}
	if r.trivial() {
		b.addInactiveRule(r)
		return false
	}
	b.pending = append(b.pending, r)
	if len(b.pending) > b.maxPendingDepth {
		b.maxPendingDepth = len(b.pending)
	}
	b.counters.pending.Store(int64(len(b.pending)))
	return true
}

func (b *rewriterBase) nextPendingRule() *Rule {
	n := len(b.pending)
	r := b.pending[n-1]
	b.pending = b.pending[:n-1]
	b.counters.pending.Store(int64(len(b.pending)))
	return r
}

// rewriteRule reduces both sides of a (non-active) rule and reorients it.
func (b *rewriterBase) rewriteRule(impl rewriter, r *Rule) {
	r.lhs = impl.rewrite(r.lhs)
	r.rhs = impl.rewrite(r.rhs)
	r.reorder(b.ord)
}

// processPending drains the pending stack. Each candidate is rewritten to
// normal form; if it survives as a non-trivial equation it is admitted as
// an active rule, and every active rule whose left- or right-hand side
// contains the new left-hand side is deactivated and re-queued for
// re-processing. Reports whether any rule was added.
//
// The stack never grows without bound here: every re-queued rule was
// active, and admission strictly decreases the multiset of rule left-hand
// sides under the reduction ordering.
func (b *rewriterBase) processPending(impl rewriter) bool {
	added := false
	for len(b.pending) > 0 {
		rule1 := b.nextPendingRule()
		b.rewriteRule(impl, rule1)

		if rule1.trivial() {
			b.addInactiveRule(rule1)
			continue
		}
		lhs := rule1.lhs
		for r2 := b.begin(); r2 != b.end(); {
			if bytes.Contains(r2.lhs, lhs) || bytes.Contains(r2.rhs, lhs) {
				r2 = impl.makeActiveRulePending(r2)
			} else {
				r2 = r2.next
			}
		}
		impl.addRule(rule1)
		added = true
	}
	return added
}

// reduce re-queues a copy of every active rule and drains the stack, so
// that afterwards every rule is fully reduced with respect to the others.
func (b *rewriterBase) reduce(impl rewriter) {
	for r := b.begin(); r != b.end(); r = r.next {
		if b.addPendingRule(b.copyRule(r)) {
			impl.processPendingRules()
		}
	}
}

// confluentCached handles the cheap paths of a confluence query: a pending
// candidate means "not confluent (yet)", and an unchanged rule set keeps
// its cached verdict.
func (b *rewriterBase) confluentCached() (verdict, done bool) {
	if len(b.pending) != 0 {
		b.setCachedConfluent(trilUnknown)
		return false, true
	}
	if b.confluenceKnown.Load() {
		return b.cachedConfluent.Load(), true
	}
	return false, false
}

// initBase recycles pending rules into the pool and clears the cache.
func (b *rewriterBase) initBase() {
	b.initRules()
	for _, r := range b.pending {
		b.addInactiveRule(r)
	}
	b.pending = b.pending[:0]
	b.counters.pending.Store(0)
	b.maxPendingDepth = 0
	b.setCachedConfluent(trilUnknown)
}

// commonPrefixLen returns the length of the longest common prefix of u
// and v.
func commonPrefixLen(u, v []byte) int {
	n := min(len(u), len(v))
	for i := 0; i < n; i++ {
		if u[i] != v[i] {
			return i
		}
	}
	return n
}
