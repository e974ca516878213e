// The rule store: lifecycle management for rewriting rules.
//
// Every rule is owned by exactly one of three containers at any moment:
// the active list (the rules that currently define the rewriting system),
// the inactive pool (deactivated rules kept for reuse, so that the
// create/retire churn of completion does not allocate), or the pending
// stack managed by the rewriter base. Moving a rule between containers is
// a transfer of ownership, never a copy.
//
// The active list is an intrusive doubly-linked list with a sentinel, so
// that the two persistent cursors the completion driver keeps into it
// survive insertion and removal at arbitrary positions: removing the rule
// a cursor points at redirects the cursor to the removed rule's successor.

package knuthbendix

import (
	"math"
	"sync/atomic"
)

// Rule is an oriented rewriting rule lhs -> rhs. For every rule admitted to
// the active set, lhs is strictly greater than rhs under the engine's
// reduction ordering, and lhs never equals rhs.
//
// The id is a creation-order counter: rules admitted earlier have smaller
// ids. When a pooled rule is reused it receives a fresh id, so an id also
// serves as a validity token for code holding rule pointers across
// mutations of the rule set.
type Rule struct {
	lhs    []byte
	rhs    []byte
	id     uint64
	active bool

	prev, next *Rule // intrusive links; non-nil only while in the active list
}

// reorder swaps the two sides if the right-hand side is greater under ord.
func (r *Rule) reorder(ord Ordering) {
	if ord.Greater(r.rhs, r.lhs) {
		r.lhs, r.rhs = r.rhs, r.lhs
	}
}

func (r *Rule) trivial() bool {
	return string(r.lhs) == string(r.rhs)
}

// ruleList is a circular doubly-linked list of rules with a sentinel root.
// The sentinel doubles as the end position for cursors.
type ruleList struct {
	root Rule
	size int
}

func (l *ruleList) initList() {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.size = 0
}

func (l *ruleList) end() *Rule   { return &l.root }
func (l *ruleList) front() *Rule { return l.root.next }
func (l *ruleList) back() *Rule  { return l.root.prev }

func (l *ruleList) pushBack(r *Rule) {
	at := l.root.prev
	r.prev = at
	r.next = &l.root
	at.next = r
	l.root.prev = r
	l.size++
}

// remove unlinks r and returns its successor.
func (l *ruleList) remove(r *Rule) *Rule {
	next := r.next
	r.prev.next = r.next
	r.next.prev = r.prev
	r.prev = nil
	r.next = nil
	l.size--
	return next
}

// ruleStats are the running statistics maintained by the store. They are
// read by the completion driver (fast-reject thresholds) and surfaced in
// progress snapshots.
type ruleStats struct {
	maxWordLength  int
	maxActiveRules int
	minLHSLength   int
	totalRules     uint64
}

func (s *ruleStats) initStats() {
	s.maxWordLength = 0
	s.maxActiveRules = 0
	s.minLHSLength = math.MaxInt
	s.totalRules = 0
}

// statCounters mirror the container sizes as atomics so that a companion
// reporting goroutine can snapshot them without synchronizing with the
// single-threaded engine. All writes happen on the engine's goroutine.
type statCounters struct {
	active   atomic.Int64
	inactive atomic.Int64
	pending  atomic.Int64
	total    atomic.Uint64
}

// rules owns the active list and the inactive pool, the two persistent
// cursors into the active list, and the statistics.
type rules struct {
	active   ruleList
	inactive []*Rule
	cursors  [2]*Rule
	stats    ruleStats
	counters statCounters
}

func newRules() *rules {
	rs := &rules{}
	rs.active.initList()
	rs.stats.initStats()
	rs.cursors[0] = rs.active.end()
	rs.cursors[1] = rs.active.end()
	return rs
}

func (rs *rules) begin() *Rule { return rs.active.front() }
func (rs *rules) end() *Rule   { return rs.active.end() }

func (rs *rules) numActive() int   { return rs.active.size }
func (rs *rules) numInactive() int { return len(rs.inactive) }

// newRule returns a fresh or pooled rule with empty sides and a new id.
// The rule is not active and belongs to the caller until handed to
// addActiveRule, addInactiveRule or the pending stack.
func (rs *rules) newRule() *Rule {
	rs.stats.totalRules++
	rs.counters.total.Store(rs.stats.totalRules)
	var r *Rule
	if n := len(rs.inactive); n > 0 {
		r = rs.inactive[n-1]
		rs.inactive = rs.inactive[:n-1]
		rs.counters.inactive.Store(int64(len(rs.inactive)))
		r.lhs = r.lhs[:0]
		r.rhs = r.rhs[:0]
	} else {
		r = &Rule{}
	}
	r.id = rs.stats.totalRules
	r.active = false
	return r
}

// newRuleWith returns a new rule holding copies of lhs and rhs, without
// orienting them. Overlap resolution relies on this: candidate equations
// are oriented only after both sides have been rewritten.
func (rs *rules) newRuleWith(lhs, rhs []byte) *Rule {
	r := rs.newRule()
	r.lhs = append(r.lhs, lhs...)
	r.rhs = append(r.rhs, rhs...)
	return r
}

// copyRule duplicates a rule's sides into a freshly obtained rule.
func (rs *rules) copyRule(r *Rule) *Rule {
	return rs.newRuleWith(r.lhs, r.rhs)
}

// addActiveRule activates r and appends it to the active list, updating
// statistics and cursor positions. Precondition: lhs != rhs.
func (rs *rules) addActiveRule(r *Rule) {
	if r.trivial() {
		panic("knuthbendix: internal error: activating a trivial rule")
	}
	if len(r.lhs) > rs.stats.maxWordLength {
		rs.stats.maxWordLength = len(r.lhs)
	}
	if rs.active.size > rs.stats.maxActiveRules {
		rs.stats.maxActiveRules = rs.active.size
	}
	r.active = true
	rs.active.pushBack(r)
	// A cursor parked at the end position follows the insertion, exactly
	// as the completion loop expects when it resumes an overlap scan.
	for i := range rs.cursors {
		if rs.cursors[i] == rs.active.end() {
			rs.cursors[i] = rs.active.back()
		}
	}
	if len(r.lhs) < rs.stats.minLHSLength {
		rs.stats.minLHSLength = len(r.lhs)
	}
	rs.counters.active.Store(int64(rs.active.size))
}

// addInactiveRule deactivates r into the pool.
func (rs *rules) addInactiveRule(r *Rule) {
	r.active = false
	rs.inactive = append(rs.inactive, r)
	rs.counters.inactive.Store(int64(len(rs.inactive)))
}

// eraseFromActive deactivates r, unlinks it from the active list, and
// returns its successor. Either persistent cursor pointing at r is
// redirected to that successor. Ownership of r passes back to the caller.
func (rs *rules) eraseFromActive(r *Rule) *Rule {
	r.active = false
	next := rs.active.remove(r)
	for i := range rs.cursors {
		if rs.cursors[i] == r {
			rs.cursors[i] = next
		}
	}
	rs.counters.active.Store(int64(rs.active.size))
	return next
}

// initRules deactivates every active rule into the pool and resets the
// cursors and statistics, without releasing any rule memory.
func (rs *rules) initRules() {
	for r := rs.begin(); r != rs.end(); {
		next := r.next
		rs.active.remove(r)
		rs.addInactiveRule(r)
		r = next
	}
	rs.cursors[0] = rs.active.end()
	rs.cursors[1] = rs.active.end()
	rs.stats.initStats()
	rs.counters.active.Store(0)
	rs.counters.pending.Store(0)
	rs.counters.total.Store(0)
}

// maxActiveWordLength scans the active list for the longest left-hand side.
func (rs *rules) maxActiveWordLength() int {
	max := 0
	for r := rs.begin(); r != rs.end(); r = r.next {
		if len(r.lhs) > max {
			max = len(r.lhs)
		}
	}
	return max
}
