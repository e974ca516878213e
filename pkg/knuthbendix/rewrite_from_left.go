// The ordered-index rewriting strategy.
//
// Active rules are kept in a slice sorted by reverse-lexicographic
// comparison of their left-hand sides (comparing from the last letter
// backward). During a left-to-right scan this lets a single binary search
// decide whether any rule's left-hand side is a suffix of the prefix read
// so far: two keys compare equal exactly when one is a suffix of the
// other, and a reduced rule set never contains two suffix-related
// left-hand sides, so the probe is unambiguous.

package knuthbendix

import (
	"context"
	"sort"
)

// revLexCmp compares u and v from their last letters backward, stopping
// as soon as either side is exhausted. Suffix-related words compare equal.
// Both arguments must be non-empty.
func revLexCmp(u, v []byte) int {
	i, j := len(u)-1, len(v)-1
	for i > 0 && j > 0 && u[i] == v[j] {
		i--
		j--
	}
	switch {
	case u[i] < v[j]:
		return -1
	case u[i] > v[j]:
		return 1
	default:
		return 0
	}
}

// rewriteFromLeft implements REWRITE_FROM_LEFT (Sims, p67) on top of the
// sorted suffix index.
type rewriteFromLeft struct {
	rewriterBase
	index []*Rule // sorted by revLexCmp of lhs
}

func newRewriteFromLeft(ord Ordering) *rewriteFromLeft {
	return &rewriteFromLeft{rewriterBase: newRewriterBase(ord)}
}

func (rw *rewriteFromLeft) initRewriter() {
	rw.initBase()
	rw.index = rw.index[:0]
}

// lookup returns the active rule whose left-hand side is a suffix of
// window, or nil. The caller must still check the rule's length against
// the window, since a window that is a proper suffix of some left-hand
// side also probes equal.
func (rw *rewriteFromLeft) lookup(window []byte) *Rule {
	pos := sort.Search(len(rw.index), func(k int) bool {
		return revLexCmp(rw.index[k].lhs, window) >= 0
	})
	if pos < len(rw.index) && revLexCmp(rw.index[pos].lhs, window) == 0 {
		return rw.index[pos]
	}
	return nil
}

func (rw *rewriteFromLeft) addRule(r *Rule) {
	rw.addActiveRule(r)
	pos := sort.Search(len(rw.index), func(k int) bool {
		return revLexCmp(rw.index[k].lhs, r.lhs) >= 0
	})
	rw.index = append(rw.index, nil)
	copy(rw.index[pos+1:], rw.index[pos:])
	rw.index[pos] = r
	rw.setCachedConfluent(trilUnknown)
}

// makeActiveRulePending deactivates r, removes its index entry, re-queues
// it and returns r's successor in the active list.
func (rw *rewriteFromLeft) makeActiveRulePending(r *Rule) *Rule {
	pos := sort.Search(len(rw.index), func(k int) bool {
		return revLexCmp(rw.index[k].lhs, r.lhs) >= 0
	})
	if pos >= len(rw.index) || rw.index[pos] != r {
		panic("knuthbendix: internal error: active rule missing from suffix index")
	}
	rw.index = append(rw.index[:pos], rw.index[pos+1:]...)
	next := rw.eraseFromActive(r)
	rw.addPendingRule(r)
	rw.setCachedConfluent(trilUnknown)
	return next
}

// rewrite reduces u in place and returns the reduced slice. It scans left
// to right keeping the processed prefix in u[:vEnd] and the unread tail in
// u[wBegin:]; after each character it probes the suffix index and, on a
// hit, splices in the right-hand side and rewinds the scan. Rules are
// length non-increasing, so vEnd never overtakes wBegin.
func (rw *rewriteFromLeft) rewrite(u []byte) []byte {
	if len(u) < rw.stats.minLHSLength {
		return u
	}
	vEnd := rw.stats.minLHSLength - 1
	wBegin := vEnd

	for wBegin < len(u) {
		u[vEnd] = u[wBegin]
		vEnd++
		wBegin++

		if r := rw.lookup(u[:vEnd]); r != nil && len(r.lhs) <= vEnd {
			vEnd -= len(r.lhs)
			wBegin -= len(r.rhs)
			copy(u[wBegin:wBegin+len(r.rhs)], r.rhs)
		}
		for wBegin < len(u) && vEnd < rw.stats.minLHSLength-1 {
			u[vEnd] = u[wBegin]
			vEnd++
			wBegin++
		}
	}
	return u[:vEnd]
}

func (rw *rewriteFromLeft) processPendingRules() bool {
	return rw.processPending(rw)
}

// confluent checks every critical pair by brute-force enumeration: for
// every ordered pair of active rules and every suffix of the first rule's
// left-hand side, if that suffix and the second left-hand side overlap,
// resolve the overlap both ways and compare normal forms. The verdict is
// cached until the rule set changes. Cancellation is polled once per rule
// pair and leaves the verdict unknown.
func (rw *rewriteFromLeft) confluent(ctx context.Context) bool {
	if verdict, done := rw.confluentCached(); done {
		return verdict
	}
	var word1, word2 []byte
	for r1 := rw.begin(); r1 != rw.end(); r1 = r1.next {
		// Scanning the partner rules newest-first fails faster in practice.
		for r2 := rw.active.back(); r2 != rw.end(); r2 = r2.prev {
			if cancelled(ctx) {
				rw.setCachedConfluent(trilUnknown)
				return false
			}
			for pos := len(r1.lhs) - 1; pos >= 0; pos-- {
				// Longest common prefix of r1.lhs[pos:] and r2.lhs; an
				// overlap needs one of the two to be exhausted.
				n := commonPrefixLen(r1.lhs[pos:], r2.lhs)
				if pos+n != len(r1.lhs) && n != len(r2.lhs) {
					continue
				}
				word1 = append(word1[:0], r1.lhs[:pos]...)
				word1 = append(word1, r2.rhs...)
				word1 = append(word1, r1.lhs[pos+n:]...)

				word2 = append(word2[:0], r1.rhs...)
				word2 = append(word2, r2.lhs[n:]...)

				if string(word1) != string(word2) {
					word1 = rw.rewrite(word1)
					word2 = rw.rewrite(word2)
					if string(word1) != string(word2) {
						rw.setCachedConfluent(trilFalse)
						return false
					}
				}
			}
		}
	}
	rw.setCachedConfluent(trilTrue)
	return true
}
