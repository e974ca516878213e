// The Aho-Corasick rewriting strategy.
//
// Active left-hand sides live as paths in a suffix-linked trie, so a scan
// advances by one trie transition per character with no backtracking. The
// confluence check walks each rule's suffix-link chain instead of
// enumerating rule pairs: every overlap between two left-hand sides shows
// up as a terminal descendant of some node on the chain.

package knuthbendix

import "context"

type rewriteTrie struct {
	rewriterBase
	alphabet []byte
	trie     *trie
	ruleAt   map[int]*Rule // terminal node index -> owning rule
}

func newRewriteTrie(ord Ordering, alphabet string) *rewriteTrie {
	return &rewriteTrie{
		rewriterBase: newRewriterBase(ord),
		alphabet:     []byte(alphabet),
		trie:         newTrie(),
		ruleAt:       make(map[int]*Rule),
	}
}

func (rw *rewriteTrie) initRewriter() {
	rw.initBase()
	rw.trie.initTrie()
	for node := range rw.ruleAt {
		delete(rw.ruleAt, node)
	}
}

func (rw *rewriteTrie) addRule(r *Rule) {
	rw.addActiveRule(r)
	node := rw.trie.addWord(r.lhs)
	rw.ruleAt[node] = r
	rw.setCachedConfluent(trilUnknown)
}

// makeActiveRulePending deactivates r, removes its path from the trie,
// re-queues it and returns r's successor in the active list.
func (rw *rewriteTrie) makeActiveRulePending(r *Rule) *Rule {
	node := rw.trie.rmWord(r.lhs)
	delete(rw.ruleAt, node)
	next := rw.eraseFromActive(r)
	rw.addPendingRule(r)
	rw.setCachedConfluent(trilUnknown)
	return next
}

// rewrite reduces u in place. The nodes stack records the trie node
// reached after each character of the processed prefix, so that after a
// splice the scan resumes from the node matching the new prefix without
// re-reading it.
func (rw *rewriteTrie) rewrite(u []byte) []byte {
	if len(u) < rw.stats.minLHSLength {
		return u
	}

	nodes := make([]int, 1, len(u)+1)
	nodes[0] = trieRoot
	current := trieRoot

	vEnd := 0
	wBegin := 0
	for wBegin < len(u) {
		x := u[wBegin]
		wBegin++
		current = rw.trie.traverse(current, x)

		if !rw.trie.terminal(current) {
			nodes = append(nodes, current)
			u[vEnd] = x
			vEnd++
		} else {
			r := rw.ruleAt[current]
			// r.lhs, ending in x, is a suffix of the processed prefix.
			vEnd -= len(r.lhs) - 1
			wBegin -= len(r.rhs)
			copy(u[wBegin:wBegin+len(r.rhs)], r.rhs)
			nodes = nodes[:len(nodes)-(len(r.lhs)-1)]
			current = nodes[len(nodes)-1]
		}
	}
	return u[:vEnd]
}

func (rw *rewriteTrie) processPendingRules() bool {
	return rw.processPending(rw)
}

// confluent resolves critical pairs via the trie: for each rule, start
// from the node reached by its left-hand side minus the first letter and
// backtrack through the trie, testing every reachable terminal whose
// height still admits an overlap. The verdict is cached until the rule
// set changes. Cancellation is polled per rule and at every terminal
// visited during backtracking, and leaves the verdict unknown.
func (rw *rewriteTrie) confluent(ctx context.Context) bool {
	if verdict, done := rw.confluentCached(); done {
		return verdict
	}
	for r := rw.begin(); r != rw.end(); r = r.next {
		if cancelled(ctx) {
			rw.setCachedConfluent(trilUnknown)
			return false
		}
		if !rw.backtrackConfluence(ctx, r, rw.trie.traverseFrom(trieRoot, r.lhs[1:]), 0) {
			if cancelled(ctx) {
				rw.setCachedConfluent(trilUnknown)
				return false
			}
			rw.setCachedConfluent(trilFalse)
			return false
		}
	}
	rw.setCachedConfluent(trilTrue)
	return true
}

// backtrackConfluence explores every word that extends a proper suffix of
// rule1's left-hand side to another rule's left-hand side. The overlap
// length at a terminal is its height minus the backtrack depth, so
// subtrees whose height cannot exceed the depth are pruned. A false
// return after cancellation means interrupted, not non-confluent; the
// caller disambiguates.
func (rw *rewriteTrie) backtrackConfluence(ctx context.Context, rule1 *Rule, current int, depth int) bool {
	if current == trieRoot {
		return true
	}
	if rw.trie.height(current) <= depth {
		return true
	}
	if len(rule1.lhs) == 1 {
		return true
	}

	if rw.trie.terminal(current) {
		if cancelled(ctx) {
			return false
		}
		rule2 := rw.ruleAt[current]
		// The word under test is ABC with rule1.lhs = AB, rule2.lhs = BC
		// and |C| = depth; it rewrites to both XC and AY.
		overlap := len(rule2.lhs) - depth

		word1 := make([]byte, 0, len(rule1.rhs)+depth)
		word1 = append(word1, rule1.rhs...)           // X
		word1 = append(word1, rule2.lhs[overlap:]...) // C

		word2 := make([]byte, 0, len(rule1.lhs)-overlap+len(rule2.rhs))
		word2 = append(word2, rule1.lhs[:len(rule1.lhs)-overlap]...) // A
		word2 = append(word2, rule2.rhs...)                          // Y

		if string(word1) != string(word2) {
			word1 = rw.rewrite(word1)
			word2 = rw.rewrite(word2)
			if string(word1) != string(word2) {
				return false
			}
		}
		return true
	}

	for _, x := range rw.alphabet {
		if !rw.backtrackConfluence(ctx, rule1, rw.trie.traverse(current, x), depth+1) {
			return false
		}
	}
	return true
}
