package knuthbendix

import (
	"strings"
	"testing"
)

// nodeOf returns the node reached by w following children only, failing
// the test if w is not a path in the trie.
func nodeOf(t *testing.T, tr *trie, w string) int {
	t.Helper()
	n := tr.traverseTrie([]byte(w))
	if n == trieUndefined {
		t.Fatalf("word %q not in trie", w)
	}
	return n
}

// longestProperSuffixIn computes, by brute force, the node the suffix
// link of w must point to: the longest proper suffix of w that is a path
// in the trie.
func longestProperSuffixIn(tr *trie, w string) int {
	for i := 1; i <= len(w); i++ {
		if n := tr.traverseTrie([]byte(w[i:])); n != trieUndefined {
			return n
		}
	}
	return trieRoot
}

// checkAllSuffixLinks verifies every live node's suffix link against the
// brute-force definition.
func checkAllSuffixLinks(t *testing.T, tr *trie, words []string) {
	t.Helper()
	seen := map[int]string{trieRoot: ""}
	for _, w := range words {
		for i := 1; i <= len(w); i++ {
			prefix := w[:i]
			seen[nodeOf(t, tr, prefix)] = prefix
		}
	}
	for n, path := range seen {
		want := longestProperSuffixIn(tr, path)
		if got := tr.suffixLink(n); got != want {
			t.Errorf("suffixLink(%q) = node %d (%q), want node %d (%q)",
				path, got, seen[got], want, seen[want])
		}
	}
}

func TestTrieSuffixLinks(t *testing.T) {
	tr := newTrie()
	words := []string{"ab", "bab", "bb"}
	for _, w := range words {
		tr.addWord([]byte(w))
	}
	checkAllSuffixLinks(t, tr, words)

	if got := tr.suffixLink(nodeOf(t, tr, "bab")); got != nodeOf(t, tr, "ab") {
		t.Error("suffixLink(bab) should be the node of ab")
	}
	if got := tr.suffixLink(nodeOf(t, tr, "bb")); got != nodeOf(t, tr, "b") {
		t.Error("suffixLink(bb) should be the node of b")
	}
}

func TestTrieSuffixLinksAfterRemoval(t *testing.T) {
	tr := newTrie()
	for _, w := range []string{"ab", "bab", "bb"} {
		tr.addWord([]byte(w))
	}
	tr.rmWord([]byte("bab"))

	// With bab gone, ba is no longer a path; links must be recomputed.
	if tr.traverseTrie([]byte("ba")) != trieUndefined {
		t.Fatal("removing bab should prune the ba node")
	}
	checkAllSuffixLinks(t, tr, []string{"ab", "bb"})
}

func TestTrieInterleavedAddRemove(t *testing.T) {
	tr := newTrie()
	tr.addWord([]byte("abc"))
	tr.addWord([]byte("bc"))
	tr.addWord([]byte("c"))
	checkAllSuffixLinks(t, tr, []string{"abc", "bc", "c"})

	tr.rmWord([]byte("bc"))
	checkAllSuffixLinks(t, tr, []string{"abc", "c"})

	tr.addWord([]byte("cab"))
	checkAllSuffixLinks(t, tr, []string{"abc", "c", "cab"})
}

func TestTrieRemovePrefixWord(t *testing.T) {
	tr := newTrie()
	tr.addWord([]byte("ab"))
	tr.addWord([]byte("abab"))

	// ab is a prefix of abab: removing it must only clear the terminal
	// flag, the node is still on abab's path.
	n := tr.rmWord([]byte("ab"))
	if tr.terminal(n) {
		t.Error("removed word should no longer be terminal")
	}
	if nodeOf(t, tr, "abab") == trieUndefined {
		t.Error("abab must survive removal of its prefix")
	}
	checkAllSuffixLinks(t, tr, []string{"abab"})
}

func TestTrieNodeRecycling(t *testing.T) {
	tr := newTrie()
	tr.addWord([]byte("abc"))
	live := tr.numLiveNodes()
	allocated := len(tr.nodes)

	tr.rmWord([]byte("abc"))
	if tr.numLiveNodes() != 1 {
		t.Fatalf("numLiveNodes = %d after removal, want 1 (just the root)", tr.numLiveNodes())
	}

	tr.addWord([]byte("xyz"))
	if tr.numLiveNodes() != live {
		t.Errorf("numLiveNodes = %d, want %d", tr.numLiveNodes(), live)
	}
	if len(tr.nodes) != allocated {
		t.Errorf("allocated %d nodes, want %d: removal should recycle, not leak", len(tr.nodes), allocated)
	}
}

func TestTrieHeight(t *testing.T) {
	tr := newTrie()
	tr.addWord([]byte("abcd"))
	if got := tr.height(trieRoot); got != 0 {
		t.Errorf("height(root) = %d, want 0", got)
	}
	for i := 1; i <= 4; i++ {
		n := nodeOf(t, tr, "abcd"[:i])
		if got := tr.height(n); got != i {
			t.Errorf("height(%q) = %d, want %d", "abcd"[:i], got, i)
		}
	}
}

func TestTrieTraverseFollowsSuffixes(t *testing.T) {
	tr := newTrie()
	tr.addWord([]byte("ab"))
	tr.addWord([]byte("bc"))

	// Reading "abc": after ab the next letter c has no child, so the
	// automaton falls back through the suffix link of ab (node b) and
	// lands on bc.
	n := tr.traverseFrom(trieRoot, []byte("abc"))
	if n != nodeOf(t, tr, "bc") {
		t.Errorf("traverse of abc should land on node bc")
	}
	if !tr.terminal(n) {
		t.Error("node bc should be terminal")
	}
}

func TestTrieLongWords(t *testing.T) {
	tr := newTrie()
	words := []string{
		strings.Repeat("ab", 10),
		strings.Repeat("ba", 10),
		"aaaa",
	}
	for _, w := range words {
		tr.addWord([]byte(w))
	}
	checkAllSuffixLinks(t, tr, words)
	tr.rmWord([]byte(words[0]))
	checkAllSuffixLinks(t, tr, words[1:])
}
