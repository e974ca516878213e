// An Aho-Corasick trie over byte alphabets, used by RewriteTrie to index
// the left-hand sides of the active rules.
//
// Nodes live in a slice and are addressed by index; removed nodes go on a
// free list and are reused, so node indices are only meaningful while the
// node is live. Suffix links are computed lazily: any structural change
// invalidates every link, and the next suffix-link query recomputes the
// links it needs on the way to the root. Heights are cached per node and
// never change while the node is live, since a node's parent is fixed.

package knuthbendix

const (
	trieRoot      = 0
	trieUndefined = -1
)

type trieNode struct {
	children     map[byte]int
	parent       int
	parentLetter byte
	link         int // lazily computed suffix link
	height       int // cached depth, trieUndefined until queried
	terminal     bool
}

func (n *trieNode) initNode(parent int, a byte) {
	for c := range n.children {
		delete(n.children, c)
	}
	if n.children == nil {
		n.children = make(map[byte]int)
	}
	n.parent = parent
	n.parentLetter = a
	n.height = trieUndefined
	n.terminal = false
	n.clearLink()
}

// clearLink resets the suffix link to its lazy initial state: children of
// the root (and the root itself) link to the root, everything else is
// recomputed on demand.
func (n *trieNode) clearLink() {
	if n.parent == trieRoot || n.parent == trieUndefined {
		n.link = trieRoot
	} else {
		n.link = trieUndefined
	}
}

type trie struct {
	nodes      []trieNode
	free       []int
	validLinks bool
}

func newTrie() *trie {
	t := &trie{}
	t.initTrie()
	return t
}

func (t *trie) initTrie() {
	t.nodes = t.nodes[:0]
	t.nodes = append(t.nodes, trieNode{})
	t.nodes[trieRoot].initNode(trieUndefined, 0)
	t.free = t.free[:0]
	t.validLinks = true
}

func (t *trie) numLiveNodes() int { return len(t.nodes) - len(t.free) }

func (t *trie) terminal(i int) bool { return t.nodes[i].terminal }

func (t *trie) child(parent int, a byte) int {
	if c, ok := t.nodes[parent].children[a]; ok {
		return c
	}
	return trieUndefined
}

func (t *trie) newNode(parent int, a byte) int {
	var i int
	if n := len(t.free); n > 0 {
		i = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		i = len(t.nodes)
		t.nodes = append(t.nodes, trieNode{})
	}
	t.nodes[i].initNode(parent, a)
	t.nodes[parent].children[a] = i
	return i
}

// addWord inserts w and returns the index of its terminal node. Inserting
// invalidates all suffix links.
func (t *trie) addWord(w []byte) int {
	current := trieRoot
	for _, a := range w {
		next := t.child(current, a)
		if next == trieUndefined {
			next = t.newNode(current, a)
		}
		current = next
	}
	t.nodes[current].terminal = true
	t.validLinks = false
	return current
}

// rmWord removes w from the trie and returns the index its terminal node
// had. Nodes that no longer lie on the path of any stored word are
// recycled. The caller must be done with the returned index before the
// next insertion, since recycled indices are reused.
func (t *trie) rmWord(w []byte) int {
	current := trieRoot
	for _, a := range w {
		current = t.child(current, a)
		if current == trieUndefined {
			panic("knuthbendix: internal error: removing a word not in the trie")
		}
	}
	if !t.nodes[current].terminal {
		panic("knuthbendix: internal error: removing a word not in the trie")
	}
	removed := current
	t.nodes[current].terminal = false
	for current != trieRoot && len(t.nodes[current].children) == 0 && !t.nodes[current].terminal {
		parent := t.nodes[current].parent
		delete(t.nodes[parent].children, t.nodes[current].parentLetter)
		t.free = append(t.free, current)
		current = parent
	}
	t.validLinks = false
	return removed
}

// traverse follows the Aho-Corasick transition from current on letter a:
// the child if one exists, otherwise the transition from the suffix link,
// bottoming out at the root.
func (t *trie) traverse(current int, a byte) int {
	if next := t.child(current, a); next != trieUndefined {
		return next
	}
	if current == trieRoot {
		return trieRoot
	}
	return t.traverse(t.suffixLink(current), a)
}

func (t *trie) traverseFrom(start int, w []byte) int {
	current := start
	for _, a := range w {
		current = t.traverse(current, a)
	}
	return current
}

// traverseTrie follows children only, with no suffix-link fallback, and
// reports trieUndefined if w is not the prefix of any stored word.
func (t *trie) traverseTrie(w []byte) int {
	current := trieRoot
	for _, a := range w {
		current = t.child(current, a)
		if current == trieUndefined {
			return trieUndefined
		}
	}
	return current
}

// suffixLink returns the node whose path is the longest proper suffix of
// i's path that is present in the trie.
func (t *trie) suffixLink(i int) int {
	if !t.validLinks {
		t.clearSuffixLinks()
		t.validLinks = true
	}
	return t.suffixLinkNoRefresh(i)
}

func (t *trie) suffixLinkNoRefresh(i int) int {
	n := &t.nodes[i]
	if n.link == trieUndefined {
		n.link = t.traverse(t.suffixLinkNoRefresh(n.parent), n.parentLetter)
	}
	return n.link
}

func (t *trie) clearSuffixLinks() {
	for i := range t.nodes {
		t.nodes[i].clearLink()
	}
}

// height returns the depth of node i, caching on the way up.
func (t *trie) height(i int) int {
	if h := t.nodes[i].height; h != trieUndefined {
		return h
	}
	if i == trieRoot {
		t.nodes[i].height = 0
		return 0
	}
	h := t.height(t.nodes[i].parent) + 1
	t.nodes[i].height = h
	return h
}
