package knuthbendix

import (
	"context"
	"strings"
	"testing"
)

// FuzzRewrite feeds arbitrary words over {a, b} to a completed engine and
// checks the properties every normal form must have: idempotence, length
// non-increase, and freedom from every active left-hand side.
func FuzzRewrite(f *testing.F) {
	f.Add("aabaaab")
	f.Add("bababa")
	f.Add("")
	f.Add("a")
	f.Add(strings.Repeat("ab", 50))

	p, _ := LookupPresentation("squares")
	kb, err := New(&p)
	if err != nil {
		f.Fatal(err)
	}
	if outcome := kb.Run(context.Background()); outcome != OutcomeConfluent {
		f.Fatalf("outcome = %s, want confluent", outcome)
	}
	rules := kb.ActiveRules()

	f.Fuzz(func(t *testing.T, w string) {
		// Restrict to the presentation's alphabet.
		for i := 0; i < len(w); i++ {
			if w[i] != 'a' && w[i] != 'b' {
				t.Skip("word outside alphabet")
			}
		}

		nf := kb.Rewrite(w)
		if len(nf) > len(w) {
			t.Errorf("rewrite grew %q to %q", w, nf)
		}
		if again := kb.Rewrite(nf); again != nf {
			t.Errorf("rewrite not idempotent: %q -> %q -> %q", w, nf, again)
		}
		for _, r := range rules {
			if strings.Contains(nf, r.LHS) {
				t.Errorf("rewrite(%q) = %q still contains lhs %q", w, nf, r.LHS)
			}
		}
	})
}

// FuzzRewriteVariantsAgree cross-checks the two rewriting strategies on
// arbitrary words with the same confluent rule set.
func FuzzRewriteVariantsAgree(f *testing.F) {
	f.Add("abAB")
	f.Add("aAbB")
	f.Add("BAba")

	p, _ := LookupPresentation("free-abelian-2")
	trie, err := New(&p, WithRewriter(RewriteTrie))
	if err != nil {
		f.Fatal(err)
	}
	left, err := New(&p, WithRewriter(RewriteFromLeft))
	if err != nil {
		f.Fatal(err)
	}
	trie.Run(context.Background())
	left.Run(context.Background())

	f.Fuzz(func(t *testing.T, w string) {
		for i := 0; i < len(w); i++ {
			if !strings.ContainsRune("abAB", rune(w[i])) {
				t.Skip("word outside alphabet")
			}
		}
		if got, want := trie.Rewrite(w), left.Rewrite(w); got != want {
			t.Errorf("strategies disagree on %q: trie %q, fromleft %q", w, got, want)
		}
	})
}
