package knuthbendix

import "sort"

// Catalog returns the names of the built-in example presentations, sorted.
// These are small presentations drawn from the standard literature on
// string rewriting (Sims; Book & Otto) and are used by the command line
// tool, the examples and the tests.
func Catalog() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPresentation returns the named built-in presentation, if it exists.
// The returned value is a copy; callers may modify it freely.
func LookupPresentation(name string) (Presentation, bool) {
	p, ok := catalog[name]
	if !ok {
		return Presentation{}, false
	}
	cp := Presentation{Alphabet: p.Alphabet, Rules: append([]RulePair(nil), p.Rules...)}
	return cp, true
}

var catalog = map[string]Presentation{
	// Two commuting generators: the free commutative semigroup on {a, b}.
	// Already confluent under shortlex after orienting ba -> ab.
	"commuting": {
		Alphabet: "ab",
		Rules:    []RulePair{{LHS: "ab", RHS: "ba"}},
	},

	// <a, b | a^3 = a, b^2 = a>: a small finite monoid whose completion
	// needs several rounds of overlap resolution.
	"squares": {
		Alphabet: "ab",
		Rules:    []RulePair{{LHS: "aaa", RHS: "a"}, {LHS: "a", RHS: "bb"}},
	},

	// The cyclic semigroup of index 1 and period 5.
	"cyclic-5": {
		Alphabet: "a",
		Rules:    []RulePair{{LHS: "aaaaaa", RHS: "a"}},
	},

	// The bicyclic monoid <b, c | bc = 1>. The single oriented rule
	// bc -> (empty) is already confluent; the monoid is infinite.
	"bicyclic": {
		Alphabet: "bc",
		Rules:    []RulePair{{LHS: "bc", RHS: ""}},
	},

	// The free abelian group of rank 2, presented as a monoid on formal
	// inverses A = a^-1 and B = b^-1. The alphabet lists each generator
	// next to its inverse: under the resulting shortlex order completion
	// terminates with eight rules, whereas ordering the inverses after
	// both generators makes it diverge.
	"free-abelian-2": {
		Alphabet: "aAbB",
		Rules: []RulePair{
			{LHS: "aA", RHS: ""},
			{LHS: "Aa", RHS: ""},
			{LHS: "bB", RHS: ""},
			{LHS: "Bb", RHS: ""},
			{LHS: "ba", RHS: "ab"},
		},
	},

	// Sims, example 5.3: the symmetric group S3 = <a, b | a^2 = 1,
	// b^3 = 1, (ab)^2 = 1> as a monoid presentation.
	"sym-3": {
		Alphabet: "ab",
		Rules: []RulePair{
			{LHS: "aa", RHS: ""},
			{LHS: "bbb", RHS: ""},
			{LHS: "abab", RHS: ""},
		},
	},

	// <a, b | a^2 = 1, b^2 = 1, (ab)^3 = 1>: the dihedral group of
	// order 6 on two involutions.
	"dihedral-6": {
		Alphabet: "ab",
		Rules: []RulePair{
			{LHS: "aa", RHS: ""},
			{LHS: "bb", RHS: ""},
			{LHS: "ababab", RHS: ""},
		},
	},
}
