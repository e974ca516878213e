// Package main demonstrates basic knuthbendix usage patterns.
//
// This example completes a couple of small presentations, rewrites words
// to normal form, and races the two rewriting strategies against each
// other.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gitrdm/gosemigroups/pkg/knuthbendix"
)

func main() {
	fmt.Println("=== gosemigroups examples ===")
	fmt.Println()

	commutingGenerators()
	normalForms()
	wordProblem()
	racingStrategies()
}

// commutingGenerators completes the free commutative semigroup on two
// generators: a single relation ab = ba.
func commutingGenerators() {
	fmt.Println("1. Commuting generators:")

	p := knuthbendix.NewPresentation("ab").AddRule("ab", "ba")
	kb, err := knuthbendix.New(p)
	if err != nil {
		panic(err)
	}
	outcome := kb.Run(context.Background())
	fmt.Printf("   outcome: %s\n", outcome)
	for _, r := range kb.ActiveRules() {
		fmt.Printf("   rule: %s -> %s\n", r.LHS, r.RHS)
	}
	fmt.Printf("   bababa rewrites to %s\n\n", kb.Rewrite("bababa"))
}

// normalForms runs a presentation whose completion has to resolve several
// critical pairs before the system is confluent.
func normalForms() {
	fmt.Println("2. Normal forms:")

	p, _ := knuthbendix.LookupPresentation("squares")
	kb, err := knuthbendix.New(&p)
	if err != nil {
		panic(err)
	}
	kb.Run(context.Background())
	for _, w := range []string{"aabaaab", "bbbb", "abba"} {
		fmt.Printf("   %s -> %q\n", w, kb.Rewrite(w))
	}
	fmt.Println()
}

// wordProblem decides equality of words in the symmetric group S3.
func wordProblem() {
	fmt.Println("3. Word problem in S3:")

	p, _ := knuthbendix.LookupPresentation("sym-3")
	kb, err := knuthbendix.New(&p)
	if err != nil {
		panic(err)
	}
	for _, pair := range [][2]string{{"abab", ""}, {"ab", "ba"}, {"aa", "bbb"}} {
		eq, err := kb.Equal(context.Background(), pair[0], pair[1])
		if err != nil {
			panic(err)
		}
		fmt.Printf("   %q = %q : %v\n", pair[0], pair[1], eq)
	}
	fmt.Println()
}

// racingStrategies runs both rewriters on the same presentation and keeps
// whichever reaches confluence first.
func racingStrategies() {
	fmt.Println("4. Racing the two rewriting strategies:")

	p, _ := knuthbendix.LookupPresentation("free-abelian-2")
	trie, err := knuthbendix.New(&p, knuthbendix.WithRewriter(knuthbendix.RewriteTrie))
	if err != nil {
		panic(err)
	}
	left, err := knuthbendix.New(&p, knuthbendix.WithRewriter(knuthbendix.RewriteFromLeft))
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	winner, err := knuthbendix.Race(ctx, trie, left)
	if err != nil {
		panic(err)
	}
	fmt.Printf("   winner found %d rules; aAbB -> %q\n",
		len(winner.ActiveRules()), winner.Rewrite("aAbB"))
}
