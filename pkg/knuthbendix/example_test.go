package knuthbendix_test

import (
	"context"
	"fmt"

	"github.com/gitrdm/gosemigroups/pkg/knuthbendix"
)

// ExampleKnuthBendix demonstrates completing a presentation and using the
// resulting rewriting system to compute normal forms.
func ExampleKnuthBendix() {
	p := knuthbendix.NewPresentation("ab").AddRule("ab", "ba")
	kb, err := knuthbendix.New(p)
	if err != nil {
		panic(err)
	}

	outcome := kb.Run(context.Background())
	fmt.Println("outcome:", outcome)
	for _, r := range kb.ActiveRules() {
		fmt.Printf("rule: %s -> %s\n", r.LHS, r.RHS)
	}
	fmt.Println("normal form of bababa:", kb.Rewrite("bababa"))
	// Output:
	// outcome: confluent
	// rule: ba -> ab
	// normal form of bababa: aaabbb
}

// ExampleKnuthBendix_Equal decides the word problem in the symmetric
// group S3.
func ExampleKnuthBendix_Equal() {
	p, _ := knuthbendix.LookupPresentation("sym-3")
	kb, err := knuthbendix.New(&p)
	if err != nil {
		panic(err)
	}

	eq, err := kb.Equal(context.Background(), "abab", "")
	if err != nil {
		panic(err)
	}
	fmt.Println("abab is the identity:", eq)

	eq, err = kb.Equal(context.Background(), "ab", "ba")
	if err != nil {
		panic(err)
	}
	fmt.Println("ab equals ba:", eq)
	// Output:
	// abab is the identity: true
	// ab equals ba: false
}

// ExampleWithMaxRules shows that hitting the rule cap is a reportable
// stopping condition, not an error: the partial system still rewrites.
func ExampleWithMaxRules() {
	p, _ := knuthbendix.LookupPresentation("free-abelian-2")
	kb, err := knuthbendix.New(&p, knuthbendix.WithMaxRules(3))
	if err != nil {
		panic(err)
	}

	fmt.Println("outcome:", kb.Run(context.Background()))
	fmt.Println("aA rewrites to:", fmt.Sprintf("%q", kb.Rewrite("aA")))
	// Output:
	// outcome: max rules reached
	// aA rewrites to: ""
}
