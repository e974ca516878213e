package knuthbendix

import (
	"errors"
	"fmt"
)

// ErrLetterNotInAlphabet is returned when a word references a letter that
// is not part of the presentation's alphabet.
var ErrLetterNotInAlphabet = errors.New("letter not in alphabet")

// RulePair is an unoriented pair of words declared equal by a presentation,
// and also the form in which the engine exposes its oriented rules.
type RulePair struct {
	LHS string
	RHS string
}

// Presentation describes a finitely presented semigroup or monoid: an
// ordered alphabet of letters and a sequence of defining relations. The
// empty word is permitted in relations, so monoid presentations (with
// relations of the form w = "") are expressed directly.
//
// A Presentation is a plain value; the engine never mutates it.
type Presentation struct {
	// Alphabet lists the letters in order. The position of a letter is its
	// index; the default shortlex ordering compares letters by byte value,
	// use NewShortLexOrder(p.Alphabet) to compare by alphabet position.
	Alphabet string

	// Rules holds the defining relations.
	Rules []RulePair
}

// NewPresentation returns a presentation over the given alphabet with no
// relations.
func NewPresentation(alphabet string) *Presentation {
	return &Presentation{Alphabet: alphabet}
}

// AddRule appends the relation lhs = rhs and returns the presentation for
// chaining.
func (p *Presentation) AddRule(lhs, rhs string) *Presentation {
	p.Rules = append(p.Rules, RulePair{LHS: lhs, RHS: rhs})
	return p
}

// Validate checks that the alphabet is non-empty and duplicate free, and
// that every letter used in a relation belongs to the alphabet.
func (p *Presentation) Validate() error {
	if len(p.Alphabet) == 0 {
		return errors.New("presentation: empty alphabet")
	}
	var member [256]bool
	for i := 0; i < len(p.Alphabet); i++ {
		c := p.Alphabet[i]
		if member[c] {
			return fmt.Errorf("presentation: duplicate letter %q in alphabet", c)
		}
		member[c] = true
	}
	for i, r := range p.Rules {
		for _, side := range [2]string{r.LHS, r.RHS} {
			for j := 0; j < len(side); j++ {
				if !member[side[j]] {
					return fmt.Errorf("presentation: rule %d uses letter %q: %w",
						i, side[j], ErrLetterNotInAlphabet)
				}
			}
		}
	}
	return nil
}

// validateWord checks that every letter of w is in the alphabet.
func (p *Presentation) validateWord(w string) error {
	for i := 0; i < len(w); i++ {
		if !p.inAlphabet(w[i]) {
			return fmt.Errorf("word %q uses letter %q: %w", w, w[i], ErrLetterNotInAlphabet)
		}
	}
	return nil
}

func (p *Presentation) inAlphabet(c byte) bool {
	for i := 0; i < len(p.Alphabet); i++ {
		if p.Alphabet[i] == c {
			return true
		}
	}
	return false
}
