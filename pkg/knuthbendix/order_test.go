package knuthbendix

import (
	"testing"
)

func TestShortLexLengthFirst(t *testing.T) {
	o := NewShortLex()
	tests := []struct {
		name string
		u, v string
		want bool
	}{
		{"longer beats shorter", "aaa", "ab", true},
		{"shorter loses", "ab", "aaa", false},
		{"equal length lex", "ba", "ab", true},
		{"equal length lex reverse", "ab", "ba", false},
		{"equal words", "abc", "abc", false},
		{"empty vs nonempty", "a", "", true},
		{"empty vs empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.Greater([]byte(tt.u), []byte(tt.v)); got != tt.want {
				t.Errorf("Greater(%q, %q) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestShortLexTotality(t *testing.T) {
	o := NewShortLex()
	words := []string{"", "a", "b", "ab", "ba", "aa", "bb", "aba", "bab"}
	for _, u := range words {
		for _, v := range words {
			gt := o.Greater([]byte(u), []byte(v))
			lt := o.Greater([]byte(v), []byte(u))
			if u == v {
				if gt || lt {
					t.Errorf("Greater not irreflexive on %q", u)
				}
			} else if gt == lt {
				t.Errorf("Greater not total on %q, %q: both %v", u, v, gt)
			}
		}
	}
}

func TestShortLexTranslationInvariance(t *testing.T) {
	o := NewShortLex()
	pairs := [][2]string{{"ba", "ab"}, {"aaa", "a"}, {"bb", "a"}}
	contexts := [][2]string{{"", ""}, {"a", ""}, {"", "b"}, {"ab", "ba"}}
	for _, p := range pairs {
		if !o.Greater([]byte(p[0]), []byte(p[1])) {
			t.Fatalf("expected %q > %q", p[0], p[1])
		}
		for _, c := range contexts {
			u := c[0] + p[0] + c[1]
			v := c[0] + p[1] + c[1]
			if !o.Greater([]byte(u), []byte(v)) {
				t.Errorf("translation invariance broken: %q > %q but not %q > %q",
					p[0], p[1], u, v)
			}
		}
	}
}

func TestShortLexCustomLetterOrder(t *testing.T) {
	// With order "ba" the letter b is smaller than a.
	o, err := NewShortLexOrder("ba")
	if err != nil {
		t.Fatalf("NewShortLexOrder() error: %v", err)
	}
	if !o.Greater([]byte("ab"), []byte("ba")) {
		t.Error("with order \"ba\", ab should be greater than ba")
	}
	if o.Greater([]byte("ba"), []byte("ab")) {
		t.Error("with order \"ba\", ba should not be greater than ab")
	}
}

func TestShortLexOrderDuplicateLetter(t *testing.T) {
	if _, err := NewShortLexOrder("aba"); err == nil {
		t.Error("NewShortLexOrder(\"aba\") should fail on the duplicate letter")
	}
}
