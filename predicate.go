// SPDX-License-Identifier: MIT
package fsmlex

import (
	"strings"
	"unicode"
)

// Is matches the rune c.
func Is(c rune) Predicate { return func(r rune, _ string) bool { return r == c } }

// In matches any rune of set.
func In(set string) Predicate {
	return func(r rune, _ string) bool { return strings.ContainsRune(set, r) }
}

// Range matches runes within [lo, hi].
func Range(lo, hi rune) Predicate { return func(r rune, _ string) bool { return r >= lo && r <= hi } }

// Not negates p.
func Not(p Predicate) Predicate { return func(r rune, s string) bool { return !p(r, s) } }

// Or matches when any of ps matches.
func Or(ps ...Predicate) Predicate {
	return func(r rune, s string) bool {
		for _, p := range ps {
			if p(r, s) {
				return true
			}
		}

		return false
	}
}

// LexemeFunc guards a transition on the accumulated lexeme alone.
func LexemeFunc(fn func(lexeme string) bool) Predicate {
	return func(_ rune, s string) bool { return fn(s) }
}

// Common predicates.
var (
	Any           Predicate = func(rune, string) bool { return true }
	Digit         Predicate = func(r rune, _ string) bool { return r >= '0' && r <= '9' }
	Letter        Predicate = func(r rune, _ string) bool { return unicode.IsLetter(r) }
	LetterOrDigit Predicate = func(r rune, _ string) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
	Space         Predicate = func(r rune, _ string) bool { return r == ' ' || r == '\t' }
)
