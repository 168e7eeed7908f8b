// SPDX-License-Identifier: MIT
package fsmlex

import (
	"golang.org/x/exp/constraints"
)

// Kind is the constraint for token kinds: small, comparable & ordered values (typically an
// integer enumeration).
type Kind interface {
	comparable
	constraints.Ordered
}

type (
	// Node is a state of the [Automaton].
	Node[K Kind] struct {
		// Kind is the token kind reported when scanning stops on this node.
		Kind K
		// ID is the node's index; ids are dense & assigned in creation order.
		ID int

		// Terminal marks an acceptable token boundary.
		Terminal bool
		// LineEnding marks nodes whose tokens end a line.
		LineEnding bool
	}

	// Predicate guards a [Transition]. r is the next rune & lexeme the accumulated text up to &
	// including r.
	Predicate func(r rune, lexeme string) bool

	// Transition is a directed edge between two nodes.
	Transition struct {
		Match Predicate
		// Label describes Match for diagnostics.
		Label string
		From  int
		To    int
	}

	// Callback rewrites the Match accepted on a terminal node.
	//
	// Callbacks are shared by every scan of an [Automaton]; they must not retain or mutate
	// state outside of their argument.
	Callback[K Kind] func(Match[K]) Match[K]
)
