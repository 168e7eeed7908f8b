// SPDX-License-Identifier: MIT
package fsmlex

import (
	"fmt"
)

type (
	// Special tags matches emitted outside the node graph.
	Special int

	// Match is the outcome of a single [Automaton.Scan] call.
	Match[K Kind] struct {
		// Value is an optional payload set by a [Callback], e.g. a decoded number.
		Value any

		// Lexeme is the matched source text; the offending rune on failure.
		Lexeme string

		// Start is the Position of the first byte of Lexeme.
		Start Position
		// End is the cursor to resume scanning from.
		//
		// On failure End points at the offending rune.
		End Position

		// Kind is the token kind of the winning node.
		Kind K

		// NodeID is the winning node, [NoNode] on failure, end of stream & indentation changes.
		NodeID int
		// Length is the byte length of Lexeme.
		Length int
		// Levels is the number of indentation levels gained or lost by an indentation change.
		Levels int

		Special Special

		Success bool
		// EOS marks the end of the token stream; it is not a lexical error.
		EOS bool
		// LineEnding is set when the winning node ends a line.
		LineEnding bool
	}
)

// Special match tags.
const (
	SpecialNone Special = iota
	SpecialIndent
	SpecialUnindent
)

// NoNode is the NodeID of matches not produced by a node.
const NoNode = -1

func (s Special) String() string {
	switch s {
	case SpecialIndent:
		return "Indent"
	case SpecialUnindent:
		return "Unindent"
	default:
		return "None"
	}
}

// IsIndent reports whether the Match is an indentation increase.
func (m *Match[K]) IsIndent() bool { return m.Special == SpecialIndent }

// IsUnindent reports whether the Match is an indentation decrease.
func (m *Match[K]) IsUnindent() bool { return m.Special == SpecialUnindent }

// IsError reports whether the Match is a lexical failure.
func (m *Match[K]) IsError() bool { return !m.Success && !m.EOS }

func (m Match[K]) String() string {
	switch {
	case m.EOS:
		return fmt.Sprintf("%s EOS", m.Start)
	case m.Special != SpecialNone:
		return fmt.Sprintf("%s %s(%d)", m.Start, m.Special, m.Levels)
	case !m.Success:
		return fmt.Sprintf("%s error %q", m.Start, m.Lexeme)
	default:
		return fmt.Sprintf("%s %v %q", m.Start, m.Kind, m.Lexeme)
	}
}

// CloseIndentation returns the Unindent Match closing every block open at pos, along with the
// Position past it (at indentation level 0).
//
// Pull loops call it on an EOS Match whose End holds a non-zero indentation level.
func CloseIndentation[K Kind](pos Position) (Match[K], Position) {
	end := pos
	end.Indentation, end.StartOfLine = 0, false

	m := Match[K]{
		Success: true,
		NodeID:  NoNode,
		Special: SpecialUnindent,
		Levels:  pos.Indentation,
		Start:   pos,
		End:     end,
	}

	return m, end
}

func eosMatch[K Kind](pos Position) Match[K] {
	return Match[K]{NodeID: NoNode, Start: pos, End: pos, EOS: true}
}

func indentMatch[K Kind](special Special, levels int, start, end Position, source string) Match[K] {
	return Match[K]{
		Success: true,
		NodeID:  NoNode,
		Special: special,
		Levels:  levels,
		Start:   start,
		End:     end,
		Length:  end.Index - start.Index,
		Lexeme:  source[start.Index:end.Index],
	}
}
