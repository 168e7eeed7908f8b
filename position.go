// SPDX-License-Identifier: MIT
package fsmlex

import (
	"fmt"
	"unicode/utf8"
)

type (
	// Position is the scan cursor threaded through successive [Automaton.Scan] calls.
	//
	// Position is a value: cloning is assignment, so a caller may keep any previously returned
	// Position & resume scanning from it.
	Position struct {
		// Index is the byte offset into the source.
		Index int
		// Line is the 0-based line number.
		Line int
		// Column is the 0-based rune offset within the line.
		Column int

		// StartOfLine is set when nothing but indentation has been consumed on the current line.
		StartOfLine bool
		// Indentation is the indentation level (count of indentation units) of the current block.
		Indentation int
	}
)

// NewPosition instantiates a Position at the start of a source.
func NewPosition() Position { return Position{StartOfLine: true} }

// String returns the 1-based "line:column" representation of the Position.
func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1) }

// advance moves the Position past the rune r of byte width w.
//
// "\r\n" counts as a single line ending: the '\r' only moves the column, the '\n' starts the
// new line.
func (p *Position) advance(source string, r rune, w int) {
	p.Index += w

	switch {
	case r == '\n':
		p.newLine()
	case r == '\r' && (p.Index >= len(source) || source[p.Index] != '\n'):
		p.newLine()
	default:
		p.Column++
	}
}

func (p *Position) newLine() {
	p.Line++
	p.Column = 0
}

// Skip moves the Position past the rune of source at its Index, if any.
//
// Skip resumes scanning after a lexical failure, whose End points at the offending rune. Skipping
// a line ending starts a new line.
func (p *Position) Skip(source string) {
	if p.Index >= len(source) {
		return
	}

	line := p.Line
	r, w := utf8.DecodeRuneInString(source[p.Index:])
	p.advance(source, r, w)
	p.StartOfLine = p.Line != line
}

// eolLength returns the byte length of the line ending starting at index: 2 for "\r\n", 1 for
// "\n" or a lone '\r' & 0 otherwise.
func eolLength(source string, index int) int {
	if index >= len(source) {
		return 0
	}

	switch source[index] {
	case '\n':
		return 1
	case '\r':
		if index+1 < len(source) && source[index+1] == '\n' {
			return 2
		}
		return 1
	default:
		return 0
	}
}
