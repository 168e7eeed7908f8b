// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"

	"gitlab.com/fisherprime/fsmlex"
)

type (
	// Error describes a lexical failure.
	Error struct {
		Filename string
		// Line is the text of the source line holding Char, without its line ending.
		Line     string
		Position fsmlex.Position
		Char     rune
	}
)

// Lexing errors.
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
)

func newError(filename, source string, pos fsmlex.Position) *Error {
	r, _ := utf8.DecodeRuneInString(source[pos.Index:])

	start := strings.LastIndexAny(source[:pos.Index], "\r\n") + 1
	end := strings.IndexAny(source[pos.Index:], "\r\n")
	if end < 0 {
		end = len(source)
	} else {
		end += pos.Index
	}

	return &Error{
		Filename: filename,
		Line:     source[start:end],
		Position: pos,
		Char:     r,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: %v %q", e.Filename, e.Position, ErrUnexpectedCharacter, e.Char)
}

// Unwrap returns ErrUnexpectedCharacter.
func (e *Error) Unwrap() error { return ErrUnexpectedCharacter }

// Caret renders the offending line followed by a caret under Char.
//
// The padding preserves tabs & counts two cells for East Asian wide runes.
func (e *Error) Caret() string {
	var buffer strings.Builder

	buffer.WriteString(e.Line)
	buffer.WriteByte('\n')

	column := 0
	for _, r := range e.Line {
		if column >= e.Position.Column {
			break
		}
		column++

		switch {
		case r == '\t':
			buffer.WriteByte('\t')
		case isWide(r):
			buffer.WriteString("  ")
		default:
			buffer.WriteByte(' ')
		}
	}
	buffer.WriteByte('^')

	return buffer.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}
