// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"gitlab.com/fisherprime/fsmlex"
)

const (
	kindNone = iota
	kindWord
	kindNumber
)

func newAutomaton(t testing.TB, options ...fsmlex.Option) *fsmlex.Automaton[int] {
	t.Helper()

	b := fsmlex.NewBuilder[int](append([]fsmlex.Option{
		fsmlex.WithIgnoreWhiteSpace(true), fsmlex.WithIgnoreEOL(true),
	}, options...)...)

	start := b.AddNode()
	word := b.AddTerminal(kindWord)
	number := b.AddTerminal(kindNumber)

	b.AddTransition(start, word, fsmlex.Letter, "letter")
	b.AddTransition(word, word, fsmlex.Letter, "letter")
	b.AddTransition(start, number, fsmlex.Digit, "digit")
	b.AddTransition(number, number, fsmlex.Digit, "digit")

	a, err := b.Freeze()
	require.NoError(t, err)

	return a
}

func lexemes(matches []fsmlex.Match[int]) (out []string) {
	for _, m := range matches {
		if m.EOS {
			out = append(out, "EOS")
			continue
		}
		out = append(out, m.Lexeme)
	}

	return
}

func TestLexer_Lex(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	l := New(newAutomaton(t), WithSource("ab 12\ncd"), WithBufferSize(1))
	go l.Lex(context.Background())

	var got []string
	for {
		item, ok := l.Item()
		if !ok {
			break
		}
		require.NoError(t, item.Err)
		got = append(got, lexemes([]fsmlex.Match[int]{item.Match})...)
	}

	assert.Equal(t, []string{"ab", "12", "cd", "EOS"}, got)
}

func TestLexer_Lex_error(t *testing.T) {
	l := New(newAutomaton(t), WithSource("ab # cd"), WithFilename("test.txt"))
	go l.Lex(context.Background())

	item, ok := l.Item()
	require.True(t, ok)
	assert.Equal(t, "ab", item.Lexeme)

	item, ok = l.Item()
	require.True(t, ok)
	require.Error(t, item.Err)
	assert.ErrorIs(t, item.Err, ErrUnexpectedCharacter)
	assert.EqualError(t, item.Err, `test.txt:1:4: unexpected character '#'`)

	_, ok = l.Item()
	assert.False(t, ok, "lexing stops at the first error")
}

func TestLexer_Lex_cancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(newAutomaton(t), WithSource("ab cd"))
	go l.Lex(ctx)

	item, ok := l.Item()
	require.True(t, ok)
	assert.ErrorIs(t, item.Err, context.Canceled)

	_, ok = l.Item()
	assert.False(t, ok)
}

func TestLexer_Tokenize(t *testing.T) {
	tests := []struct {
		name     string
		options  []Option
		source   string
		want     []string
		wantErrs int
	}{
		{"valid", nil, "ab 12 cd", []string{"ab", "12", "cd", "EOS"}, 0},
		{"empty", nil, "", []string{"EOS"}, 0},
		{"stop at error", nil, "ab # cd", []string{"ab"}, 1},
		{"resync", []Option{WithResync(true)}, "ab # cd ! 1", []string{"ab", "cd", "1", "EOS"}, 2},
		{"resync adjacent", []Option{WithResync(true)}, "ab#$cd", []string{"ab", "cd", "EOS"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(newAutomaton(t), append(tt.options, WithSource(tt.source))...)

			matches, err := l.Tokenize(context.Background())
			assert.Equal(t, tt.want, lexemes(matches))

			if tt.wantErrs == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnexpectedCharacter)

			var lexErr *Error
			require.ErrorAs(t, err, &lexErr)

			if joined, ok := err.(interface{ Unwrap() []error }); ok {
				assert.Len(t, joined.Unwrap(), tt.wantErrs)
			} else {
				assert.Equal(t, 1, tt.wantErrs)
			}
		})
	}
}

func TestLexer_Tokenize_cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	matches, err := New(newAutomaton(t), WithSource("ab")).Tokenize(ctx)
	assert.Empty(t, matches)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLexer_Tokenize_indentation(t *testing.T) {
	a := newAutomaton(t, fsmlex.WithIndentation("  "))

	matches, err := New(a, WithSource("a\n  b\nc")).Tokenize(context.Background())
	require.NoError(t, err)

	var got []string
	for _, m := range matches {
		switch {
		case m.IsIndent():
			got = append(got, "INDENT")
		case m.IsUnindent():
			got = append(got, "UNINDENT")
		case m.EOS:
			got = append(got, "EOS")
		default:
			got = append(got, m.Lexeme)
		}
	}

	assert.Equal(t, []string{"a", "INDENT", "b", "UNINDENT", "c", "EOS"}, got)
}

func indentationSummary(matches []fsmlex.Match[int]) (out []string) {
	for _, m := range matches {
		switch {
		case m.IsIndent():
			out = append(out, fmt.Sprintf("INDENT(%d)", m.Levels))
		case m.IsUnindent():
			out = append(out, fmt.Sprintf("UNINDENT(%d)", m.Levels))
		case m.EOS:
			out = append(out, "EOS")
		default:
			out = append(out, m.Lexeme)
		}
	}

	return
}

func TestLexer_Tokenize_endOfInputIndentation(t *testing.T) {
	a := newAutomaton(t, fsmlex.WithIndentation("  "))

	matches, err := New(a, WithSource("a\n  b\n    c\n  d")).Tokenize(context.Background())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"a", "INDENT(1)", "b", "INDENT(1)", "c", "UNINDENT(1)", "d", "UNINDENT(1)", "EOS"},
		indentationSummary(matches),
	)

	eos := matches[len(matches)-1]
	assert.Equal(t, 0, eos.End.Indentation)
}

func TestLexer_Tokenize_resyncLineEnding(t *testing.T) {
	// Line endings are neither ignored nor tokens: skipping one still starts a new line.
	b := fsmlex.NewBuilder[int](fsmlex.WithIgnoreWhiteSpace(true), fsmlex.WithIndentation("  "))
	start := b.AddNode()
	word := b.AddTerminal(kindWord)
	b.AddTransition(start, word, fsmlex.Letter, "letter")
	b.AddTransition(word, word, fsmlex.Letter, "letter")
	a, err := b.Freeze()
	require.NoError(t, err)

	matches, err := New(a, WithSource("a\n  b"), WithResync(true)).Tokenize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedCharacter)

	assert.Equal(t, []string{"a", "INDENT(1)", "b", "UNINDENT(1)", "EOS"}, indentationSummary(matches))
}

func TestLexer_Next_debug(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(&nopWriter{})

	l := New(newAutomaton(t), WithSource("#"), WithDebug(true), WithLogger(logger))

	item, ok := l.Next()
	require.True(t, ok)
	assert.Error(t, item.Err)
	assert.Equal(t, 0, l.Position().Index)

	_, ok = l.Next()
	assert.False(t, ok)
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestError_Caret(t *testing.T) {
	tests := []struct {
		name   string
		source string
		index  int
		column int
		want   string
	}{
		{"first line", "ab #", 3, 3, "ab #\n   ^"},
		{"second line", "x\r\nab #\ncd", 6, 3, "ab #\n   ^"},
		{"tabs", "\ta#", 2, 2, "\ta#\n\t ^"},
		{"wide runes", "日本#", 6, 2, "日本#\n    ^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newError("f", tt.source, fsmlex.Position{Index: tt.index, Column: tt.column})
			assert.Equal(t, '#', err.Char)
			assert.Equal(t, tt.want, err.Caret())
		})
	}
}

func TestLexAll(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	a := newAutomaton(t)
	sources := make(map[string]string)
	for index := 0; index < 20; index++ {
		sources[fmt.Sprintf("src%02d", index)] = fmt.Sprintf("word %d other", index)
	}
	sources["broken"] = "ok ?"

	results, err := LexAll(context.Background(), a, sources, WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, results, len(sources))

	for index := 0; index < 20; index++ {
		name := fmt.Sprintf("src%02d", index)
		res := results[name]

		assert.NoError(t, res.Err)
		assert.Equal(t, name, res.Name)
		assert.Equal(t, []string{"word", fmt.Sprint(index), "other", "EOS"}, lexemes(res.Matches))
	}

	var lexErr *Error
	require.True(t, errors.As(results["broken"].Err, &lexErr))
	assert.Equal(t, "broken", lexErr.Filename)
	assert.Equal(t, '?', lexErr.Char)
}
