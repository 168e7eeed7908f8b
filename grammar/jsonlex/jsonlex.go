// SPDX-License-Identifier: MIT

// Package jsonlex defines a JSON lexical grammar on top of fsmlex.
package jsonlex

// REF: https://www.json.org/json-en.html

import (
	"encoding/json"
	"errors"
	"strconv"

	"gitlab.com/fisherprime/fsmlex"
)

var keywords = map[string]Kind{
	"true":  True,
	"false": False,
	"null":  Null,
}

var punctuation = []struct {
	text string
	kind Kind
}{
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBracket},
	{"]", RBracket},
	{":", Colon},
	{",", Comma},
}

var (
	identStart = fsmlex.Or(fsmlex.Letter, fsmlex.Is('_'))
	identPart  = fsmlex.Or(fsmlex.LetterOrDigit, fsmlex.Is('_'))
	exponent   = fsmlex.In("eE")
	sign       = fsmlex.In("+-")
)

// New builds the JSON Automaton.
//
// White space & line endings are ignored; options are applied after these defaults.
// Matches carry decoded values: a string for String, an int64 for Int, a float64 for Double, a
// bool for True & False.
func New(options ...fsmlex.Option) (*fsmlex.Automaton[Kind], error) {
	b := fsmlex.NewBuilder[Kind](append([]fsmlex.Option{
		fsmlex.WithIgnoreWhiteSpace(true),
		fsmlex.WithWhiteSpaces(' ', '\t'),
		fsmlex.WithIgnoreEOL(true),
		fsmlex.WithStringDelimiter('"'),
	}, options...)...)
	start := b.AddNode()

	for _, p := range punctuation {
		b.AddLiteral(p.kind, p.text)
	}

	addNumbers(b, start)

	ident := b.AddTerminal(Identifier)
	b.AddTransition(start, ident, identStart, "[a-zA-Z_]")
	b.AddTransition(ident, ident, identPart, "[a-zA-Z0-9_]")
	b.SetCallback(ident, keyword)

	b.SetCallback(b.AddString(String), unquote)

	return b.Freeze()
}

// addNumbers adds `-?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`.
func addNumbers(b *fsmlex.Builder[Kind], start int) {
	minus := b.AddNode()
	integer := b.AddTerminal(Int)
	dot := b.AddNode()
	fraction := b.AddTerminal(Double)
	exp := b.AddNode()
	expSign := b.AddNode()
	expDigits := b.AddTerminal(Double)

	b.AddTransition(start, minus, fsmlex.Is('-'), "-")
	b.AddTransition(start, integer, fsmlex.Digit, "[0-9]")
	b.AddTransition(minus, integer, fsmlex.Digit, "[0-9]")
	b.AddTransition(integer, integer, fsmlex.Digit, "[0-9]")

	b.AddTransition(integer, dot, fsmlex.Is('.'), ".")
	b.AddTransition(dot, fraction, fsmlex.Digit, "[0-9]")
	b.AddTransition(fraction, fraction, fsmlex.Digit, "[0-9]")

	b.AddTransition(integer, exp, exponent, "[eE]")
	b.AddTransition(fraction, exp, exponent, "[eE]")
	b.AddTransition(exp, expSign, sign, "[+-]")
	b.AddTransition(exp, expDigits, fsmlex.Digit, "[0-9]")
	b.AddTransition(expSign, expDigits, fsmlex.Digit, "[0-9]")
	b.AddTransition(expDigits, expDigits, fsmlex.Digit, "[0-9]")

	b.SetCallback(integer, parseInt)
	b.SetCallback(fraction, parseDouble)
	b.SetCallback(expDigits, parseDouble)
}

func keyword(m fsmlex.Match[Kind]) fsmlex.Match[Kind] {
	kind, ok := keywords[m.Lexeme]
	if !ok {
		return m
	}

	m.Kind = kind
	if kind != Null {
		m.Value = kind == True
	}

	return m
}

// parseInt decodes integers, those overflowing an int64 become Doubles.
func parseInt(m fsmlex.Match[Kind]) fsmlex.Match[Kind] {
	v, err := strconv.ParseInt(m.Lexeme, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		m.Kind = Double
		return parseDouble(m)
	}
	m.Value, m.Success = v, err == nil

	return m
}

func parseDouble(m fsmlex.Match[Kind]) fsmlex.Match[Kind] {
	v, err := strconv.ParseFloat(m.Lexeme, 64)
	m.Value, m.Success = v, err == nil

	return m
}

// unquote decodes the string's JSON escape sequences, rejecting the invalid ones.
func unquote(m fsmlex.Match[Kind]) fsmlex.Match[Kind] {
	var v string
	if err := json.Unmarshal([]byte(m.Lexeme), &v); err != nil {
		m.Success = false
		return m
	}
	m.Value = v

	return m
}
