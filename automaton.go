// SPDX-License-Identifier: MIT
package fsmlex

// REF: https://github.com/b3b00/csly (FSMLexer)
// REF: https://docs.python.org/3/reference/lexical_analysis.html#indentation

import (
	"strings"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type (
	// Automaton is a frozen finite-state lexer.
	//
	// Synchronization is unnecessary: an Automaton is never modified after [Builder.Freeze], so
	// any number of goroutines may scan with it, each with its own [Position].
	Automaton[K Kind] struct {
		cfg *Config

		// nodes, transitions & callbacks are indexed by node id.
		nodes       []Node[K]
		transitions [][]Transition
		callbacks   []Callback[K]
	}
)

// Config retrieves a copy of the Automaton's Config.
func (a *Automaton[K]) Config() Config { return *a.cfg.clone() }

// Node retrieves the node with the given id.
func (a *Automaton[K]) Node(id int) (node Node[K], ok bool) {
	if id < 0 || id >= len(a.nodes) {
		return
	}

	return a.nodes[id], true
}

// Nodes lists the Automaton's nodes by id.
func (a *Automaton[K]) Nodes() []Node[K] { return slices.Clone(a.nodes) }

// Transitions lists the transitions leaving the node id, in evaluation order.
func (a *Automaton[K]) Transitions(id int) []Transition {
	if id < 0 || id >= len(a.transitions) {
		return nil
	}

	return slices.Clone(a.transitions[id])
}

// HasCallback reports whether a Callback is registered for the node id.
func (a *Automaton[K]) HasCallback(id int) bool {
	return id >= 0 && id < len(a.callbacks) && a.callbacks[id] != nil
}

// Kinds lists the distinct token kinds of the Automaton's terminal nodes, sorted.
func (a *Automaton[K]) Kinds() (kinds []K) {
	for index := range a.nodes {
		if a.nodes[index].Terminal {
			kinds = append(kinds, a.nodes[index].Kind)
		}
	}
	slices.Sort(kinds)

	return slices.Compact(kinds)
}

// Next returns the node reached from the node id on r, with lexeme as the accumulated text.
func (a *Automaton[K]) Next(id int, r rune, lexeme string) (next int, ok bool) {
	if id < 0 || id >= len(a.transitions) {
		return NoNode, false
	}

	return a.move(id, r, lexeme)
}

func (a *Automaton[K]) move(id int, r rune, lexeme string) (int, bool) {
	transitions := a.transitions[id]
	for index := range transitions {
		if transitions[index].Match(r, lexeme) {
			return transitions[index].To, true
		}
	}

	return NoNode, false
}

// Scan matches a single token of source starting at pos, returning the Match & the Position
// to resume from.
//
// The longest lexeme reaching a terminal node wins. Scan never fails with an error: the
// returned Match is either a token, an indentation change, the end of the stream
// ([Match.EOS]) or a lexical failure holding the offending rune, in which case the returned
// Position points at that rune.
//
// Blank lines never change the indentation level. At the end of input the EOS Match keeps the
// current indentation level; closing the open blocks is left to the caller.
func (a *Automaton[K]) Scan(source string, pos Position) (Match[K], Position) {
	if a.cfg.IndentationAware {
		m, ok := a.indent(source, pos)
		if ok {
			return m, m.End
		}
		pos = m.End
	}

	for {
		var eol bool
		if pos, eol = a.skipIgnored(source, pos); !a.cfg.IndentationAware || !eol {
			break
		}

		// A new line begins: check its indentation before anything else.
		m, ok := a.indent(source, pos)
		if ok {
			return m, m.End
		}
		pos = m.End
	}

	if pos.Index >= len(source) {
		return eosMatch[K](pos), pos
	}

	m := a.run(source, pos)
	if a.cfg.Debug {
		a.logMatch(&m)
	}

	return m, m.End
}

// run walks the node graph from the StartNode.
func (a *Automaton[K]) run(source string, pos Position) Match[K] {
	start := pos
	start.StartOfLine = false

	var (
		best  Match[K]
		found bool

		node = StartNode
		prev = pos
	)

	for pos.Index < len(source) {
		r, w := utf8.DecodeRuneInString(source[pos.Index:])

		next, ok := a.move(node, r, source[start.Index:pos.Index+w])
		if !ok {
			break
		}

		node, prev = next, pos
		pos.advance(source, r, w)
		pos.StartOfLine = false

		// Keep going past terminal nodes: the last one reached is the longest match.
		if n := &a.nodes[node]; n.Terminal {
			found = true
			best = Match[K]{
				Success:    true,
				NodeID:     node,
				Kind:       n.Kind,
				Start:      start,
				End:        pos,
				Length:     pos.Index - start.Index,
				LineEnding: n.LineEnding,
			}
		}
	}

	if !found {
		if pos.Index >= len(source) {
			// Ran out of input mid-token, the last rune read is the culprit.
			pos = prev
		}

		return a.failure(source, pos)
	}

	// Backtrack to the end of the longest match.
	best.Lexeme = source[best.Start.Index:best.End.Index]
	if best.LineEnding {
		best.End.StartOfLine = true
	}

	if fn := a.callbacks[best.NodeID]; fn != nil {
		resl := fn(best)
		if resl.Success && resl.End.Index <= start.Index {
			// A zero length success would stall the caller.
			return a.failure(source, start)
		}

		return resl
	}

	return best
}

func (a *Automaton[K]) failure(source string, pos Position) Match[K] {
	pos.StartOfLine = false
	_, w := utf8.DecodeRuneInString(source[pos.Index:])

	return Match[K]{
		NodeID: NoNode,
		Lexeme: source[pos.Index : pos.Index+w],
		Length: w,
		Start:  pos,
		End:    pos,
	}
}

// skipIgnored consumes ignorable white space & line endings.
//
// When indentation aware, skipping stops after the first line ending so that the new line's
// indentation can be checked.
func (a *Automaton[K]) skipIgnored(source string, pos Position) (Position, bool) {
	var eol bool

	for pos.Index < len(source) && !(eol && a.cfg.IndentationAware) {
		r, w := utf8.DecodeRuneInString(source[pos.Index:])
		ignorable := a.cfg.IgnoreWhiteSpace && a.cfg.isWhiteSpace(r)

		if n := eolLength(source, pos.Index); n > 0 {
			if !a.cfg.IgnoreEOL && !ignorable {
				break
			}

			pos.Index += n
			pos.newLine()
			pos.StartOfLine, eol = true, true

			continue
		}

		if !ignorable {
			break
		}

		pos.Index += w
		pos.Column++
	}

	return pos, eol
}

// indentation counts the consecutive indentation units starting at index.
func (a *Automaton[K]) indentation(source string, index int) (count int) {
	unit := a.cfg.Indentation
	for strings.HasPrefix(source[index:], unit) {
		count++
		index += len(unit)
	}

	return
}

// indent handles the indentation of a line start, returning ok with an Indent or Unindent
// Match on a level change.
//
// Otherwise the returned Match only carries, as End, the Position past the unchanged
// indentation.
func (a *Automaton[K]) indent(source string, pos Position) (m Match[K], ok bool) {
	m.End = pos
	if !pos.StartOfLine || pos.Index >= len(source) {
		return
	}

	count := a.indentation(source, pos.Index)
	width := count * len(a.cfg.Indentation)

	end := pos
	end.Index += width
	end.Column += count * utf8.RuneCountInString(a.cfg.Indentation)

	if a.blank(source, end.Index) {
		// Blank lines never open or close blocks.
		end.Indentation = pos.Indentation
		m.End = end
		return
	}

	end.StartOfLine = false
	end.Indentation = count

	switch {
	case count > pos.Indentation:
		return indentMatch[K](SpecialIndent, count-pos.Indentation, pos, end, source), true
	case count < pos.Indentation:
		return indentMatch[K](SpecialUnindent, pos.Indentation-count, pos, end, source), true
	default:
		m.End = end
		return
	}
}

// blank reports whether the line holds nothing but ignorable runes from index onwards.
func (a *Automaton[K]) blank(source string, index int) bool {
	for index < len(source) {
		if eolLength(source, index) > 0 {
			return a.cfg.IgnoreEOL
		}

		r, w := utf8.DecodeRuneInString(source[index:])
		if !a.cfg.IgnoreWhiteSpace || !a.cfg.isWhiteSpace(r) {
			return false
		}
		index += w
	}

	return true
}

func (a *Automaton[K]) logMatch(m *Match[K]) {
	logger := a.cfg.Logger.WithFields(logrus.Fields{"position": m.Start.String(), "node": m.NodeID})

	if !m.Success {
		logger.Debugf("fsm failure: %s", spew.Sdump(*m))
		return
	}
	logger.Debugf("fsm match: %v %q", m.Kind, m.Lexeme)
}
