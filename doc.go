// SPDX-License-Identifier: MIT

/*
Package fsmlex implements the tokenizing core of a lexer generator: a finite-state automaton
converting source text into typed tokens.

An [Automaton] is built once through a [Builder] (nodes, ordered transitions guarded by
[Predicate]s, per-node [Callback]s) then frozen; it is immutable & may be shared by any number
of concurrent scans.

Scanning is a pull operation: [Automaton.Scan] takes the source & a [Position] and returns a
single [Match] along with the Position to resume from. The caller loops until a Match with EOS
set is returned:

	pos := fsmlex.NewPosition()
	for {
		m, next := a.Scan(source, pos)
		if m.EOS || m.IsError() {
			break
		}
		// use m
		pos = next
	}

Matching is maximal munch: the walk keeps following transitions past terminal nodes & the
last terminal node reached wins, the cursor backtracking to the end of that match.

When indentation aware (see [WithIndentation]), the line starts are checked for changes of
indentation level, reported as Indent & Unindent matches outside of the node graph.
*/
package fsmlex
