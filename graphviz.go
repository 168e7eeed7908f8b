// SPDX-License-Identifier: MIT
package fsmlex

import (
	"fmt"
	"strconv"
	"strings"
)

// GraphViz renders the Automaton's node graph in the DOT language.
//
// Terminal nodes are drawn as double circles labelled "id:kind", nodes with a callback get a
// trailing '*'. Edges carry their transition label.
func (a *Automaton[K]) GraphViz() string {
	var buffer strings.Builder

	buffer.WriteString("digraph fsm {\n")
	buffer.WriteString("\trankdir=LR;\n")

	for index := range a.nodes {
		buffer.WriteString("\t")
		buffer.WriteString(a.graphVizNode(&a.nodes[index]))
		buffer.WriteString(";\n")
	}

	for index := range a.transitions {
		for _, t := range a.transitions[index] {
			fmt.Fprintf(&buffer, "\t%d -> %d [label=%s];\n", t.From, t.To, strconv.Quote(t.Label))
		}
	}

	buffer.WriteString("}\n")

	return buffer.String()
}

func (a *Automaton[K]) graphVizNode(n *Node[K]) string {
	shape, label := "circle", strconv.Itoa(n.ID)
	if n.Terminal {
		shape = "doublecircle"
		label = fmt.Sprintf("%d:%v", n.ID, n.Kind)
	}
	if a.callbacks[n.ID] != nil {
		label += "*"
	}

	return fmt.Sprintf("%d [shape=%s label=%s]", n.ID, shape, strconv.Quote(label))
}
