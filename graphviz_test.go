// SPDX-License-Identifier: MIT
package fsmlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomaton_GraphViz(t *testing.T) {
	b := NewBuilder[testKind]()
	b.AddLiteral(tkAssign, "=")
	eq := b.AddLiteral(tkEq, "==")
	b.SetCallback(eq, func(m Match[testKind]) Match[testKind] { return m })

	a, err := b.Freeze()
	require.NoError(t, err)

	want := `digraph fsm {
	rankdir=LR;
	0 [shape=circle label="0"];
	1 [shape=doublecircle label="1:Assign"];
	2 [shape=doublecircle label="2:Eq*"];
	0 -> 1 [label="="];
	1 -> 2 [label="="];
}
`
	assert.Equal(t, want, a.GraphViz())
}
