// SPDX-License-Identifier: MIT
package fsmlex

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/exp/slices"
)

type (
	// Builder collects the nodes, transitions & callbacks of an [Automaton].
	//
	// A Builder is single use: [Builder.Freeze] hands its contents over to an immutable
	// [Automaton] & any later mutation panics with [ErrFrozen].
	Builder[K Kind] struct {
		cfg *Config

		nodes     []Node[K]
		edges     []Transition
		callbacks map[int]Callback[K]

		// literals indexes the single-rune transitions added by AddLiteral, per node.
		literals map[int]map[rune]int

		frozen bool
	}
)

// StartNode is the node every scan starts from.
const StartNode = 0

// Automaton building errors.
var (
	ErrInvalidAutomaton = errors.New("invalid automaton")

	ErrNoStartNode         = errors.New("missing start node")
	ErrUnknownNode         = errors.New("unknown node")
	ErrCallbackNotTerminal = errors.New("callback on a non-terminal node")
	ErrEmptyIndentation    = errors.New("empty indentation unit")

	ErrFrozen           = errors.New("builder already frozen")
	ErrDuplicateLiteral = errors.New("literal registered twice")
)

// NewBuilder instantiates a Builder.
func NewBuilder[K Kind](options ...Option) *Builder[K] {
	cfg := DefConfig()
	for _, opt := range options {
		opt(cfg)
	}
	cfg.Validate()

	return &Builder[K]{
		cfg:       cfg,
		callbacks: make(map[int]Callback[K]),
		literals:  make(map[int]map[rune]int),
	}
}

// Config retrieves the Builder's Config.
func (b *Builder[K]) Config() *Config { return b.cfg }

// Len retrieves the number of nodes.
func (b *Builder[K]) Len() int { return len(b.nodes) }

func (b *Builder[K]) mutate() {
	if b.frozen {
		panic(ErrFrozen)
	}
}

// AddNode adds a non-terminal node, returning its id.
//
// The first node added is the [StartNode].
func (b *Builder[K]) AddNode() int {
	b.mutate()

	id := len(b.nodes)
	b.nodes = append(b.nodes, Node[K]{ID: id})

	return id
}

// AddTerminal adds a terminal node reporting kind, returning its id.
func (b *Builder[K]) AddTerminal(kind K) int {
	id := b.AddNode()
	b.Mark(id, kind)

	return id
}

// Mark makes the node id terminal, reporting kind.
func (b *Builder[K]) Mark(id int, kind K) {
	b.mutate()

	b.nodes[id].Terminal = true
	b.nodes[id].Kind = kind
}

// MarkLineEnding flags the node id as ending a line.
func (b *Builder[K]) MarkLineEnding(id int) {
	b.mutate()

	b.nodes[id].LineEnding = true
}

// AddTransition adds an edge from one node to another guarded by p.
//
// Transitions leaving a node are tried in registration order & the first match wins:
// overlapping predicates must be added most specific first. Node ids may reference nodes
// added later; they are checked by [Builder.Freeze].
func (b *Builder[K]) AddTransition(from, to int, p Predicate, label string) {
	b.mutate()

	b.edges = append(b.edges, Transition{From: from, To: to, Match: p, Label: label})
}

// SetCallback registers fn for matches accepted on node id, replacing any previous one.
func (b *Builder[K]) SetCallback(id int, fn Callback[K]) {
	b.mutate()

	b.callbacks[id] = fn
}

// Freeze validates the Builder's contents & returns the resulting immutable Automaton.
func (b *Builder[K]) Freeze() (a *Automaton[K], err error) {
	b.mutate()

	defer func() {
		if err != nil {
			if b.cfg.Debug {
				b.cfg.Logger.Debugf("rejected automaton: %s", spew.Sdump(b.nodes))
			}

			err = fmt.Errorf("%w: %w", ErrInvalidAutomaton, err)
		}
	}()

	if err = b.validate(); err != nil {
		return
	}

	a = &Automaton[K]{
		cfg:         b.cfg.clone(),
		nodes:       slices.Clone(b.nodes),
		transitions: make([][]Transition, len(b.nodes)),
		callbacks:   make([]Callback[K], len(b.nodes)),
	}
	// Grouping preserves the registration order of each node's transitions.
	for _, t := range b.edges {
		a.transitions[t.From] = append(a.transitions[t.From], t)
	}
	for id, fn := range b.callbacks {
		a.callbacks[id] = fn
	}

	b.frozen = true

	if b.cfg.Debug {
		b.cfg.Logger.Debugf("automaton frozen: %d nodes", len(a.nodes))
	}

	return
}

func (b *Builder[K]) validate() error {
	if len(b.nodes) < 1 {
		return ErrNoStartNode
	}

	if b.cfg.IndentationAware && b.cfg.Indentation == "" {
		return ErrEmptyIndentation
	}

	for _, t := range b.edges {
		if !b.hasNode(t.From) || !b.hasNode(t.To) {
			return fmt.Errorf("%w: transition %d -> %d", ErrUnknownNode, t.From, t.To)
		}
	}

	for id, fn := range b.callbacks {
		switch {
		case !b.hasNode(id):
			return fmt.Errorf("%w: callback on %d", ErrUnknownNode, id)
		case fn != nil && !b.nodes[id].Terminal:
			return fmt.Errorf("%w: %d", ErrCallbackNotTerminal, id)
		}
	}

	return nil
}

func (b *Builder[K]) hasNode(id int) bool { return id >= 0 && id < len(b.nodes) }

// start returns the StartNode, adding it if missing.
func (b *Builder[K]) start() int {
	if len(b.nodes) < 1 {
		return b.AddNode()
	}

	return StartNode
}

// AddLiteral adds the exact text to the Automaton, reporting kind, returning the terminal
// node's id.
//
// Literals share prefixes with previously added literals ("=" & "==" share the first node).
// Registering the same text twice panics with [ErrDuplicateLiteral].
func (b *Builder[K]) AddLiteral(kind K, text string) int {
	node := b.start()

	for _, r := range text {
		next, ok := b.literals[node][r]
		if !ok {
			next = b.AddNode()
			b.AddTransition(node, next, Is(r), string(r))

			if b.literals[node] == nil {
				b.literals[node] = make(map[rune]int)
			}
			b.literals[node][r] = next
		}
		node = next
	}

	if node == StartNode || b.nodes[node].Terminal {
		panic(fmt.Errorf("%w: %q", ErrDuplicateLiteral, text))
	}
	b.Mark(node, kind)

	return node
}

// AddString adds a literal delimited by [Config.StringDelimiter], reporting kind, returning
// the terminal node's id.
//
// A backslash escapes the rune following it. The lexeme includes the delimiters; register a
// [Callback] on the returned node to decode it.
func (b *Builder[K]) AddString(kind K) int {
	start, delimiter := b.start(), b.cfg.StringDelimiter

	body := b.AddNode()
	escape := b.AddNode()
	end := b.AddTerminal(kind)

	b.AddTransition(start, body, Is(delimiter), string(delimiter))
	b.AddTransition(body, escape, Is('\\'), `\\`)
	b.AddTransition(body, end, Is(delimiter), string(delimiter))
	b.AddTransition(body, body, Any, "any")
	b.AddTransition(escape, body, Any, "any")

	return end
}

// AddEOL adds line endings ("\n", "\r\n" & '\r') as tokens reporting kind, returning the
// terminal node's id.
//
// With [Config.AggregateEOL], consecutive line endings form a single token.
func (b *Builder[K]) AddEOL(kind K) int {
	start := b.start()

	cr := b.AddTerminal(kind)
	lf := b.AddTerminal(kind)
	b.MarkLineEnding(cr)
	b.MarkLineEnding(lf)

	b.AddTransition(start, lf, Is('\n'), `\n`)
	b.AddTransition(start, cr, Is('\r'), `\r`)
	b.AddTransition(cr, lf, Is('\n'), `\n`)

	if b.cfg.AggregateEOL {
		b.AddTransition(lf, lf, Is('\n'), `\n`)
		b.AddTransition(lf, cr, Is('\r'), `\r`)
		b.AddTransition(cr, cr, Is('\r'), `\r`)
	}

	return lf
}
