// SPDX-License-Identifier: MIT
package lexer

// REF: https://go.dev/talks/2011/lex.slide

import (
	"context"
	"errors"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/fsmlex"
)

type (
	// Lexer drives an [fsmlex.Automaton] over a source, one Match at a time.
	//
	// A Lexer scans its source once; [Lexer.Lex], [Lexer.Next] & [Lexer.Tokenize] share the same
	// cursor. The Automaton may be shared with other Lexers.
	Lexer[K fsmlex.Kind] struct {
		opts      *Opts
		automaton *fsmlex.Automaton[K]

		// c is a channel for communicating lexed Items.
		c chan Item[K]

		pos  fsmlex.Position
		done bool
	}
)

// New creates a Lexer for the Automaton a.
func New[K fsmlex.Kind](a *fsmlex.Automaton[K], options ...Option) *Lexer[K] {
	opts := NewOpts()
	for _, opt := range options {
		opt(opts)
	}
	opts.Validate()

	return &Lexer[K]{
		opts:      opts,
		automaton: a,
		c:         make(chan Item[K], opts.BufferSize),
		pos:       fsmlex.NewPosition(),
	}
}

// Logger obtains the logger.
func (l *Lexer[K]) Logger() logrus.FieldLogger { return l.opts.Logger }

// Position obtains the cursor the next scan starts from.
func (l *Lexer[K]) Position() fsmlex.Position { return l.pos }

// Next scans the next Item, ok is false once lexing has ended.
//
// Blocks still indented at the end of input are closed by a single Unindent Item preceding the
// end of stream Item. Lexing ends after the end of stream Item or, unless resynchronizing, after the first lexical
// error. Resynchronizing drops the lexeme of a failed Match, or its offending rune when empty
// handed.
func (l *Lexer[K]) Next() (item Item[K], ok bool) {
	if l.done {
		return
	}

	source := l.opts.Source
	m, next := l.automaton.Scan(source, l.pos)
	item.Match, ok = m, true

	switch {
	case m.EOS && next.Indentation > 0:
		// Close the blocks left open at the end of input, EOS follows.
		item.Match, l.pos = fsmlex.CloseIndentation[K](next)
	case m.EOS:
		l.done = true
	case m.IsError():
		item.Err = newError(l.opts.Filename, source, m.Start)

		if l.opts.Debug {
			l.opts.Logger.WithField("file", l.opts.Filename).Debugf("lexer state: %s", spew.Sdump(l.pos))
		}

		if !l.opts.Resync {
			l.done = true
			break
		}
		if next.Index <= m.Start.Index {
			next.Skip(source)
		}
		fallthrough
	default:
		l.pos = next
	}

	return
}

// Lex lexes the source, sending Items over the Lexer's channel until lexing ends or ctx is
// done; the channel is then closed.
func (l *Lexer[K]) Lex(ctx context.Context) {
	defer close(l.c)

	for {
		select {
		case <-ctx.Done():
			l.emitError(ctx.Err())
			return
		default:
		}

		item, ok := l.Next()
		if !ok {
			return
		}

		select {
		case l.c <- item:
		case <-ctx.Done():
			l.emitError(ctx.Err())
			return
		}
	}
}

// emitError sends err without blocking on a full channel.
func (l *Lexer[K]) emitError(err error) {
	l.done = true

	select {
	case l.c <- Item[K]{Err: err}:
	default:
		l.opts.Logger.Warnf("lexer %s: dropped error: %v", l.opts.Filename, err)
	}
}

// Item return a lexed Item from the Lexer's channel.
func (l *Lexer[K]) Item() (i Item[K], ok bool) {
	i, ok = <-l.c
	return
}

// Tokenize scans the whole source, returning the Matches (the end of stream Match included)
// along with the lexical errors.
//
// When resynchronizing every lexical error is reported, joined; otherwise Tokenize stops at the
// first one.
func (l *Lexer[K]) Tokenize(ctx context.Context) (matches []fsmlex.Match[K], err error) {
	var errs []error

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			errs = append(errs, ctxErr)
			break
		}

		item, ok := l.Next()
		if !ok {
			break
		}

		if item.Err != nil {
			errs = append(errs, item.Err)
			continue
		}
		matches = append(matches, item.Match)
	}

	switch len(errs) {
	case 0:
	case 1:
		err = errs[0]
	default:
		err = errors.Join(errs...)
	}

	return
}
