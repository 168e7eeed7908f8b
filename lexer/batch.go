// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gitlab.com/fisherprime/fsmlex"
)

type (
	// Result holds the outcome of tokenizing a single source.
	Result[K fsmlex.Kind] struct {
		Name    string
		Matches []fsmlex.Match[K]
		Err     error
	}
)

const releaseTimeout = time.Second

// Batch errors.
var (
	ErrWorkerPool = errors.New("worker pool failure")
)

// LexAll tokenizes sources (keyed by name) concurrently, sharing the Automaton a between the
// workers of a pool sized by [WithWorkers].
//
// options apply to every source; the filename & source options are set per entry. The returned
// error only reports pool failures, lexical errors are held by each Result.
func LexAll[K fsmlex.Kind](ctx context.Context, a *fsmlex.Automaton[K], sources map[string]string, options ...Option) (results map[string]Result[K], err error) {
	opts := NewOpts()
	for _, opt := range options {
		opt(opts)
	}
	opts.Validate()

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrWorkerPool, err)
		return
	}
	defer func() {
		if e := pool.ReleaseTimeout(releaseTimeout); e != nil {
			opts.Logger.Warnf("lexer pool release: %v", e)
		}
	}()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	results = make(map[string]Result[K], len(sources))

	names := maps.Keys(sources)
	slices.Sort(names)

	for _, name := range names {
		name := name
		lexerOptions := append(slices.Clone(options), WithFilename(name), WithSource(sources[name]))

		wg.Add(1)
		if err = pool.Submit(func() {
			defer wg.Done()

			matches, e := New(a, lexerOptions...).Tokenize(ctx)

			mu.Lock()
			defer mu.Unlock()
			results[name] = Result[K]{Name: name, Matches: matches, Err: e}
		}); err != nil {
			wg.Done()
			err = fmt.Errorf("%w: %s: %w", ErrWorkerPool, name, err)

			break
		}

		if opts.Debug {
			opts.Logger.Debugf("lexer batch: submitted %s", name)
		}
	}
	wg.Wait()

	return
}
