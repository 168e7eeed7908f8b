// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Opts defines options for the Lexer's operations.
	Opts struct {
		Logger logrus.FieldLogger

		// Filename names the source in errors.
		Filename string
		Source   string

		// BufferSize is the capacity of the Item channel.
		BufferSize int
		// Workers is the [LexAll] worker pool size.
		Workers int

		Debug bool
		// Resync skips the offending rune of a lexical error & carries on scanning.
		Resync bool
	}

	// Option defines the Lexer functional option type.
	Option func(*Opts)
)

const (
	defBufferSize = 10
	defWorkers    = 4

	// DefFilename names sources lacking a filename.
	DefFilename = "<input>"
)

// NewOpts configures the lexer's Opts.
func NewOpts() *Opts {
	return &Opts{
		Logger:     logrus.New(),
		Filename:   DefFilename,
		BufferSize: defBufferSize,
		Workers:    defWorkers,
	}
}

// Validate populates missing Opts entries with defaults.
func (o *Opts) Validate() {
	if o.Logger == nil {
		o.Logger = logrus.New()
	}
	if o.Filename == "" {
		o.Filename = DefFilename
	}
	if o.BufferSize < 1 {
		o.BufferSize = defBufferSize
	}
	if o.Workers < 1 {
		o.Workers = defWorkers
	}
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(o *Opts) { o.Debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(o *Opts) { o.Logger = logger } }

// WithSource configures the source option.
func WithSource(source string) Option { return func(o *Opts) { o.Source = source } }

// WithFilename configures the filename option.
func WithFilename(name string) Option { return func(o *Opts) { o.Filename = name } }

// WithResync configures the resync option.
func WithResync(resync bool) Option { return func(o *Opts) { o.Resync = resync } }

// WithBufferSize configures the Item channel's capacity.
func WithBufferSize(size int) Option { return func(o *Opts) { o.BufferSize = size } }

// WithWorkers configures the worker pool size of [LexAll].
func WithWorkers(workers int) Option { return func(o *Opts) { o.Workers = workers } }
