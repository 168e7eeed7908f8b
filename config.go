// SPDX-License-Identifier: MIT
package fsmlex

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type (
	// Config defines the scanning switches of an [Automaton].
	Config struct {
		// Logger for [Automaton] messages.
		Logger logrus.FieldLogger

		// Indentation is the indentation unit, used when IndentationAware is set.
		Indentation string

		// WhiteSpaces is the set of runes skipped when IgnoreWhiteSpace is set.
		WhiteSpaces []rune

		// StringDelimiter delimits literals added with [Builder.AddString].
		StringDelimiter rune

		Debug            bool
		IgnoreWhiteSpace bool
		IgnoreEOL        bool
		// AggregateEOL collapses consecutive line endings into a single [Builder.AddEOL] token.
		AggregateEOL     bool
		IndentationAware bool
	}

	// Option defines the [Builder] functional option type.
	Option func(*Config)
)

const (
	// DefaultStringDelimiter is the default [Config.StringDelimiter].
	DefaultStringDelimiter = '"'

	emptyRune rune = 0
)

// DefaultWhiteSpaces is the default [Config.WhiteSpaces] set.
var DefaultWhiteSpaces = []rune{' ', '\t'}

// DefConfig obtains the package's default [Config].
func DefConfig() *Config {
	return &Config{
		Logger:          logrus.New(),
		WhiteSpaces:     slices.Clone(DefaultWhiteSpaces),
		StringDelimiter: DefaultStringDelimiter,
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.WhiteSpaces == nil {
		c.WhiteSpaces = slices.Clone(DefaultWhiteSpaces)
	}
	if c.StringDelimiter == emptyRune {
		c.StringDelimiter = DefaultStringDelimiter
	}
}

// clone returns a deep copy, detaching the Config from the Builder that filled it.
func (c *Config) clone() *Config {
	cfg := *c
	cfg.WhiteSpaces = slices.Clone(c.WhiteSpaces)

	return &cfg
}

func (c *Config) isWhiteSpace(r rune) bool { return slices.Contains(c.WhiteSpaces, r) }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Config) { c.Logger = logger } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Config) { c.Debug = debug } }

// WithIgnoreWhiteSpace configures skipping of [Config.WhiteSpaces] before tokens.
func WithIgnoreWhiteSpace(ignore bool) Option {
	return func(c *Config) { c.IgnoreWhiteSpace = ignore }
}

// WithWhiteSpaces replaces the set of ignorable white space runes.
func WithWhiteSpaces(runes ...rune) Option {
	return func(c *Config) { c.WhiteSpaces = slices.Clone(runes) }
}

// WithIgnoreEOL configures skipping of line endings before tokens.
func WithIgnoreEOL(ignore bool) Option { return func(c *Config) { c.IgnoreEOL = ignore } }

// WithAggregateEOL configures the aggregation of consecutive line endings.
func WithAggregateEOL(aggregate bool) Option {
	return func(c *Config) { c.AggregateEOL = aggregate }
}

// WithIndentation enables indentation awareness with the given indentation unit.
func WithIndentation(unit string) Option {
	return func(c *Config) {
		c.IndentationAware = true
		c.Indentation = unit
	}
}

// WithStringDelimiter configures the delimiter used by [Builder.AddString].
func WithStringDelimiter(r rune) Option { return func(c *Config) { c.StringDelimiter = r } }
