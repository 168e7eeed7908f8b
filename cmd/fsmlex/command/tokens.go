// SPDX-License-Identifier: MIT
package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/fsmlex"
	"gitlab.com/fisherprime/fsmlex/grammar/jsonlex"
	"gitlab.com/fisherprime/fsmlex/lexer"
)

type (
	token struct {
		Position string       `json:"position" yaml:"position"`
		Kind     jsonlex.Kind `json:"kind" yaml:"kind"`
		Lexeme   string       `json:"lexeme" yaml:"lexeme"`
		Value    any          `json:"value,omitempty" yaml:"value,omitempty"`
	}

	fileTokens struct {
		File   string   `json:"file" yaml:"file"`
		Tokens []token  `json:"tokens" yaml:"tokens"`
		Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	}
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const stdinName = "-"

// Tokens command errors.
var (
	ErrUnknownOutput = errors.New("unknown output format")
	ErrLexical       = errors.New("lexical errors")
)

// AddTokensCommand adds the tokens command to root.
func AddTokensCommand(root *cobra.Command, fc *Command) {
	cmd := &cobra.Command{
		Use:   "tokens [files...]",
		Short: "Tokenize JSON files, or the standard input when none is given",
		RunE:  fc.runTokens,
	}

	fs := cmd.Flags()
	fs.StringP("output", "o", OutputText, "Output format: text, json or yaml")
	fs.Bool("resync", false, "Skip unexpected characters instead of stopping")
	fs.Int("workers", 4, "Number of files tokenized concurrently")
	fc.bind(fs, "output", "resync", "workers")

	root.AddCommand(cmd)
}

func (fc *Command) runTokens(cmd *cobra.Command, args []string) (err error) {
	output := fc.v.GetString("output")
	switch output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutput, output)
	}

	names, sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return
	}

	a, err := jsonlex.New(fsmlex.WithLogger(fc.logger), fsmlex.WithDebug(fc.debug()))
	if err != nil {
		return
	}

	results, err := lexer.LexAll(cmd.Context(), a, sources,
		lexer.WithLogger(fc.logger),
		lexer.WithDebug(fc.debug()),
		lexer.WithResync(fc.v.GetBool("resync")),
		lexer.WithWorkers(fc.v.GetInt("workers")),
	)
	if err != nil {
		return
	}

	var (
		files  = make([]fileTokens, 0, len(names))
		failed int
	)
	for _, name := range names {
		res := results[name]
		files = append(files, newFileTokens(name, res))

		if res.Err != nil {
			failed++
			reportErrors(cmd.ErrOrStderr(), res.Err)
		}
	}

	if err = writeTokens(cmd.OutOrStdout(), output, files); err != nil {
		return
	}

	if failed > 0 {
		err = fmt.Errorf("%w: %d of %d sources", ErrLexical, failed, len(names))
	}

	return
}

// readSources reads the named files, or r when there are none.
func readSources(r io.Reader, args []string) (names []string, sources map[string]string, err error) {
	sources = make(map[string]string)

	if len(args) < 1 {
		data, e := io.ReadAll(r)
		if e != nil {
			err = fmt.Errorf("reading standard input: %w", e)
			return
		}
		sources[stdinName] = string(data)

		return []string{stdinName}, sources, nil
	}

	for _, name := range args {
		if _, ok := sources[name]; ok {
			continue
		}

		data, e := os.ReadFile(name)
		if e != nil {
			err = e
			return
		}
		names = append(names, name)
		sources[name] = string(data)
	}

	return
}

func newFileTokens(name string, res lexer.Result[jsonlex.Kind]) fileTokens {
	ft := fileTokens{File: name, Tokens: make([]token, 0, len(res.Matches))}

	for _, m := range res.Matches {
		if m.EOS {
			continue
		}

		ft.Tokens = append(ft.Tokens, token{
			Position: m.Start.String(),
			Kind:     m.Kind,
			Lexeme:   m.Lexeme,
			Value:    m.Value,
		})
	}

	for _, err := range unwrapErrors(res.Err) {
		ft.Errors = append(ft.Errors, err.Error())
	}

	return ft
}

func unwrapErrors(err error) []error {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return []error{err}
}

// reportErrors writes the errors, lexical ones along with their caret.
func reportErrors(w io.Writer, err error) {
	for _, e := range unwrapErrors(err) {
		var lexErr *lexer.Error
		if errors.As(e, &lexErr) {
			fmt.Fprintf(w, "%v\n%s\n", lexErr, lexErr.Caret())
			continue
		}
		fmt.Fprintln(w, e)
	}
}

func writeTokens(w io.Writer, output string, files []fileTokens) error {
	switch output {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(files)
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(files); err != nil {
			return err
		}

		return encoder.Close()
	default:
		for _, ft := range files {
			for _, t := range ft.Tokens {
				if _, err := fmt.Fprintf(w, "%s:%s\t%v\t%q\n", ft.File, t.Position, t.Kind, t.Lexeme); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
