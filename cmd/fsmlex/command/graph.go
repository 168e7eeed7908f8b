// SPDX-License-Identifier: MIT
package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/fsmlex"
	"gitlab.com/fisherprime/fsmlex/grammar/jsonlex"
)

// AddGraphCommand adds the graph command to root.
func AddGraphCommand(root *cobra.Command, fc *Command) {
	root.AddCommand(&cobra.Command{
		Use:   "graph",
		Short: "Print the JSON automaton in the GraphViz DOT language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := jsonlex.New(fsmlex.WithLogger(fc.logger), fsmlex.WithDebug(fc.debug()))
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), a.GraphViz())

			return err
		},
	})
}
