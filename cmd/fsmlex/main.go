// SPDX-License-Identifier: MIT

// fsmlex tokenizes JSON sources with the fsmlex JSON grammar.
package main

import (
	"context"
	"os"
	"os/signal"

	"gitlab.com/fisherprime/fsmlex/cmd/fsmlex/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := command.GetRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
