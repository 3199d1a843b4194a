// Command aritygen generates Go function and tuple types for every arity from
// 0 up to a configurable bound.
//
// Run without arguments it writes the function and tuple packages below
// ./gen; see aritygen --help for flags and the check and config subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"

	"github.com/sdboyer/aritygen/cmd/aritygen/cmd"
	"github.com/sdboyer/aritygen/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.NewRootCmd().ExecuteContext(ctx)
	stop()
	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
