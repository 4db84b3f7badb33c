// Package cli exposes the SDK as a command-line tool, mainly for poking at a
// node during development: one-shot chain queries, log searches, and a head
// follower built on the ticker.
package cli

import (
	"context"
	"os"

	"github.com/vireolabs/thorlink"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the thorlink CLI application.
//
// Registered commands:
//
//   - `status`: Prints the node's chain status.
//   - `account`: Prints an account's state at a revision.
//   - `block`: Prints a block at a revision.
//   - `tx`: Prints a transaction or its receipt.
//   - `logs`: Searches indexed event or transfer logs.
//   - `watch`: Follows chain-head advances.
func Run(ctx context.Context, client *thorlink.Client) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "thorlink",
		Description:           "Command-line interface for querying a Thor-style chain node.",
		Usage:                 "thorlink [command] [flags]",
		Commands: []*cli.Command{
			statusCommand(client),
			accountCommand(client),
			blockCommand(client),
			transactionCommand(client),
			logsCommand(client),
			watchCommand(client),
		},
	}

	return app.Run(ctx, os.Args)
}
