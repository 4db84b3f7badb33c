package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vireolabs/thorlink"
	"github.com/vireolabs/thorlink/filter"
	"github.com/vireolabs/thorlink/revision"
	"github.com/vireolabs/thorlink/types"

	"github.com/urfave/cli/v3"
)

// printJSON renders a result to stdout. A nil result prints "null", echoing
// the node's own signal for "confirmed absent".
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

// statusCommand reports the node's sync progress, head, and finalized block.
func statusCommand(client *thorlink.Client) *cli.Command {
	return &cli.Command{
		Name:        "status",
		Description: "Print the node's chain status.",
		Usage:       "Prints sync progress, the current head, and the finalized block id.",
		Action: func(ctx context.Context, c *cli.Command) error {
			status, err := client.Status(ctx)
			if err != nil {
				return err
			}
			return printJSON(status)
		},
	}
}

// accountCommand prints an account's balance, energy, and code flag at a
// revision.
//
// Usage example:
//
//	thorlink account --address 0xABC... --revision best
func accountCommand(client *thorlink.Client) *cli.Command {
	return &cli.Command{
		Name:        "account",
		Description: "Print an account's state at a revision.",
		Usage:       "Prints balance, energy, and whether the account carries code.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Account address (0x-prefixed, 20 bytes)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "revision",
				Usage: "Block id, height, 'best', or 'finalized'",
				Value: "best",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			addr, err := types.ParseAddress(c.String("address"))
			if err != nil {
				return err
			}

			rev, err := revision.Parse(c.String("revision"))
			if err != nil {
				return err
			}

			account, err := client.Account(addr, rev).Get(ctx)
			if err != nil {
				return err
			}
			return printJSON(account)
		},
	}
}

// blockCommand prints the block at a revision, or null when the chain does
// not contain it.
func blockCommand(client *thorlink.Client) *cli.Command {
	return &cli.Command{
		Name:        "block",
		Description: "Print a block at a revision.",
		Usage:       "Prints the block header and contained transaction ids, or null if unknown.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "revision",
				Usage: "Block id, height, 'best', or 'finalized'",
				Value: "best",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			rev, err := revision.Parse(c.String("revision"))
			if err != nil {
				return err
			}

			block, err := client.Block(rev).Get(ctx)
			if err != nil {
				return err
			}
			return printJSON(block)
		},
	}
}

// transactionCommand prints a transaction, or its receipt with --receipt.
func transactionCommand(client *thorlink.Client) *cli.Command {
	return &cli.Command{
		Name:        "tx",
		Description: "Print a transaction or its receipt.",
		Usage:       "Prints the transaction (or receipt), or null while unknown or pending.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Transaction id (0x-prefixed, 32 bytes)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "receipt",
				Usage: "Print the receipt instead of the transaction",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := types.ParseBytes32(c.String("id"))
			if err != nil {
				return err
			}

			visitor := client.Transaction(id)
			if c.Bool("receipt") {
				receipt, err := visitor.Receipt(ctx)
				if err != nil {
					return err
				}
				return printJSON(receipt)
			}

			tx, err := visitor.Get(ctx)
			if err != nil {
				return err
			}
			return printJSON(tx)
		},
	}
}

// logsCommand searches indexed logs of either kind with range, order, and
// pagination flags.
//
// Usage example:
//
//	thorlink logs --kind event --address 0xDEF... --from 0 --to 100 --limit 5
func logsCommand(client *thorlink.Client) *cli.Command {
	return &cli.Command{
		Name:        "logs",
		Description: "Search indexed event or transfer logs.",
		Usage:       "Prints one page of matching logs in the configured order.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Log kind: event or transfer",
				Value: "event",
			},
			&cli.StringFlag{
				Name:  "address",
				Usage: "Contract address (event kind) or sender address (transfer kind)",
			},
			&cli.StringFlag{
				Name:  "unit",
				Usage: "Range unit: block or time",
				Value: "block",
			},
			&cli.Uint64Flag{
				Name:  "from",
				Usage: "Inclusive range lower bound",
			},
			&cli.Uint64Flag{
				Name:  "to",
				Usage: "Inclusive range upper bound",
			},
			&cli.BoolFlag{
				Name:  "desc",
				Usage: "Iterate newest-first instead of oldest-first",
			},
			&cli.Uint64Flag{
				Name:  "offset",
				Usage: "Number of matching logs to skip",
			},
			&cli.Uint64Flag{
				Name:  "limit",
				Usage: "Maximum page size",
				Value: 20,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var addr *types.Address
			if s := c.String("address"); s != "" {
				parsed, err := types.ParseAddress(s)
				if err != nil {
					return err
				}
				addr = &parsed
			}

			var rng *filter.Range
			if c.IsSet("from") || c.IsSet("to") {
				rng = &filter.Range{
					Unit: filter.Unit(c.String("unit")),
					From: c.Uint64("from"),
					To:   c.Uint64("to"),
				}
			}

			switch kind := c.String("kind"); kind {
			case "event":
				f := client.Events(types.EventCriteria{Address: addr})
				if rng != nil {
					f.Range(*rng)
				}
				if c.Bool("desc") {
					f.Desc()
				}

				events, err := f.Apply(ctx, c.Uint64("offset"), c.Uint64("limit"))
				if err != nil {
					return err
				}
				return printJSON(events)

			case "transfer":
				f := client.Transfers(types.TransferCriteria{Sender: addr})
				if rng != nil {
					f.Range(*rng)
				}
				if c.Bool("desc") {
					f.Desc()
				}

				transfers, err := f.Apply(ctx, c.Uint64("offset"), c.Uint64("limit"))
				if err != nil {
					return err
				}
				return printJSON(transfers)

			default:
				return fmt.Errorf("unknown log kind %q", kind)
			}
		},
	}
}

// watchCommand follows chain-head advances through the ticker, printing each
// new head until the count is reached or the context ends.
func watchCommand(client *thorlink.Client) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Follow chain-head advances.",
		Usage:       "Prints each new head summary as the chain progresses.",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "count",
				Usage: "Number of advances to print before exiting (0 = forever)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var (
				count  = c.Uint64("count")
				ticker = client.Ticker()
			)

			for printed := uint64(0); count == 0 || printed < count; printed++ {
				head, err := ticker.Next(ctx)
				if err != nil {
					return err
				}
				if err := printJSON(head); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
