package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/inventory/renderer"
	"github.com/google/subcommands"
)

type logCmd struct {
	head int
	tail int
	raw  bool
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list all transactions with their FIFO costing" }
func (*logCmd) Usage() string {
	return `inv log [-head <n>] [-tail <n>] [-raw]

  Lists the transactions with the running stock, the remaining quantity of
  each purchase, and the benefit, average cost and lot breakdown of each sale.
  A summary of the ledger follows.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
	f.BoolVar(&c.raw, "raw", false, "Print markdown instead of rendering it for the terminal.")
}

func (c *logCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	rows := w.ledger.Rows()
	if c.head > 0 && len(rows) > c.head {
		rows = rows[:c.head]
	}
	if c.tail > 0 && len(rows) > c.tail {
		rows = rows[len(rows)-c.tail:]
	}

	md := renderer.Log(rows) + "\n" + renderer.Summary(w.ledger.Totals())
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}

type lotsCmd struct {
	raw bool
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list purchase lots and what remains of them" }
func (*lotsCmd) Usage() string {
	return `inv lots [-raw]

  Lists the lots opened by purchases, oldest first, with the quantity
  consumed by sales and the quantity still available.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print markdown instead of rendering it for the terminal.")
}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	md := renderer.Lots(w.ledger)
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
