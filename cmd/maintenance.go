package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/inventory/store"
	"github.com/google/subcommands"
)

// --- Recalc Command ---

type recalcCmd struct{}

func (*recalcCmd) Name() string     { return "recalc" }
func (*recalcCmd) Synopsis() string { return "recompute every lot and sale from the transaction log" }
func (*recalcCmd) Usage() string {
	return `inv recalc

  Replays the whole transaction log: lots are refilled and every sale is
  costed again. The ledger is saved afterwards.
`
}

func (*recalcCmd) SetFlags(f *flag.FlagSet) {}

func (*recalcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	w.ledger.Recalculate()
	if err := w.save(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recalculated %d transactions, stock is %s\n", w.ledger.Len(), w.ledger.Stock())
	return subcommands.ExitSuccess
}

// --- Query Command ---

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSON path against the stored ledger" }
func (*queryCmd) Usage() string {
	return `inv query <jsonpath>

  Evaluates a JSON path expression against the record stored for the ledger
  and prints the result as JSON.

Usage Examples:
# Remaining quantity per lot.
$ inv query '$.purchaseTrack'
# Comments of all sales.
$ inv query '$.transactions[?(@.type=="sale")].comment'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	result, err := query(ctx, w.store, w.cfg.Key, f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// query evaluates path against the raw record stored under key.
func query(ctx context.Context, s store.Store, key, path string) (any, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrNotExist) {
		return nil, fmt.Errorf("no ledger stored under %q", key)
	}
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("stored ledger %q is not JSON: %w", key, err)
	}
	result, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, fmt.Errorf("could not evaluate %q: %w", path, err)
	}
	return result, nil
}

// --- Reset Command ---

type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "delete the stored ledger" }
func (*resetCmd) Usage() string {
	return `inv reset -f

  Deletes the ledger from the store. The next command starts from an empty
  ledger. This cannot be undone.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "Confirm the deletion")
}

func (c *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		fmt.Fprintln(os.Stderr, "Error: reset deletes the ledger, use -f to confirm.")
		return subcommands.ExitUsageError
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	if err := w.store.Delete(ctx, w.cfg.Key); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted ledger %q\n", w.cfg.Key)
	return subcommands.ExitSuccess
}
