package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/inventory"
	"github.com/google/subcommands"
)

// record submits a new transaction to the ledger and saves it.
func record(ctx context.Context, kind inventory.Kind, quantity, price string) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	q, err := inventory.ParseQuantity(quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := inventory.ParseMoney(price, w.ledger.Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx, err := w.ledger.Submit(kind, q, p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := w.save(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s #%d: %s units at %s, stock is now %s\n", tx.What(), tx.ID(), tx.Quantity(), tx.Price(), w.ledger.Stock())
	if sale, ok := tx.(inventory.Sale); ok {
		printSale(sale)
	}
	return subcommands.ExitSuccess
}

func printSale(sale inventory.Sale) {
	if benefit, ok := sale.Benefit(); ok {
		avg, _ := sale.AvgCost()
		fmt.Printf("  benefit %s, average cost %s\n", benefit, avg)
	}
	fmt.Printf("  %s\n", sale.Comment())
}

// --- Buy Command ---

type buyCmd struct {
	quantity string
	price    string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase, opening a new lot" }
func (*buyCmd) Usage() string {
	return `inv buy -q <quantity> -p <price>

  Records the purchase of quantity units at a unit price. The purchase opens
  a new lot that later sales draw from, oldest lot first.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "q", "", "Number of units purchased")
	f.StringVar(&c.price, "p", "", "Unit price")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quantity == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return record(ctx, inventory.KindPurchase, c.quantity, c.price)
}

// --- Sell Command ---

type sellCmd struct {
	quantity string
	price    string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale, costed first in first out" }
func (*sellCmd) Usage() string {
	return `inv sell -q <quantity> -p <price>

  Records the sale of quantity units at a unit price. The sale consumes the
  oldest lots first. Selling more than the stock is allowed: the excess is
  costed at the price of the latest lot and flagged as negative stock.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "q", "", "Number of units sold")
	f.StringVar(&c.price, "p", "", "Unit price")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.quantity == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return record(ctx, inventory.KindSale, c.quantity, c.price)
}

// --- Edit Command ---

type editCmd struct {
	id       int
	quantity string
	price    string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the quantity or price of a transaction" }
func (*editCmd) Usage() string {
	return `inv edit -id <id> [-q <quantity>] [-p <price>]

  Changes the quantity and/or the price of an existing transaction, then
  recalculates every sale. A missing flag keeps the current value.

Usage Examples:
# Fix the price of the third transaction.
$ inv edit -id 3 -p 6.5
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "id", 0, "Id of the transaction to edit")
	f.StringVar(&c.quantity, "q", "", "New number of units")
	f.StringVar(&c.price, "p", "", "New unit price")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 || (c.quantity == "" && c.price == "") {
		f.Usage()
		return subcommands.ExitUsageError
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	tx, ok := w.ledger.Find(c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no transaction #%d\n", c.id)
		return subcommands.ExitFailure
	}
	q, p := tx.Quantity(), tx.Price()
	if c.quantity != "" {
		if q, err = inventory.ParseQuantity(c.quantity); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.price != "" {
		if p, err = inventory.ParseMoney(c.price, w.ledger.Currency()); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	if err := w.ledger.Edit(c.id, q, p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := w.save(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, _ = w.ledger.Find(c.id)
	fmt.Printf("Edited %s #%d: %s units at %s, stock is now %s\n", tx.What(), tx.ID(), tx.Quantity(), tx.Price(), w.ledger.Stock())
	if sale, ok := tx.(inventory.Sale); ok {
		printSale(sale)
	}
	return subcommands.ExitSuccess
}
