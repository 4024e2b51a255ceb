package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/inventory"
)

// mdRenderer accumulates markdown.
type mdRenderer struct {
	*strings.Builder
}

func newMarkdown() *mdRenderer { return &mdRenderer{Builder: &strings.Builder{}} }

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// Report renders the whole ledger: transactions, lots and a summary.
func Report(l *inventory.Ledger) string {
	return Log(l.Rows()) + "\n" + Lots(l) + "\n" + Summary(l.Totals())
}

// Log renders the transaction log as a markdown table, with the running
// stock after each transaction and the remaining quantity of each purchase.
func Log(rows []inventory.Row) string {
	r := newMarkdown()
	r.Printf("## Transactions\n\n")
	if len(rows) == 0 {
		r.Printf("No transactions.\n")
		return r.String()
	}
	r.Printf("| # | Type | Quantity | Price | Total | Benefit | Avg. Cost | Stock | Remaining | Comment |\n")
	r.Printf("|--:|:---|---:|---:|---:|---:|---:|---:|---:|:---|\n")
	for _, row := range rows {
		tx := row.Transaction
		var benefit, avg, remaining, comment string
		switch v := tx.(type) {
		case inventory.Purchase:
			remaining = row.Remaining.String()
		case inventory.Sale:
			benefit, avg = inventory.NotAvailable, inventory.NotAvailable
			if b, ok := v.Benefit(); ok {
				benefit = b.String()
			}
			if a, ok := v.AvgCost(); ok {
				avg = a.String()
			}
			comment = v.Comment()
		}
		r.Printf("| %d | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.ID(), tx.What(), tx.Quantity(), tx.Price(), tx.Total(), benefit, avg, row.Stock, remaining, comment)
	}
	return r.String()
}

// Lots renders the purchase lots and what is left of them.
func Lots(l *inventory.Ledger) string {
	r := newMarkdown()
	r.Printf("## Lots\n\n")
	printed := false
	for lot := range l.Lots() {
		if !printed {
			r.Printf("| Lot | Quantity | Price | Total | Consumed | Remaining |\n")
			r.Printf("|--:|---:|---:|---:|---:|---:|\n")
			printed = true
		}
		r.Printf("| %d | %s | %s | %s | %s | %s |\n", lot.ID, lot.Quantity, lot.Price, lot.Total(), lot.Consumed(), lot.Remaining)
	}
	if !printed {
		r.Printf("No lots.\n")
	}
	return r.String()
}

// Summary renders the ledger totals.
func Summary(t inventory.Totals) string {
	r := newMarkdown()
	r.Printf("## Summary\n\n")
	r.Printf("- Purchased: %s\n", t.Purchased)
	r.Printf("- Sold: %s\n", t.Sold)
	r.Printf("- Stock: %s\n", t.Purchased.Sub(t.Sold))
	r.Printf("- Revenue: %s\n", t.Revenue)
	r.Printf("- Cost of goods sold: %s\n", t.Cost)
	r.Printf("- Benefit: %s\n", t.Benefit)
	if t.Negative > 0 {
		r.Printf("\n%d sale(s) drew on negative stock.\n", t.Negative)
	}
	return r.String()
}
