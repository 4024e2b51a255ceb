package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/inventory"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	TransactionsSheet = "Transactions"
	LotsSheet         = "Lots"
)

var (
	transactionsHeader = []any{"#", "Type", "Quantity", "Price", "Total", "Benefit", "Avg. Cost", "Stock", "Remaining", "Comment"}
	lotsHeader         = []any{"Lot", "Quantity", "Price", "Total", "Consumed", "Remaining"}
)

// ExportXLSX writes the ledger as an Excel workbook with a transactions
// sheet and a lots sheet. Amounts are written as numbers, undefined values
// as "n/a".
func ExportXLSX(w io.Writer, l *inventory.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TransactionsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(LotsSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{transactionsHeader}
	for _, row := range l.Rows() {
		tx := row.Transaction
		line := []any{tx.ID(), string(tx.What()), tx.Quantity().InexactFloat64(), tx.Price().InexactFloat64(), tx.Total().InexactFloat64()}
		switch v := tx.(type) {
		case inventory.Purchase:
			line = append(line, "", "", row.Stock.InexactFloat64(), row.Remaining.InexactFloat64(), "")
		case inventory.Sale:
			var benefit, avg any = inventory.NotAvailable, inventory.NotAvailable
			if b, ok := v.Benefit(); ok {
				benefit = b.InexactFloat64()
			}
			if a, ok := v.AvgCost(); ok {
				avg = a.InexactFloat64()
			}
			line = append(line, benefit, avg, row.Stock.InexactFloat64(), "", v.Comment())
		}
		rows = append(rows, line)
	}
	if err := writeSheet(f, TransactionsSheet, rows, bold); err != nil {
		return err
	}
	if err := f.SetColWidth(TransactionsSheet, "J", "J", 60); err != nil {
		return err
	}

	rows = [][]any{lotsHeader}
	for lot := range l.Lots() {
		rows = append(rows, []any{lot.ID, lot.Quantity.InexactFloat64(), lot.Price.InexactFloat64(), lot.Total().InexactFloat64(), lot.Consumed().InexactFloat64(), lot.Remaining.InexactFloat64()})
	}
	if err := writeSheet(f, LotsSheet, rows, bold); err != nil {
		return err
	}

	return f.Write(w)
}

// writeSheet writes rows from A1 and makes the first one bold.
func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("could not write %s row %d: %w", sheet, i+1, err)
		}
	}
	return f.SetRowStyle(sheet, 1, 1, headerStyle)
}
