package inventory

import (
	"fmt"
	"iter"
	"slices"
)

// Ledger is the log of transactions together with the lots they opened and
// the running stock.
//
// In a Ledger transactions are always in creation order, which is also the
// order of their ids. A Ledger is not safe for concurrent use: a single
// owner performs one operation at a time.
type Ledger struct {
	currency     string
	transactions []Transaction
	lots         lots
	stock        Quantity
	nextID       int
}

// NewLedger creates an empty ledger whose prices are in currency.
// An empty currency means DefaultCurrency.
func NewLedger(currency string) *Ledger {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Ledger{
		currency:     currency,
		transactions: make([]Transaction, 0),
		nextID:       1,
	}
}

// Currency returns the currency of every price in the ledger.
func (l *Ledger) Currency() string { return l.currency }

// Stock returns the running stock level: purchased minus sold. It is
// negative when more was sold than bought.
func (l *Ledger) Stock() Quantity { return l.stock }

// NextID returns the id the next transaction will receive.
func (l *Ledger) NextID() int { return l.nextID }

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// checkPrice validates the amounts and applies the ledger currency to a
// price given without one.
func (l *Ledger) checkPrice(quantity Quantity, price Money) (Money, error) {
	if err := validateAmounts(quantity, price); err != nil {
		return price, err
	}
	switch price.Currency() {
	case "":
		price = price.withCurrency(l.currency)
	case l.currency:
	default:
		return price, fmt.Errorf("%w: price currency %s does not match ledger currency %s", ErrInvalid, price.Currency(), l.currency)
	}
	return price, nil
}

// RecordPurchase appends a purchase and opens its lot.
func (l *Ledger) RecordPurchase(quantity Quantity, price Money) (Purchase, error) {
	price, err := l.checkPrice(quantity, price)
	if err != nil {
		return Purchase{}, fmt.Errorf("invalid purchase: %w", err)
	}
	tx := NewPurchase(l.nextID, quantity, price)
	l.nextID++
	l.appendPurchase(tx)
	return tx, nil
}

// RecordSale appends a sale costed against the current lots.
func (l *Ledger) RecordSale(quantity Quantity, price Money) (Sale, error) {
	price, err := l.checkPrice(quantity, price)
	if err != nil {
		return Sale{}, fmt.Errorf("invalid sale: %w", err)
	}
	tx := NewSale(l.nextID, quantity, price)
	l.nextID++
	l.appendSale(tx)
	return l.transactions[len(l.transactions)-1].(Sale), nil
}

// Submit records a transaction of the given kind.
func (l *Ledger) Submit(kind Kind, quantity Quantity, price Money) (Transaction, error) {
	switch kind {
	case KindPurchase:
		return l.RecordPurchase(quantity, price)
	case KindSale:
		return l.RecordSale(quantity, price)
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalid, kind)
	}
}

func (l *Ledger) appendPurchase(tx Purchase) {
	l.transactions = append(l.transactions, tx)
	l.lots.appendLot(tx.id, tx.quantity, tx.price)
	l.stock = l.stock.Add(tx.quantity)
}

func (l *Ledger) appendSale(tx Sale) {
	tx.allocation = l.lots.before(tx.id).allocate(tx.quantity, tx.price)
	l.transactions = append(l.transactions, tx)
	l.stock = l.stock.Sub(tx.quantity)
}

// index returns the position of the transaction id in the log, or -1.
func (l *Ledger) index(id int) int {
	i, ok := slices.BinarySearchFunc(l.transactions, id, func(tx Transaction, id int) int { return tx.ID() - id })
	if !ok {
		return -1
	}
	return i
}

// Find returns the transaction with the given id.
func (l *Ledger) Find(id int) (Transaction, bool) {
	i := l.index(id)
	if i < 0 {
		return nil, false
	}
	return l.transactions[i], true
}

// Transactions returns an iterator over transactions in creation order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Lots returns an iterator over a copy of the lots, oldest first.
func (l *Ledger) Lots() iter.Seq[Lot] {
	return func(yield func(Lot) bool) {
		for _, lot := range l.lots {
			if !yield(*lot) {
				return
			}
		}
	}
}

// Lot returns a copy of the lot opened by the purchase id.
func (l *Ledger) Lot(id int) (Lot, bool) {
	lot := l.lots.find(id)
	if lot == nil {
		return Lot{}, false
	}
	return *lot, true
}

// Row is one line of the ledger as displayed to a user.
type Row struct {
	Transaction Transaction
	Stock       Quantity // running stock after the transaction
	Remaining   Quantity // current remaining of the lot, purchases only
}

// Rows returns every transaction with the running stock after it and, for
// purchases, the quantity still available in its lot.
func (l *Ledger) Rows() []Row {
	rows := make([]Row, 0, len(l.transactions))
	var stock Quantity
	for _, tx := range l.transactions {
		row := Row{Transaction: tx}
		switch v := tx.(type) {
		case Purchase:
			stock = stock.Add(v.quantity)
			if lot := l.lots.find(v.id); lot != nil {
				row.Remaining = lot.Remaining
			}
		case Sale:
			stock = stock.Sub(v.quantity)
		}
		row.Stock = stock
		rows = append(rows, row)
	}
	return rows
}

// Totals summarizes the ledger.
type Totals struct {
	Purchased Quantity
	Sold      Quantity
	Cost      Money // cost of goods sold
	Revenue   Money
	Benefit   Money
	Negative  int // number of sales that overdrew the stock
}

// Totals sums the ledger's purchases and sales.
func (l *Ledger) Totals() Totals {
	t := Totals{Cost: M(0, l.currency), Revenue: M(0, l.currency), Benefit: M(0, l.currency)}
	for _, tx := range l.transactions {
		switch v := tx.(type) {
		case Purchase:
			t.Purchased = t.Purchased.Add(v.quantity)
		case Sale:
			t.Sold = t.Sold.Add(v.quantity)
			t.Revenue = t.Revenue.Add(v.Total())
			if v.allocation.Defined {
				t.Benefit = t.Benefit.Add(v.allocation.Benefit)
				t.Cost = t.Cost.Add(v.allocation.Cost())
			}
			if v.allocation.Negative() {
				t.Negative++
			}
		}
	}
	return t
}
