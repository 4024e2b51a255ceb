package inventory

import (
	"fmt"
)

// Edit changes the quantity and price of the transaction id, then
// recalculates every sale.
//
// Editing a purchase resizes its lot. Lowering it below what sales already
// consumed is accepted: the recalculation moves the sales that no longer fit
// to later lots, or to negative stock when none is left.
func (l *Ledger) Edit(id int, quantity Quantity, price Money) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("cannot edit transaction %d: %w", id, ErrNotFound)
	}
	price, err := l.checkPrice(quantity, price)
	if err != nil {
		return fmt.Errorf("cannot edit transaction %d: %w", id, err)
	}

	switch v := l.transactions[i].(type) {
	case Purchase:
		delta := quantity.Sub(v.quantity)
		v.quantity, v.price = quantity, price
		l.transactions[i] = v
		if lot := l.lots.find(id); lot != nil {
			lot.Quantity = quantity
			lot.Price = price
			lot.Remaining = lot.Remaining.Add(delta)
		}
		l.stock = l.stock.Add(delta)

	case Sale:
		old := v.quantity
		if quantity.LessThan(old) {
			l.lots.release(&v.allocation, old.Sub(quantity))
		}
		v.quantity, v.price = quantity, price
		// give back what the sale still holds before costing it again.
		l.lots.release(&v.allocation, v.allocation.Quantity())
		v.allocation = l.lots.before(v.id).allocate(v.quantity, v.price)
		l.transactions[i] = v
		l.stock = l.stock.Add(old.Sub(quantity))
	}

	l.Recalculate()
	return nil
}

// Recalculate replays the whole log: every lot is made whole, the stock
// restarts from zero, and every sale is costed again in creation order.
//
// A sale only sees the lots opened before it, so the result is the same as
// recording every transaction again into an empty ledger.
func (l *Ledger) Recalculate() {
	l.lots.resetAllRemaining()
	l.stock = Quantity{}
	for i, tx := range l.transactions {
		switch v := tx.(type) {
		case Purchase:
			l.stock = l.stock.Add(v.quantity)
		case Sale:
			l.stock = l.stock.Sub(v.quantity)
			v.allocation = l.lots.before(v.id).allocate(v.quantity, v.price)
			l.transactions[i] = v
		}
	}
}
