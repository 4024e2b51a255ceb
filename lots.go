package inventory

import (
	"fmt"
	"slices"
)

// Lot is the goods bought by a single purchase, and what is left of them.
//
// The lot shares its ID with the purchase that created it.
type Lot struct {
	ID        int
	Quantity  Quantity // originally acquired
	Price     Money    // unit cost
	Remaining Quantity // not consumed by any sale yet
}

// Total returns the cost of the whole lot.
func (l Lot) Total() Money { return l.Price.Mul(l.Quantity) }

// Consumed returns the quantity already drawn by sales.
func (l Lot) Consumed() Quantity { return l.Quantity.Sub(l.Remaining) }

// lots is the ordered list of lots, oldest first. Since ids are assigned
// monotonically, it is also sorted by ID.
type lots []*Lot

// appendLot creates a fresh lot after all existing ones.
func (l *lots) appendLot(id int, quantity Quantity, price Money) *Lot {
	lot := &Lot{ID: id, Quantity: quantity, Price: price, Remaining: quantity}
	*l = append(*l, lot)
	return lot
}

// find returns the lot with the given id, or nil.
func (l lots) find(id int) *Lot {
	i, ok := slices.BinarySearchFunc(l, id, func(lot *Lot, id int) int { return lot.ID - id })
	if !ok {
		return nil
	}
	return l[i]
}

// consume decrements the remaining quantity of a lot.
//
// Asking for more than what remains is a programming error and panics.
func (l lots) consume(id int, amount Quantity) {
	lot := l.find(id)
	if lot == nil {
		panic(fmt.Sprintf("consume: unknown lot %d", id))
	}
	if amount.GreaterThan(lot.Remaining) {
		panic(fmt.Sprintf("consume: lot %d has %s remaining, cannot consume %s", id, lot.Remaining, amount))
	}
	lot.Remaining = lot.Remaining.Sub(amount)
}

// restore gives back to a lot a quantity previously consumed.
func (l lots) restore(id int, amount Quantity) {
	lot := l.find(id)
	if lot == nil {
		panic(fmt.Sprintf("restore: unknown lot %d", id))
	}
	lot.Remaining = lot.Remaining.Add(amount)
}

// resetAllRemaining makes every lot whole again.
func (l lots) resetAllRemaining() {
	for _, lot := range l {
		lot.Remaining = lot.Quantity
	}
}

// before returns the lots created before the transaction id, i.e. the lots
// visible to a sale with that id.
func (l lots) before(id int) lots {
	i, _ := slices.BinarySearchFunc(l, id, func(lot *Lot, id int) int { return lot.ID - id })
	return l[:i]
}
