package inventory

import (
	"fmt"
	"slices"
	"strings"
)

// NotAvailable is the comment of a sale that could not be costed at all.
const NotAvailable = "n/a"

// Draw is the quantity a sale took from one lot.
type Draw struct {
	Lot      int      // id of the lot
	Quantity Quantity // drawn
	Price    Money    // unit cost of the lot
	// Negative marks an overdraw: the lot had nothing left, the quantity
	// is only costed at its price and was not consumed from it.
	Negative bool
}

// Cost returns the cost of goods of the draw.
func (d Draw) Cost() Money { return d.Price.Mul(d.Quantity) }

func (d Draw) String() string {
	s := fmt.Sprintf("%s units at %s each", d.Quantity, d.Price)
	if d.Negative {
		s += " (negative stock)"
	}
	return s
}

// Allocation is the FIFO costing of a sale.
type Allocation struct {
	Draws   []Draw
	Benefit Money // sale proceeds minus cost of goods
	AvgCost Money // weighted average unit cost of goods sold
	// Defined is false when nothing could be costed (no lots at all), in
	// which case Benefit and AvgCost are meaningless.
	Defined bool
}

// Comment describes the draws in a human readable form.
func (a Allocation) Comment() string {
	if !a.Defined {
		return NotAvailable
	}
	parts := make([]string, 0, len(a.Draws))
	for _, d := range a.Draws {
		parts = append(parts, d.String())
	}
	return strings.TrimSpace(strings.Join(parts, "; "))
}

// StockSources returns the quantity drawn per lot id.
func (a Allocation) StockSources() map[int]Quantity {
	sources := make(map[int]Quantity, len(a.Draws))
	for _, d := range a.Draws {
		sources[d.Lot] = sources[d.Lot].Add(d.Quantity)
	}
	return sources
}

// Quantity returns the total quantity drawn.
func (a Allocation) Quantity() Quantity {
	var q Quantity
	for _, d := range a.Draws {
		q = q.Add(d.Quantity)
	}
	return q
}

// Cost returns the cost of goods sold, the sum of the draws' costs.
func (a Allocation) Cost() Money {
	var c Money
	for _, d := range a.Draws {
		c = c.Add(d.Cost())
	}
	return c
}

// Negative reports whether the sale overdrew the stock.
func (a Allocation) Negative() bool {
	for _, d := range a.Draws {
		if d.Negative {
			return true
		}
	}
	return false
}

// allocate costs a sale of quantity at price against the lots, oldest first,
// and consumes what it draws.
//
// Quantity left once the lots are exhausted is costed at the price of the
// most recent lot without consuming it. With no lot at all it has no cost
// basis.
func (l lots) allocate(quantity Quantity, price Money) Allocation {
	var (
		a       Allocation
		left    = quantity
		cost    = M(0, price.Currency())
		benefit = M(0, price.Currency())
		total   Quantity
	)

	for _, lot := range l {
		if !left.IsPositive() {
			break
		}
		if !lot.Remaining.IsPositive() {
			continue
		}
		used := minQuantity(left, lot.Remaining)
		l.consume(lot.ID, used)

		benefit = benefit.Add(price.Sub(lot.Price).Mul(used))
		cost = cost.Add(lot.Price.Mul(used))
		total = total.Add(used)
		left = left.Sub(used)
		a.Draws = append(a.Draws, Draw{Lot: lot.ID, Quantity: used, Price: lot.Price})
	}

	if left.IsPositive() && len(l) > 0 {
		last := l[len(l)-1]
		benefit = benefit.Add(price.Sub(last.Price).Mul(left))
		cost = cost.Add(last.Price.Mul(left))
		total = total.Add(left)
		a.Draws = append(a.Draws, Draw{Lot: last.ID, Quantity: left, Price: last.Price, Negative: true})
	}

	if total.IsPositive() {
		a.Defined = true
		a.Benefit = benefit
		a.AvgCost = cost.Div(total)
	}
	return a
}

// release gives back amount of the allocation to its lots, starting from
// the most recently created funding lot. Draws are shrunk or removed
// accordingly. Overdraws were never consumed so they only shrink.
//
// It returns the quantity that could not be released because the
// allocation holds less than amount.
func (l lots) release(a *Allocation, amount Quantity) Quantity {
	for i := len(a.Draws) - 1; i >= 0 && amount.IsPositive(); i-- {
		d := &a.Draws[i]
		take := minQuantity(amount, d.Quantity)
		if !d.Negative {
			l.restore(d.Lot, take)
		}
		d.Quantity = d.Quantity.Sub(take)
		amount = amount.Sub(take)
	}
	a.Draws = slices.DeleteFunc(a.Draws, func(d Draw) bool { return d.Quantity.IsZero() })
	return amount
}
