package inventory

import (
	"testing"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// op is a scripted ledger operation used by tests.
type op struct {
	kind     Kind
	edit     int // id to edit, 0 to record a new transaction
	quantity float64
	price    float64
}

func buy(q, p float64) op          { return op{kind: KindPurchase, quantity: q, price: p} }
func sell(q, p float64) op         { return op{kind: KindSale, quantity: q, price: p} }
func edit(id int, q, p float64) op { return op{edit: id, quantity: q, price: p} }

// apply runs the operations on l and fails the test on any error.
func apply(t *testing.T, l *Ledger, ops ...op) {
	t.Helper()
	for _, o := range ops {
		var err error
		if o.edit != 0 {
			err = l.Edit(o.edit, Q(o.quantity), USD(o.price))
		} else {
			_, err = l.Submit(o.kind, Q(o.quantity), USD(o.price))
		}
		if err != nil {
			t.Fatalf("apply(%+v) returned an unexpected error: %v", o, err)
		}
	}
}

// newLedger creates a USD ledger with the operations applied.
func newLedger(t *testing.T, ops ...op) *Ledger {
	t.Helper()
	l := NewLedger("USD")
	apply(t, l, ops...)
	return l
}

// replay records every transaction of l again into an empty ledger.
func replay(t *testing.T, l *Ledger) *Ledger {
	t.Helper()
	r := NewLedger(l.Currency())
	for _, tx := range l.Transactions() {
		if _, err := r.Submit(tx.What(), tx.Quantity(), tx.Price()); err != nil {
			t.Fatalf("replay of %d failed: %v", tx.ID(), err)
		}
	}
	return r
}

// sameSources compares stock sources by value.
func sameSources(a, b map[int]Quantity) bool {
	if len(a) != len(b) {
		return false
	}
	for id, q := range a {
		if other, ok := b[id]; !ok || !other.Equal(q) {
			return false
		}
	}
	return true
}

// sameAllocation compares the observable fields of two allocations.
func sameAllocation(a, b Allocation) bool {
	if a.Defined != b.Defined || a.Comment() != b.Comment() || !sameSources(a.StockSources(), b.StockSources()) {
		return false
	}
	if !a.Defined {
		return true
	}
	return a.Benefit.Equal(b.Benefit) && a.AvgCost.Equal(b.AvgCost)
}

// checkInvariants verifies what must hold after every public operation.
func checkInvariants(t *testing.T, l *Ledger) {
	t.Helper()

	var want Quantity
	for _, tx := range l.Transactions() {
		switch tx.What() {
		case KindPurchase:
			want = want.Add(tx.Quantity())
		case KindSale:
			want = want.Sub(tx.Quantity())
		}
	}
	if !l.Stock().Equal(want) {
		t.Errorf("Stock() = %s, want purchases - sales = %s", l.Stock(), want)
	}

	for lot := range l.Lots() {
		if lot.Remaining.IsNegative() || lot.Remaining.GreaterThan(lot.Quantity) {
			t.Errorf("lot %d remaining %s out of [0, %s]", lot.ID, lot.Remaining, lot.Quantity)
		}
	}

	r := replay(t, l)
	for _, tx := range l.Transactions() {
		sale, ok := tx.(Sale)
		if !ok {
			continue
		}
		other, _ := r.Find(sale.ID())
		if !sameAllocation(sale.Allocation(), other.(Sale).Allocation()) {
			t.Errorf("sale %d: allocation %q differs from replay %q", sale.ID(), sale.Comment(), other.(Sale).Comment())
		}
	}
}
