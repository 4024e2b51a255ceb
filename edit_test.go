package inventory

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestEdit_UnknownID(t *testing.T) {
	l := newLedger(t, buy(10, 5), sell(2, 7))
	before := encodeString(t, l)

	err := l.Edit(42, Q(1), USD(1))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Edit(42) error = %v, want ErrNotFound", err)
	}
	if after := encodeString(t, l); after != before {
		t.Errorf("Edit(42) changed the ledger:\n%s\nwant:\n%s", after, before)
	}
}

func TestEdit_Invalid(t *testing.T) {
	l := newLedger(t, buy(10, 5), sell(2, 7))
	before := encodeString(t, l)

	for _, e := range []struct {
		quantity Quantity
		price    Money
	}{
		{Q(0), USD(1)},
		{Q(1), USD(0)},
		{Q(-1), USD(-1)},
	} {
		if err := l.Edit(2, e.quantity, e.price); !errors.Is(err, ErrInvalid) {
			t.Errorf("Edit(2, %s, %v) error = %v, want ErrInvalid", e.quantity, e.price, err)
		}
	}
	if after := encodeString(t, l); after != before {
		t.Errorf("rejected edits changed the ledger:\n%s\nwant:\n%s", after, before)
	}
}

func TestEdit_Purchase(t *testing.T) {
	testCases := []struct {
		name          string
		quantity      float64
		price         float64
		wantSources   map[int]Quantity
		wantBenefit   Money
		wantRemaining float64
		wantNegative  bool
	}{
		{
			name:          "raise price",
			quantity:      10,
			price:         6,
			wantSources:   map[int]Quantity{1: Q(10), 2: Q(2)},
			wantBenefit:   USD(12*20 - (10*6 + 2*8)),
			wantRemaining: 0,
		},
		{
			name:          "grow lot",
			quantity:      20,
			price:         5,
			wantSources:   map[int]Quantity{1: Q(12)},
			wantBenefit:   USD(12 * (20 - 5)),
			wantRemaining: 8,
		},
		{
			name:          "shrink below consumed",
			quantity:      1,
			price:         5,
			wantSources:   map[int]Quantity{1: Q(1), 2: Q(11)},
			wantBenefit:   USD(12*20 - (1*5 + 11*8)),
			wantRemaining: 0,
			wantNegative:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedger(t, buy(10, 5), buy(5, 8), sell(12, 20))

			if err := l.Edit(1, Q(tc.quantity), USD(tc.price)); err != nil {
				t.Fatalf("Edit() returned an unexpected error: %v", err)
			}

			tx, _ := l.Find(3)
			sale := tx.(Sale)
			if !sameSources(sale.StockSources(), tc.wantSources) {
				t.Errorf("StockSources() = %v, want %v", sale.StockSources(), tc.wantSources)
			}
			if got, _ := sale.Benefit(); !got.Equal(tc.wantBenefit) {
				t.Errorf("Benefit() = %v, want %v", got, tc.wantBenefit)
			}
			if sale.Allocation().Negative() != tc.wantNegative {
				t.Errorf("Negative() = %v, want %v (%q)", sale.Allocation().Negative(), tc.wantNegative, sale.Comment())
			}
			if lot, _ := l.Lot(1); !lot.Remaining.Equal(Q(tc.wantRemaining)) || !lot.Quantity.Equal(Q(tc.quantity)) {
				t.Errorf("lot 1 = %s/%s, want %v/%v", lot.Remaining, lot.Quantity, tc.wantRemaining, tc.quantity)
			}
			checkInvariants(t, l)
		})
	}
}

func TestEdit_Sale(t *testing.T) {
	testCases := []struct {
		name         string
		edit         op
		wantFirst    map[int]Quantity // sources of sale 3
		wantNegative bool             // sale 3 overdrew the stock
		wantSecond   map[int]Quantity // sources of sale 4
		wantLot2     float64
		wantStock    float64
	}{
		{
			name:       "shrink",
			edit:       edit(3, 9, 20),
			wantFirst:  map[int]Quantity{1: Q(9)},
			wantSecond: map[int]Quantity{1: Q(1), 2: Q(1)},
			wantLot2:   4,
			wantStock:  4,
		},
		{
			name:         "grow beyond the stock",
			edit:         edit(3, 16, 20),
			wantFirst:    map[int]Quantity{1: Q(10), 2: Q(6)},
			wantNegative: true,
			wantSecond:   map[int]Quantity{2: Q(2)},
			wantLot2:     0,
			wantStock:    -3,
		},
		{
			name:       "price only",
			edit:       edit(3, 12, 30),
			wantFirst:  map[int]Quantity{1: Q(10), 2: Q(2)},
			wantSecond: map[int]Quantity{2: Q(2)},
			wantLot2:   1,
			wantStock:  1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedger(t, buy(10, 5), buy(5, 8), sell(12, 20), sell(2, 9))

			apply(t, l, tc.edit)

			tx, _ := l.Find(3)
			first := tx.(Sale)
			tx, _ = l.Find(4)
			second := tx.(Sale)
			if got := first.StockSources(); !sameSources(got, tc.wantFirst) {
				t.Errorf("sale 3 StockSources() = %v, want %v", got, tc.wantFirst)
			}
			if got := first.Allocation().Negative(); got != tc.wantNegative {
				t.Errorf("sale 3 Negative() = %v, want %v", got, tc.wantNegative)
			}
			if !first.Price().Equal(USD(tc.edit.price)) {
				t.Errorf("sale 3 Price() = %v, want %v", first.Price(), tc.edit.price)
			}
			if got := second.StockSources(); !sameSources(got, tc.wantSecond) {
				t.Errorf("sale 4 StockSources() = %v, want %v", got, tc.wantSecond)
			}
			if lot, _ := l.Lot(2); !lot.Remaining.Equal(Q(tc.wantLot2)) {
				t.Errorf("lot 2 remaining = %s, want %v", lot.Remaining, tc.wantLot2)
			}
			if !l.Stock().Equal(Q(tc.wantStock)) {
				t.Errorf("Stock() = %s, want %v", l.Stock(), tc.wantStock)
			}
			checkInvariants(t, l)
		})
	}
}

func TestRecalculate_Idempotent(t *testing.T) {
	l := newLedger(t, buy(10, 5), sell(4, 7), buy(5, 8), sell(20, 9), edit(1, 3, 4))

	l.Recalculate()
	first := encodeString(t, l)
	l.Recalculate()
	second := encodeString(t, l)

	if first != second {
		t.Errorf("second Recalculate() changed the ledger:\n%s\nwant:\n%s", second, first)
	}
}

func TestEdit_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	amount := func(max int) float64 { return float64(1+rng.Intn(max*4)) / 4 }

	for run := 0; run < 50; run++ {
		l := NewLedger("USD")
		for step := 0; step < 30; step++ {
			var o op
			switch r := rng.Intn(10); {
			case r < 4:
				o = buy(amount(10), amount(10))
			case r < 8:
				o = sell(amount(10), amount(20))
			default:
				if l.Len() == 0 {
					continue
				}
				o = edit(1+rng.Intn(l.Len()), amount(10), amount(20))
			}
			apply(t, l, o)
		}
		checkInvariants(t, l)
		if t.Failed() {
			t.Fatalf("run %d failed:\n%s", run, encodeString(t, l))
		}
	}
}

// encodeString returns the persisted form of l.
func encodeString(t *testing.T, l *Ledger) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, l); err != nil {
		t.Fatalf("Encode() returned an unexpected error: %v", err)
	}
	return buf.String()
}
