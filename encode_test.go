package inventory

import (
	"errors"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	l := newLedger(t, buy(10, 5), buy(5, 8), sell(12, 20))

	got := encodeString(t, l)

	for _, want := range []string{
		`{"transactions":[{"id":1,"type":"purchase","quantity":10,"price":5,"total":50},`,
		`{"id":3,"type":"sale","quantity":12,"price":20,"total":240,"benefit":174,"avgPrice":5.5,"comment":"10 units at $5.00 each; 2 units at $8.00 each","stockSources":{"1":10,"2":2}}]`,
		`"purchases":[{"id":1,"quantity":10,"price":5,"total":50,"remaining":0},{"id":2,"quantity":5,"price":8,"total":40,"remaining":3}]`,
		`"purchaseTrack":{"1":0,"2":3}`,
		`"currentStock":3`,
		`"nextId":4`,
		`"currency":"USD"}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Encode() = %s\nwant it to contain %s", got, want)
		}
	}
}

func TestEncode_UndefinedAllocation(t *testing.T) {
	l := newLedger(t, sell(3, 2))

	got := encodeString(t, l)

	want := `{"id":1,"type":"sale","quantity":3,"price":2,"total":6,"comment":"n/a","stockSources":{}}`
	if !strings.Contains(got, want) {
		t.Errorf("Encode() = %s\nwant it to contain %s", got, want)
	}
}

func TestDecode_RestoresLedger(t *testing.T) {
	l := newLedger(t, buy(10, 5), sell(4, 7), buy(5, 8), sell(20, 9), edit(1, 3, 4), sell(1, 2))
	persisted := encodeString(t, l)

	got, err := Decode(strings.NewReader(persisted))
	if err != nil {
		t.Fatalf("Decode() returned an unexpected error: %v", err)
	}

	if again := encodeString(t, got); again != persisted {
		t.Errorf("Decode() then Encode() = %s\nwant %s", again, persisted)
	}
	if got.NextID() != l.NextID() || !got.Stock().Equal(l.Stock()) {
		t.Errorf("Decode() next=%d stock=%s, want next=%d stock=%s", got.NextID(), got.Stock(), l.NextID(), l.Stock())
	}

	// the decoded ledger keeps working.
	if _, err := got.RecordSale(Q(1), USD(3)); err != nil {
		t.Fatalf("RecordSale() on decoded ledger returned an unexpected error: %v", err)
	}
	if tx, _ := got.Find(l.NextID()); tx == nil {
		t.Errorf("new sale did not receive id %d", l.NextID())
	}
}

func TestDecode_RecomputesDerivedValues(t *testing.T) {
	// persisted derived values are wrong: the replayed log wins.
	persisted := `{
		"transactions":[
			{"id":1,"type":"purchase","quantity":10,"price":5,"total":50},
			{"id":2,"type":"sale","quantity":4,"price":6,"total":24,"benefit":999,"comment":"bogus","stockSources":{"7":4}}
		],
		"purchases":[{"id":1,"quantity":10,"price":5,"total":50,"remaining":10}],
		"purchaseTrack":{"1":10},
		"currentStock":42,
		"nextId":9
	}`

	l, err := Decode(strings.NewReader(persisted))
	if err != nil {
		t.Fatalf("Decode() returned an unexpected error: %v", err)
	}

	if !l.Stock().Equal(Q(6)) {
		t.Errorf("Stock() = %s, want 6", l.Stock())
	}
	if lot, _ := l.Lot(1); !lot.Remaining.Equal(Q(6)) {
		t.Errorf("lot 1 remaining = %s, want 6", lot.Remaining)
	}
	tx, _ := l.Find(2)
	if got, _ := tx.(Sale).Benefit(); !got.Equal(USD(4)) {
		t.Errorf("Benefit() = %v, want 4", got)
	}
	if l.NextID() != 9 {
		t.Errorf("NextID() = %d, want the persisted 9", l.NextID())
	}
	if l.Currency() != DefaultCurrency {
		t.Errorf("Currency() = %q, want %q", l.Currency(), DefaultCurrency)
	}
}

func TestDecode_WithoutIDs(t *testing.T) {
	persisted := `{"transactions":[
		{"type":"purchase","quantity":2,"price":3,"total":6},
		{"type":"purchase","quantity":1,"price":4,"total":4},
		{"type":"sale","quantity":3,"price":5,"total":15}
	],"currency":"EUR"}`

	l, err := Decode(strings.NewReader(persisted))
	if err != nil {
		t.Fatalf("Decode() returned an unexpected error: %v", err)
	}
	tx, ok := l.Find(3)
	if !ok {
		t.Fatal("Find(3) not found, want the sale")
	}
	if want := map[int]Quantity{1: Q(2), 2: Q(1)}; !sameSources(tx.(Sale).StockSources(), want) {
		t.Errorf("StockSources() = %v, want %v", tx.(Sale).StockSources(), want)
	}
	if got := tx.Price().Currency(); got != "EUR" {
		t.Errorf("Price().Currency() = %q, want EUR", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		persisted string
		wantErr   error
	}{
		{name: "not json", persisted: `transactions: []`},
		{name: "empty", persisted: ``},
		{name: "unknown type", persisted: `{"transactions":[{"id":1,"type":"gift","quantity":1,"price":1}]}`, wantErr: ErrInvalid},
		{name: "zero quantity", persisted: `{"transactions":[{"id":1,"type":"purchase","quantity":0,"price":1}]}`, wantErr: ErrInvalid},
		{name: "negative price", persisted: `{"transactions":[{"id":1,"type":"sale","quantity":1,"price":-1}]}`, wantErr: ErrInvalid},
		{name: "ids out of order", persisted: `{"transactions":[{"id":2,"type":"purchase","quantity":1,"price":1},{"id":1,"type":"sale","quantity":1,"price":1}]}`},
		{name: "bad quantity", persisted: `{"transactions":[{"id":1,"type":"purchase","quantity":"lots","price":1}]}`},
		{name: "unknown currency", persisted: `{"transactions":[],"currency":"XYZ"}`, wantErr: ErrInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.persisted))
			if err == nil {
				t.Fatal("Decode() succeeded, want an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
