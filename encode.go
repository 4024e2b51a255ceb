package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists a Ledger as a single JSON record:
//
//	{"transactions":[...],"purchases":[...],"purchaseTrack":{"1":0},"currentStock":3,"nextId":4,"currency":"USD"}
//
// Only the transactions are the source of truth. Lots, remaining quantities,
// stock and allocations are derived: Decode rebuilds them by replaying the
// transactions and only uses the persisted values to report inconsistencies.

// lotRecord is a purchase lot as persisted.
type lotRecord struct {
	ID        int      `json:"id"`
	Quantity  Quantity `json:"quantity"`
	Price     Money    `json:"price"`
	Total     Money    `json:"total"`
	Remaining Quantity `json:"remaining"`
}

// Encode writes the ledger state as one JSON record followed by a newline.
func Encode(w io.Writer, l *Ledger) error {
	purchases := make([]lotRecord, 0, len(l.lots))
	track := make(map[int]Quantity, len(l.lots))
	for _, lot := range l.lots {
		purchases = append(purchases, lotRecord{
			ID:        lot.ID,
			Quantity:  lot.Quantity,
			Price:     lot.Price,
			Total:     lot.Total(),
			Remaining: lot.Remaining,
		})
		track[lot.ID] = lot.Remaining
	}

	var obj jsonObjectWriter
	obj.Append("transactions", l.transactions)
	obj.Append("purchases", purchases)
	obj.Append("purchaseTrack", track)
	obj.Append("currentStock", l.stock)
	obj.Append("nextId", l.nextID)
	obj.Optional("currency", l.currency)
	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// Decode reads a ledger record written by Encode.
//
// Transactions without an id (records written before ids existed) receive
// the next free one. Derived values that disagree with the replayed log are
// logged and replaced.
func Decode(r io.Reader) (*Ledger, error) {
	var rec struct {
		Transactions  []json.RawMessage `json:"transactions"`
		Purchases     []lotRecord       `json:"purchases"`
		PurchaseTrack map[int]Quantity  `json:"purchaseTrack"`
		CurrentStock  *Quantity         `json:"currentStock"`
		NextID        int               `json:"nextId"`
		Currency      string            `json:"currency"`
	}
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}

	currency := rec.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	l := NewLedger(currency)

	for i, raw := range rec.Transactions {
		var head struct {
			ID       int      `json:"id"`
			Type     Kind     `json:"type"`
			Quantity Quantity `json:"quantity"`
			Price    Money    `json:"price"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, fmt.Errorf("could not decode transaction #%d %s: %w", i, raw, err)
		}
		if head.ID == 0 {
			head.ID = l.nextID
		}
		if head.ID < l.nextID {
			return nil, fmt.Errorf("transaction #%d: id %d is not after previous id %d", i, head.ID, l.nextID-1)
		}
		price := head.Price.withCurrency(currency)
		if err := validateAmounts(head.Quantity, price); err != nil {
			return nil, fmt.Errorf("transaction #%d (id %d): %w", i, head.ID, err)
		}

		switch head.Type {
		case KindPurchase:
			l.appendPurchase(NewPurchase(head.ID, head.Quantity, price))
		case KindSale:
			l.appendSale(NewSale(head.ID, head.Quantity, price))
		default:
			return nil, fmt.Errorf("transaction #%d (id %d): %w: unknown transaction type %q", i, head.ID, ErrInvalid, head.Type)
		}
		l.nextID = head.ID + 1
	}
	if rec.NextID > l.nextID {
		l.nextID = rec.NextID
	}

	// appending already replays the log in order, check what was persisted.
	if rec.CurrentStock != nil && !rec.CurrentStock.Equal(l.stock) {
		log.Printf("persisted stock %s differs from replayed stock %s, using %s", rec.CurrentStock, l.stock, l.stock)
	}
	if rec.Purchases != nil && len(rec.Purchases) != len(l.lots) {
		log.Printf("persisted %d purchases but the log has %d", len(rec.Purchases), len(l.lots))
	}
	for id, remaining := range rec.PurchaseTrack {
		lot := l.lots.find(id)
		if lot == nil || !lot.Remaining.Equal(remaining) {
			log.Printf("persisted remaining %s for lot %d differs from the replayed log", remaining, id)
		}
	}
	return l, nil
}
