package inventory

import (
	"fmt"
)

// Kind identifies the type of a transaction.
type Kind string

// Kinds of transactions.
const (
	KindPurchase Kind = "purchase"
	KindSale     Kind = "sale"
)

// ParseKind parses "purchase" or "sale".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindPurchase, KindSale:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalid, s)
	}
}

// Transaction is the common interface of Purchase and Sale.
type Transaction interface {
	What() Kind         // What returns the kind of transaction.
	ID() int            // ID returns the stable identifier assigned at creation.
	Quantity() Quantity // Quantity returns the quantity bought or sold.
	Price() Money       // Price returns the unit price.
	Total() Money       // Total returns quantity × price.
}

type baseTx struct {
	id       int
	quantity Quantity
	price    Money
}

func (t baseTx) ID() int            { return t.id }
func (t baseTx) Quantity() Quantity { return t.quantity }
func (t baseTx) Price() Money       { return t.price }
func (t baseTx) Total() Money       { return t.price.Mul(t.quantity) }

// writeTo appends the fields common to every transaction.
func (t baseTx) writeTo(w *jsonObjectWriter, kind Kind) {
	w.Append("id", t.id)
	w.Append("type", kind)
	w.Append("quantity", t.quantity)
	w.Append("price", t.price)
	w.Append("total", t.Total())
}

// Purchase records goods bought. Each purchase opens a lot with the same id.
type Purchase struct {
	baseTx
}

// NewPurchase creates a Purchase. It is not validated, use Ledger.RecordPurchase.
func NewPurchase(id int, quantity Quantity, price Money) Purchase {
	return Purchase{baseTx{id: id, quantity: quantity, price: price}}
}

func (Purchase) What() Kind { return KindPurchase }

// MarshalJSON implements the json.Marshaler interface for Purchase.
func (t Purchase) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	t.baseTx.writeTo(&w, KindPurchase)
	return w.MarshalJSON()
}

// Sale records goods sold, and how they were costed.
type Sale struct {
	baseTx
	allocation Allocation
}

// NewSale creates a Sale without allocation. It is not validated, use Ledger.RecordSale.
func NewSale(id int, quantity Quantity, price Money) Sale {
	return Sale{baseTx: baseTx{id: id, quantity: quantity, price: price}}
}

func (Sale) What() Kind { return KindSale }

// Allocation returns the FIFO costing of the sale.
func (t Sale) Allocation() Allocation { return t.allocation }

// Benefit returns the realized profit, if the sale could be costed.
func (t Sale) Benefit() (Money, bool) { return t.allocation.Benefit, t.allocation.Defined }

// AvgCost returns the average unit cost of goods sold, if the sale could be costed.
func (t Sale) AvgCost() (Money, bool) { return t.allocation.AvgCost, t.allocation.Defined }

// Comment returns the human readable breakdown of the lots consumed.
func (t Sale) Comment() string { return t.allocation.Comment() }

// StockSources returns the quantity drawn from each lot, by lot id.
func (t Sale) StockSources() map[int]Quantity { return t.allocation.StockSources() }

// MarshalJSON implements the json.Marshaler interface for Sale.
func (t Sale) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	t.baseTx.writeTo(&w, KindSale)
	if t.allocation.Defined {
		w.Append("benefit", t.allocation.Benefit)
		w.Append("avgPrice", t.allocation.AvgCost)
	}
	w.Append("comment", t.Comment())
	w.Append("stockSources", t.StockSources())
	return w.MarshalJSON()
}
