// Package inventory implements a small inventory ledger that records purchases
// and sales of a single good and computes, for every sale, its cost of goods
// sold and its benefit with a first-in first-out (FIFO) cost allocation.
//
// The core concepts are:
//   - Lots: every purchase creates a lot, an amount of goods still available
//     at the purchase price. Lots are consumed oldest first.
//   - Transactions: an ordered log of Purchase and Sale records, each with a
//     stable id assigned at creation. A Sale carries its Allocation: the
//     draws made on the lots, the average cost and the benefit.
//   - Recalculation: editing a transaction may change the cost basis of
//     every later sale, so the ledger replays the whole log after any edit.
//
// Selling more than what the lots hold is not an error: the overdraw is
// costed at the price of the most recent lot and flagged as negative stock.
//
// A Ledger is persisted as a single JSON record (see Encode and Decode), and
// the store package saves that record into a key-value store.
package inventory
