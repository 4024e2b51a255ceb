// Package store persists ledgers as a single serialized record in a
// key-value store.
//
// A Store only knows about keys and bytes. Load and Save convert between a
// stored record and an inventory.Ledger, and implement the recovery policy:
// a missing or unreadable record is a cold start, never a failure.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/etnz/inventory"
)

// DefaultKey is the key under which a ledger is stored when none is configured.
const DefaultKey = "inventory"

// ErrNotExist is returned by Get when the key is absent. It is fs.ErrNotExist
// so that file system errors match it as well.
var ErrNotExist = fs.ErrNotExist

// Store is a key-value store.
type Store interface {
	// Get returns the value stored under key, or an error matching ErrNotExist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Load reads the ledger stored under key.
//
// An absent key, a failed read or a record that cannot be decoded all yield
// an empty ledger in currency: the failure is logged, not returned.
func Load(ctx context.Context, s Store, key, currency string) *inventory.Ledger {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotExist) {
		return inventory.NewLedger(currency)
	}
	if err != nil {
		log.Printf("warning, could not read ledger %q, starting with an empty ledger: %v", key, err)
		return inventory.NewLedger(currency)
	}

	l, err := inventory.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("warning, ledger %q is corrupted, starting with an empty ledger: %v", key, err)
		return inventory.NewLedger(currency)
	}
	if currency != "" && l.Currency() != currency {
		log.Printf("warning, ledger %q is in %s, not %s", key, l.Currency(), currency)
	}
	return l
}

// Save writes the ledger under key, replacing the previous record.
func Save(ctx context.Context, s Store, key string, l *inventory.Ledger) error {
	var buf bytes.Buffer
	if err := inventory.Encode(&buf, l); err != nil {
		return err
	}
	if err := s.Set(ctx, key, buf.Bytes()); err != nil {
		return fmt.Errorf("could not save ledger %q: %w", key, err)
	}
	return nil
}
