// Package localstore models the per-device key/value store behind the
// dashboard. Each collection is a JSON-serialized sequence of records;
// the only write primitive is replacing a whole collection, which is the
// unit of atomicity. There is no partial-update API and no locking:
// concurrent writers race and the last full-collection write wins.
package localstore

import "context"

// Collection names a stored sequence.
type Collection string

const (
	CollectionTransactions Collection = "transactions"
	CollectionImported     Collection = "importedTransactions"
	CollectionBudgets      Collection = "budgets"
	CollectionTheme        Collection = "theme"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Store reads and replaces whole collections. Get returns nil bytes for
// a collection that was never written; that is not an error.
type Store interface {
	Get(ctx context.Context, c Collection) ([]byte, error)
	Put(ctx context.Context, c Collection, raw []byte) error
}

// Fingerprint is the cheap change detector used to suppress redundant
// aggregation runs: the concatenated serialized form of the two primary
// collections. An optimization, not a correctness requirement.
func Fingerprint(ctx context.Context, s Store) (string, error) {
	txs, err := s.Get(ctx, CollectionTransactions)
	if err != nil {
		return "", err
	}
	budgets, err := s.Get(ctx, CollectionBudgets)
	if err != nil {
		return "", err
	}
	return string(txs) + string(budgets), nil
}
