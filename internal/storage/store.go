// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/okatsu/sharehouse/internal/models"
)

// Store defines the interface for sharehouse persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger layer, and lets tests inject doubles instead of
// opening a file per call.
//
// Contract shared by all entities:
//   - Create methods assign a monotonically increasing id and populate the
//     model's ID field.
//   - List methods return the full live set in insertion order.
//   - Get methods return (nil, nil) when no row matches.
//   - Delete methods remove exactly the row with the given id and report
//     whether a row was found; a miss is not an error. Deletes never cascade:
//     removing a referenced Person or Item leaves dangling references behind,
//     exactly as the schema allows.
type Store interface {
	// People.
	CreatePerson(ctx context.Context, person *models.Person) error
	GetPerson(ctx context.Context, id int64) (*models.Person, error)
	ListPeople(ctx context.Context) ([]models.Person, error)
	DeletePerson(ctx context.Context, id int64) (bool, error)

	// Items.
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)

	// Debts. CreateDebt inserts the origin and the mapping in a single
	// transaction: both rows become visible or neither does. DeleteDebt
	// removes the mapping rows for an origin and, when retainOrigin is
	// false, the origin row too, in one transaction.
	CreateDebt(ctx context.Context, origin *models.DebtOrigin, mapping *models.DebtMapping) error
	DeleteDebt(ctx context.Context, originID int64, retainOrigin bool) (bool, error)

	// Household needs. MarkNeedPurchased flips the purchased flag in place;
	// the row is never deleted.
	CreateNeed(ctx context.Context, need *models.HouseholdNeed) error
	MarkNeedPurchased(ctx context.Context, id int64) (bool, error)

	// Credentials. Values are stored as opaque sealed bytes; sealing and
	// opening is the vault's job, not the store's.
	CreateCredential(ctx context.Context, name string, sealed []byte, personID int64) (int64, error)
	ListCredentials(ctx context.Context) ([]SealedCredential, error)
	DeleteCredential(ctx context.Context, id int64) (bool, error)

	// Aggregations: read-only derived views joining across entities.
	TotalOwedPerPerson(ctx context.Context) ([]models.PersonTotal, error)
	UnresolvedDebtDetails(ctx context.Context) ([]models.DebtDetail, error)
	NeedsByStatus(ctx context.Context, purchased bool) ([]models.NeedStatus, error)

	// Close releases any resources held by the store.
	Close() error
}

// SealedCredential is a credential row as persisted: the value is ciphertext.
type SealedCredential struct {
	ID       int64
	Name     string
	Sealed   []byte
	PersonID int64
}
