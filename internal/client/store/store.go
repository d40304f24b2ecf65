// Package store is the record store collaborator: list, point, insert,
// update and delete queries per kind, always scoped to one owner.
//
// Every error returned by a Store is an *errclass.StoreError, so callers can
// classify failures without knowing the driver.
package store

import (
	"context"

	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
)

// Store describes the operations the synchronization layer needs.
type Store interface {
	// List returns the summary projection (no Assets) of ownerID's records,
	// sorted and capped as declared by kind.Spec().
	List(ctx context.Context, kind models.Kind, ownerID string) ([]models.Record, error)

	// Get returns one full record.
	Get(ctx context.Context, kind models.Kind, id, ownerID string) (*models.Record, error)

	// Insert creates a record; the store assigns ID and timestamps.
	Insert(ctx context.Context, kind models.Kind, ownerID string, rec models.Record) (*models.Record, error)

	// Update applies patch and returns the updated full record.
	Update(ctx context.Context, kind models.Kind, id, ownerID string, patch models.Patch) (*models.Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, kind models.Kind, id, ownerID string) error
}
