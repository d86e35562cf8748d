package accounts

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// Repository is the narrow contract the account service uses for
// persistence. Implementations must be safe for concurrent use.
type Repository interface {
	// Create writes a fresh, active record for username, replacing any
	// record already stored under the same key.
	Create(ctx context.Context, username, passwordHash string) error

	// Get returns the record for username, or nil if none was ever written.
	Get(ctx context.Context, username string) (*models.Account, error)

	// ListActive scans the whole keyspace in key order and returns every
	// account record that is not deleted. Cost is linear in the number of
	// stored keys, tombstones included. A cancelled ctx aborts the scan and
	// its error is returned as is.
	ListActive(ctx context.Context) ([]models.Account, error)

	// SoftDelete marks an existing record deleted. The record stays in the
	// store. Returns common.ErrorNotFound for unknown usernames.
	SoftDelete(ctx context.Context, username string) error
}
