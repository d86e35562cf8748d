// Package repomanager owns the storage engine handle and vends the
// repositories built on top of it.
package repomanager

import (
	"context"
	"io"

	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

// RepositoryManager is what the application layer sees of storage.
type RepositoryManager interface {
	Accounts() accounts.Repository
	// Backup writes a full snapshot of the engine to w and returns the
	// version it was taken at.
	Backup(ctx context.Context, w io.Writer) (uint64, error)
	Close() error
}
