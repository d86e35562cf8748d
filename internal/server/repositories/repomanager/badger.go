package repomanager

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

// BadgerRepositoryManager shares one badger handle between all repositories.
type BadgerRepositoryManager struct {
	db       *badger.DB
	accounts *accounts.BadgerRepository
	logger   logging.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewBadgerRepositoryManager opens the engine described by opts.
func NewBadgerRepositoryManager(opts dbx.Options, logger logging.Logger) (*BadgerRepositoryManager, error) {
	if opts.Logger == nil {
		opts.Logger = logger
	}
	db, err := dbx.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerRepositoryManager{
		db:       db,
		accounts: accounts.NewBadgerRepository(db, logger),
		logger:   logger,
	}, nil
}

func (m *BadgerRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func (m *BadgerRepositoryManager) Backup(ctx context.Context, w io.Writer) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	version, err := m.db.Backup(w, 0)
	if err != nil {
		return 0, fmt.Errorf("backup: %w", err)
	}
	m.logger.Info(ctx, "backup written", "version", version)
	return version, nil
}

// Close flushes and closes the engine. It is safe to call more than once.
func (m *BadgerRepositoryManager) Close() error {
	m.closeOnce.Do(func() {
		m.closeErr = m.db.Close()
	})
	return m.closeErr
}
