package accounts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dgraph-io/badger/v4"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// BadgerRepository stores accounts in a shared badger handle. Every method
// is a single badger transaction; there is no cross-call locking, so two
// concurrent Creates for one username end with whichever commits last.
type BadgerRepository struct {
	db     *badger.DB
	logger logging.Logger
}

func NewBadgerRepository(db *badger.DB, logger logging.Logger) *BadgerRepository {
	return &BadgerRepository{db: db, logger: logger.With("module", "account_repository")}
}

func (r *BadgerRepository) Create(ctx context.Context, username, passwordHash string) error {
	account := models.Account{Username: username, PasswordHash: passwordHash}
	if err := r.put(ctx, "create", account); err != nil {
		return err
	}
	r.logger.Debug(ctx, "account written", "username", username)
	return nil
}

func (r *BadgerRepository) Get(ctx context.Context, username string) (*models.Account, error) {
	key := Key(username)

	r.logger.Debug(ctx, "reading account", "username", username)

	var value []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		r.logger.Debug(ctx, "account not found", "username", username)
		return nil, nil
	}
	if err != nil {
		r.logger.Error(ctx, "account read failed", "username", username, "error", err)
		return nil, &StoreError{Kind: common.ErrStorageIO, Op: "get", Key: string(key), Err: err}
	}

	account, err := Decode(value)
	if err != nil {
		r.logger.Error(ctx, "account decode failed", "username", username, "error", err)
		return nil, &StoreError{Kind: common.ErrDecode, Op: "get", Key: string(key), Err: err}
	}
	return &account, nil
}

func (r *BadgerRepository) ListActive(ctx context.Context) ([]models.Account, error) {
	prefix := []byte(common.AccountKeyPrefix)
	accounts := make([]models.Account, 0)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		// Values are fetched only for keys under the account prefix.
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := it.Item()
			key := item.Key()
			if !utf8.Valid(key) {
				return &StoreError{Kind: common.ErrKeyEncoding, Op: "list", Key: fmt.Sprintf("%x", key), Err: errInvalidUTF8}
			}
			if !bytes.HasPrefix(key, prefix) {
				continue
			}

			value, err := item.ValueCopy(nil)
			if err != nil {
				return &StoreError{Kind: common.ErrStorageIO, Op: "list", Key: string(key), Err: err}
			}
			account, err := Decode(value)
			if err != nil {
				return &StoreError{Kind: common.ErrDecode, Op: "list", Key: string(key), Err: err}
			}
			if !account.IsDeleted {
				accounts = append(accounts, account)
			}
		}
		return nil
	})
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		r.logger.Debug(ctx, "account scan abandoned", "error", err)
		return nil, err
	}
	if err != nil {
		var se *StoreError
		if !errors.As(err, &se) {
			err = &StoreError{Kind: common.ErrStorageIO, Op: "list", Err: err}
		}
		r.logger.Error(ctx, "account scan failed", "error", err)
		return nil, err
	}

	r.logger.Debug(ctx, "account scan finished", "active", len(accounts))
	return accounts, nil
}

// SoftDelete flips IsDeleted inside one read-modify-write transaction and
// retries when a concurrent write to the same key wins the commit. On-disk
// engines without SyncWrites are synced afterwards so the tombstone is
// durable in performance mode as well.
func (r *BadgerRepository) SoftDelete(ctx context.Context, username string) error {
	key := Key(username)

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			return r.tombstone(txn, key)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		r.logger.Debug(ctx, "soft delete conflict, retrying", "username", username, "attempt", attempt+1)
	}

	var se *StoreError
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return common.ErrorNotFound
	case errors.As(err, &se):
		r.logger.Error(ctx, "account soft delete failed", "username", username, "error", err)
		return se
	case err != nil:
		r.logger.Error(ctx, "account soft delete failed", "username", username, "error", err)
		return &StoreError{Kind: common.ErrStorageIO, Op: "soft_delete", Key: string(key), Err: err}
	}

	if opts := r.db.Opts(); !opts.InMemory && !opts.SyncWrites {
		if err := r.db.Sync(); err != nil {
			return &StoreError{Kind: common.ErrStorageIO, Op: "soft_delete", Key: string(key), Err: err}
		}
	}

	r.logger.Debug(ctx, "account soft deleted", "username", username)
	return nil
}

const maxConflictRetries = 3

func (r *BadgerRepository) tombstone(txn *badger.Txn, key []byte) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}

	account, err := Decode(value)
	if err != nil {
		return &StoreError{Kind: common.ErrDecode, Op: "soft_delete", Key: string(key), Err: err}
	}
	account.IsDeleted = true

	value, err = Encode(account)
	if err != nil {
		return &StoreError{Kind: common.ErrEncode, Op: "soft_delete", Key: string(key), Err: err}
	}
	return txn.Set(key, value)
}

func (r *BadgerRepository) put(ctx context.Context, op string, account models.Account) error {
	key := Key(account.Username)

	value, err := Encode(account)
	if err != nil {
		r.logger.Error(ctx, "account encode failed", "username", account.Username, "error", err)
		return &StoreError{Kind: common.ErrEncode, Op: op, Key: string(key), Err: err}
	}

	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	}); err != nil {
		r.logger.Error(ctx, "account write failed", "username", account.Username, "error", err)
		return &StoreError{Kind: common.ErrStorageIO, Op: op, Key: string(key), Err: err}
	}
	return nil
}
