package repomanager

import (
	"bytes"
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

func newManager(t *testing.T, opts dbx.Options) *BadgerRepositoryManager {
	t.Helper()
	m, err := NewBadgerRepositoryManager(opts, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestNewBadgerRepositoryManager_InvalidDurability(t *testing.T) {
	_, err := NewBadgerRepositoryManager(dbx.Options{InMemory: true, Durability: "fast"}, logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown durability mode")
}

func TestManager_AccountsShareEngine(t *testing.T) {
	m := newManager(t, dbx.Options{InMemory: true})
	var _ RepositoryManager = m

	ctx := context.Background()
	require.NoError(t, m.Accounts().Create(ctx, "alice", "h"))

	got, err := m.Accounts().Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "h", got.PasswordHash)
}

func TestManager_BackupRestoresIntoFreshEngine(t *testing.T) {
	src := newManager(t, dbx.Options{InMemory: true})
	ctx := context.Background()

	require.NoError(t, src.Accounts().Create(ctx, "alice", "ha"))
	require.NoError(t, src.Accounts().Create(ctx, "bob", "hb"))
	require.NoError(t, src.Accounts().SoftDelete(ctx, "bob"))

	var buf bytes.Buffer
	version, err := src.Backup(ctx, &buf)
	require.NoError(t, err)
	assert.NotZero(t, version)
	assert.NotZero(t, buf.Len())

	dst, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	defer dst.Close()
	require.NoError(t, dst.Load(&buf, 16))

	restored := &BadgerRepositoryManager{db: dst, accounts: accounts.NewBadgerRepository(dst, logging.Nop()), logger: logging.Nop()}

	active, err := restored.Accounts().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "alice", active[0].Username)

	bob, err := restored.Accounts().Get(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, bob)
	assert.True(t, bob.IsDeleted)
}

func TestManager_BackupCancelled(t *testing.T) {
	m := newManager(t, dbx.Options{InMemory: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Backup(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager_CloseTwice(t *testing.T) {
	m, err := NewBadgerRepositoryManager(dbx.Options{InMemory: true}, logging.Nop())
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestManager_OnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	m, err := NewBadgerRepositoryManager(dbx.Options{Path: dir, Durability: dbx.DurabilitySafe}, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Accounts().Create(ctx, "alice", "h"))
	require.NoError(t, m.Close())

	reopened := newManager(t, dbx.Options{Path: dir, Durability: dbx.DurabilityPerformance, VerifyReadChecksums: true, ReadCacheMB: 8})
	got, err := reopened.Accounts().Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "h", got.PasswordHash)
}
