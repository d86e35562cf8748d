package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/cryptox"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
)

// fakeAccountsRepo is an in-memory accounts.Repository with error injection.
type fakeAccountsRepo struct {
	mu      sync.Mutex
	records map[string]models.Account

	createErr error
	getErr    error
	listErr   error
	deleteErr error

	// listStarted/listRelease let a test hold ListActive open.
	listStarted chan struct{}
	listRelease chan struct{}

	getCalls int
}

var _ accounts.Repository = (*fakeAccountsRepo)(nil)

func newFakeRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{records: map[string]models.Account{}}
}

func (f *fakeAccountsRepo) Create(_ context.Context, username, passwordHash string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[username] = models.Account{Username: username, PasswordHash: passwordHash}
	return nil
}

func (f *fakeAccountsRepo) Get(_ context.Context, username string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.records[username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeAccountsRepo) ListActive(ctx context.Context) ([]models.Account, error) {
	if f.listStarted != nil {
		f.listStarted <- struct{}{}
	}
	if f.listRelease != nil {
		select {
		case <-f.listRelease:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Account, 0, len(f.records))
	for _, a := range f.records {
		if !a.IsDeleted {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeAccountsRepo) SoftDelete(_ context.Context, username string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.records[username]
	if !ok {
		return common.ErrorNotFound
	}
	a.IsDeleted = true
	f.records[username] = a
	return nil
}

func (f *fakeAccountsRepo) put(a models.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[a.Username] = a
}

// stubHasher returns canned results.
type stubHasher struct {
	hashErr   error
	verifyOK  bool
	verifyErr error
}

func (s stubHasher) Hash(string) (string, error) {
	if s.hashErr != nil {
		return "", s.hashErr
	}
	return "stub-hash", nil
}

func (s stubHasher) Verify(string, string) (bool, error) {
	return s.verifyOK, s.verifyErr
}

var errDiskGone = errors.New("disk gone")

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

func fastHasher(t *testing.T) *cryptox.PasswordHasher {
	t.Helper()
	h, err := cryptox.NewPasswordHasher(cryptox.PasswordParams{MemoryKB: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	require.NoError(t, err)
	return h
}

func newTestService(t *testing.T, repo accounts.Repository, hasher PasswordHasher, cfg *config.Config) *AccountService {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	if hasher == nil {
		hasher = fastHasher(t)
	}
	return NewAccountService(repo, hasher, cfg, logging.Nop())
}

func mustHash(t *testing.T, h PasswordHasher, p string) string {
	t.Helper()
	s, err := h.Hash(p)
	require.NoError(t, err)
	return s
}
