// Package services contains server-side business logic. AccountService
// creates accounts, checks credentials and issues session tokens; it knows
// nothing about the storage engine behind accounts.Repository.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/auth"
	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/accountkeeper/internal/timex"
)

// generatedPasswordBytes is the entropy of a generated password; its hex
// form is twice as long.
const generatedPasswordBytes = 32

// PasswordHasher is satisfied by *cryptox.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type AccountService struct {
	repo         accounts.Repository
	hasher       PasswordHasher
	secret       []byte
	exposeHashes bool
	scans        *semaphore.Weighted
	now          timex.Clock
	newUsername  func() string
	logger       logging.Logger
}

func NewAccountService(repo accounts.Repository, hasher PasswordHasher, cfg *config.Config, logger logging.Logger) *AccountService {
	scans := int64(cfg.MaxConcurrentScans)
	if scans < 1 {
		scans = 1
	}
	return &AccountService{
		repo:         repo,
		hasher:       hasher,
		secret:       []byte(cfg.SecretKey),
		exposeHashes: cfg.DevExposePasswordHashes,
		scans:        semaphore.NewWeighted(scans),
		now:          time.Now,
		newUsername:  uuid.NewString,
		logger:       logger.With("module", "account_service"),
	}
}

// CreateAccount stores a new account with a random username and password and
// returns both. The plaintext password is not kept anywhere.
func (s *AccountService) CreateAccount(ctx context.Context) (string, string, error) {
	username := s.newUsername()

	password, err := common.MakeRandHexString(generatedPasswordBytes)
	if err != nil {
		return "", "", fmt.Errorf("%w: generate password: %w", common.ErrHashing, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return "", "", fmt.Errorf("%w: %w", common.ErrHashing, err)
	}

	if err := s.repo.Create(ctx, username, hash); err != nil {
		return "", "", mapRepositoryError(err)
	}

	s.logger.Info(ctx, "account created", "username", username)
	return username, password, nil
}

// ListActiveAccounts returns every account that is not deleted. The scan
// runs on the bounded scan pool; a caller that gives up through ctx gets
// ctx.Err() while the scan winds down on its own.
func (s *AccountService) ListActiveAccounts(ctx context.Context) ([]models.AccountView, error) {
	if err := s.scans.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	type result struct {
		accounts []models.Account
		err      error
	}
	done := make(chan result, 1)

	go func() {
		defer s.scans.Release(1)
		list, err := s.repo.ListActive(ctx)
		done <- result{accounts: list, err: err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return nil, mapRepositoryError(r.err)
	}

	views := make([]models.AccountView, 0, len(r.accounts))
	for _, a := range r.accounts {
		v := models.AccountView{Username: a.Username, IsDeleted: a.IsDeleted}
		if s.exposeHashes {
			v.Password = a.PasswordHash
		}
		views = append(views, v)
	}
	return views, nil
}

// VerifyCredentials succeeds when username names an active account whose
// password is password.
func (s *AccountService) VerifyCredentials(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}

	account, err := s.activeAccount(ctx, username)
	if err != nil {
		return err
	}
	return s.checkPassword(ctx, account, password)
}

// Authenticate answers a login. With AuthMethodCredentials it checks the
// password and returns (true, ""). With AuthMethodJWT it returns a session
// token for any active account; the password is not checked in that mode,
// so callers must gate it behind a prior credential check.
func (s *AccountService) Authenticate(ctx context.Context, username, password string, method models.AuthMethod) (bool, string, error) {
	if err := validateLogin(username, password, method); err != nil {
		return false, "", err
	}

	account, err := s.activeAccount(ctx, username)
	if err != nil {
		return false, "", err
	}

	return s.login(ctx, account, password, method)
}

// login answers an already validated request for an active account. Only
// AuthMethodJWT issues tokens.
func (s *AccountService) login(ctx context.Context, account *models.Account, password string, method models.AuthMethod) (bool, string, error) {
	switch method {
	case models.AuthMethodCredentials:
		if err := s.checkPassword(ctx, account, password); err != nil {
			return false, "", err
		}
		return true, "", nil
	case models.AuthMethodJWT:
		token, err := auth.IssueSessionToken(account.Username, s.secret, s.now())
		if err != nil {
			s.logger.Error(ctx, "session token signing failed", "error", err)
			return false, "", fmt.Errorf("%w: %w", common.ErrToken, err)
		}
		s.logger.Info(ctx, "session token issued", "username", account.Username)
		return true, token, nil
	default:
		var v violations
		v.add(fieldMethod, "unsupported method "+string(method))
		return false, "", v.err()
	}
}

// DeleteAccount soft-deletes username. The record is kept, but the account
// can no longer log in and drops out of listings.
func (s *AccountService) DeleteAccount(ctx context.Context, username string) error {
	var v violations
	if blank(username) {
		v.add(fieldUsername, "username is required")
	}
	if err := v.err(); err != nil {
		return err
	}

	err := s.repo.SoftDelete(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrUserNotFound
	}
	if err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info(ctx, "account deleted", "username", username)
	return nil
}

func (s *AccountService) activeAccount(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if account == nil {
		return nil, common.ErrUserNotFound
	}
	if account.IsDeleted {
		return nil, common.ErrUserNotActive
	}
	return account, nil
}

func (s *AccountService) checkPassword(ctx context.Context, account *models.Account, password string) error {
	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored password hash unreadable", "username", account.Username, "error", err)
		return fmt.Errorf("%w: %w", common.ErrHashing, err)
	}
	if !ok {
		s.logger.Warn(ctx, "invalid credentials", "username", account.Username)
		return common.ErrInvalidCredentials
	}
	return nil
}
