// Package server wires the account store, services and gRPC endpoint
// together and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/accountkeeper/internal/cryptox"
	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
	"github.com/dmitrijs2005/accountkeeper/internal/filex"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/config"
	"github.com/dmitrijs2005/accountkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/accountkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/accountkeeper/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	store     repomanager.RepositoryManager
	accounts  *services.AccountService
	snapshots *services.SnapshotService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel)
	return newApp(c, logger)
}

func newApp(c *config.Config, logger logging.Logger) (*App, error) {
	hasher, err := cryptox.NewPasswordHasher(cryptox.PasswordParams{
		MemoryKB:    c.PasswordHashMemoryKB,
		Iterations:  c.PasswordHashIterations,
		Parallelism: c.PasswordHashParallelism,
		SaltLength:  cryptox.DefaultPasswordParams().SaltLength,
		KeyLength:   cryptox.DefaultPasswordParams().KeyLength,
	})
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	path, err := filex.EnsureDir(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db dir: %w", err)
	}

	store, err := repomanager.NewBadgerRepositoryManager(dbx.Options{
		Path:                path,
		Durability:          c.Durability,
		VerifyReadChecksums: c.VerifyReadChecksums,
		ReadCacheMB:         c.ReadCacheMB,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:    c,
		logger:    logger,
		store:     store,
		accounts:  services.NewAccountService(store.Accounts(), hasher, c, logger),
		snapshots: services.NewSnapshotService(store, c, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts, app.config.APIKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// logStartupWarnings reports settings that trade safety for speed or
// expose secrets.
func (app *App) logStartupWarnings(ctx context.Context) {
	if app.config.Durability == dbx.DurabilityPerformance {
		app.logger.Warn(ctx, "store runs in performance mode, acknowledged writes may be lost on crash")
	}
	if !app.config.VerifyReadChecksums {
		app.logger.Warn(ctx, "read checksum verification is off, corrupt blocks may go undetected")
	}
	if app.config.DevExposePasswordHashes {
		app.logger.Warn(ctx, "account listings include password hashes")
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"db_path", app.config.DatabasePath,
		"durability", app.config.Durability,
		"verify_read_checksums", app.config.VerifyReadChecksums,
	)
	app.logStartupWarnings(ctx)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.SnapshotInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.snapshots.Run(ctx, app.config.SnapshotInterval)
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "Closing store...")
	if err := app.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
