// Package dbx opens the embedded badger engine that backs the account store
// and routes the engine's own log output into the application logger.
package dbx

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
)

// Durability selects when a write is acknowledged.
type Durability string

const (
	// DurabilitySafe fsyncs every write before acknowledging it.
	DurabilitySafe Durability = "safe"

	// DurabilityPerformance acknowledges writes before they reach disk.
	// A crash can lose writes that callers already saw succeed.
	DurabilityPerformance Durability = "performance"
)

// Valid reports whether d is a known durability mode.
func (d Durability) Valid() bool {
	return d == DurabilitySafe || d == DurabilityPerformance
}

// Options is the engine tuning exposed to operators.
type Options struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path     string
	InMemory bool

	Durability Durability

	// VerifyReadChecksums makes every block and value read check its
	// checksum. Turning it off trades corruption detection for latency.
	VerifyReadChecksums bool

	// ReadCacheMB sizes the block cache filled by reads. Zero disables the
	// cache and, with it, block compression.
	ReadCacheMB int64

	Logger logging.Logger
}

// BadgerOptions translates o into badger options.
func (o Options) BadgerOptions() badger.Options {
	bo := badger.DefaultOptions(o.Path)
	if o.InMemory {
		bo = badger.DefaultOptions("").WithInMemory(true)
	}

	bo = bo.WithSyncWrites(o.Durability != DurabilityPerformance)

	if o.VerifyReadChecksums {
		bo = bo.WithChecksumVerificationMode(options.OnBlockRead).WithVerifyValueChecksum(true)
	} else {
		bo = bo.WithChecksumVerificationMode(options.NoVerification).WithVerifyValueChecksum(false)
	}

	cache := o.ReadCacheMB << 20
	bo = bo.WithBlockCacheSize(cache)
	if cache == 0 {
		bo = bo.WithCompression(options.None)
	}

	if o.Logger != nil {
		bo = bo.WithLogger(NewBadgerLogger(o.Logger))
	} else {
		bo = bo.WithLogger(nil)
	}
	return bo
}

// Open opens (or creates) the engine described by o.
func Open(o Options) (*badger.DB, error) {
	if o.Durability == "" {
		o.Durability = DurabilitySafe
	}
	if !o.Durability.Valid() {
		return nil, fmt.Errorf("unknown durability mode %q", o.Durability)
	}

	db, err := badger.Open(o.BadgerOptions())
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", o.Path, err)
	}
	return db, nil
}

// BadgerLogger implements badger.Logger on top of logging.Logger.
type BadgerLogger struct {
	l logging.Logger
}

func NewBadgerLogger(l logging.Logger) *BadgerLogger {
	return &BadgerLogger{l: l.With("module", "badger")}
}

func (b *BadgerLogger) Errorf(format string, args ...any) {
	b.l.Error(context.Background(), line(format, args))
}

func (b *BadgerLogger) Warningf(format string, args ...any) {
	b.l.Warn(context.Background(), line(format, args))
}

func (b *BadgerLogger) Infof(format string, args ...any) {
	b.l.Info(context.Background(), line(format, args))
}

func (b *BadgerLogger) Debugf(format string, args ...any) {
	b.l.Debug(context.Background(), line(format, args))
}

func line(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
