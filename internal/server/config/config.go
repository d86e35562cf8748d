// Package config handles configuration for the accountkeeper server:
// defaults, a JSON file overlay, environment variables and command-line
// flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabasePath: badger data directory.
//   - SecretKey: HMAC secret for session tokens (HS256).
//   - APIKey: when non-empty, every call must carry it in x-api-key.
//   - Durability / VerifyReadChecksums / ReadCacheMB: engine tuning, see dbx.Options.
//   - MaxConcurrentScans: how many account listings may run at once.
//   - DevExposePasswordHashes: include stored hashes in listings. Development only.
//   - PasswordHash*: argon2id cost for newly created accounts.
//   - SnapshotInterval: period of S3 snapshots, zero disables them.
//   - S3*: object storage settings for snapshots.
type Config struct {
	EndpointAddrGRPC string
	DatabasePath     string
	SecretKey        string
	APIKey           string
	LogLevel         string

	Durability          dbx.Durability
	VerifyReadChecksums bool
	ReadCacheMB         int64

	MaxConcurrentScans      int
	DevExposePasswordHashes bool

	PasswordHashMemoryKB    uint32
	PasswordHashIterations  uint32
	PasswordHashParallelism uint8

	SnapshotInterval time.Duration
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabasePath = "data/accounts"
	c.SecretKey = "secretKey"
	c.APIKey = ""
	c.LogLevel = "info"
	c.Durability = dbx.DurabilitySafe
	c.VerifyReadChecksums = true
	c.ReadCacheMB = 64
	c.MaxConcurrentScans = 2
	c.DevExposePasswordHashes = false
	c.PasswordHashMemoryKB = 64 * 1024
	c.PasswordHashIterations = 1
	c.PasswordHashParallelism = 4
	c.SnapshotInterval = 0
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "accountkeeper"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if !c.Durability.Valid() {
		errs = append(errs, fmt.Errorf("unknown durability mode %q (want %q or %q)",
			c.Durability, dbx.DurabilitySafe, dbx.DurabilityPerformance))
	}
	if c.MaxConcurrentScans < 1 {
		errs = append(errs, fmt.Errorf("max_concurrent_scans must be >= 1, got %d", c.MaxConcurrentScans))
	}
	if c.ReadCacheMB < 0 {
		errs = append(errs, fmt.Errorf("read_cache_mb must be >= 0, got %d", c.ReadCacheMB))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database_path is empty"))
	}
	if c.SnapshotInterval < 0 {
		errs = append(errs, fmt.Errorf("snapshot_interval must be >= 0, got %s", c.SnapshotInterval))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
