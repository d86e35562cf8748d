package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
	"github.com/dmitrijs2005/accountkeeper/internal/flagx"
	"github.com/dmitrijs2005/accountkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Every field is a
// pointer so that keys missing from the file leave the current value alone.
type JsonConfig struct {
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	DatabasePath            *string         `json:"database_path"`
	SecretKey               *string         `json:"secret_key"`
	APIKey                  *string         `json:"api_key"`
	LogLevel                *string         `json:"log_level"`
	Durability              *string         `json:"durability"`
	VerifyReadChecksums     *bool           `json:"verify_read_checksums"`
	ReadCacheMB             *int64          `json:"read_cache_mb"`
	MaxConcurrentScans      *int            `json:"max_concurrent_scans"`
	DevExposePasswordHashes *bool           `json:"dev_expose_password_hashes"`
	PasswordHashMemoryKB    *uint32         `json:"password_hash_memory_kb"`
	PasswordHashIterations  *uint32         `json:"password_hash_iterations"`
	PasswordHashParallelism *uint8          `json:"password_hash_parallelism"`
	SnapshotInterval        *timex.Duration `json:"snapshot_interval"`
	S3RootUser              *string         `json:"s3_root_user"`
	S3RootPassword          *string         `json:"s3_root_password"`
	S3Bucket                *string         `json:"s3_bucket"`
	S3Region                *string         `json:"s3_region"`
	S3BaseEndpoint          *string         `json:"s3_base_endpoint"`
}

// parseJson overlays config with the file named by -c/-config (or $CONFIG).
// No path means nothing to load.
func parseJson(config *Config) error {
	path := flagx.ConfigPath()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.DatabasePath, c.DatabasePath)
	set(&config.SecretKey, c.SecretKey)
	set(&config.APIKey, c.APIKey)
	set(&config.LogLevel, c.LogLevel)
	if c.Durability != nil {
		config.Durability = dbx.Durability(*c.Durability)
	}
	set(&config.VerifyReadChecksums, c.VerifyReadChecksums)
	set(&config.ReadCacheMB, c.ReadCacheMB)
	set(&config.MaxConcurrentScans, c.MaxConcurrentScans)
	set(&config.DevExposePasswordHashes, c.DevExposePasswordHashes)
	set(&config.PasswordHashMemoryKB, c.PasswordHashMemoryKB)
	set(&config.PasswordHashIterations, c.PasswordHashIterations)
	set(&config.PasswordHashParallelism, c.PasswordHashParallelism)
	if c.SnapshotInterval != nil {
		config.SnapshotInterval = c.SnapshotInterval.Duration
	}
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
