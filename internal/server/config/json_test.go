package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	unsetEnv(t, "CONFIG")

	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_grpc":         "www.example:9000",
		"database_path":              "/var/lib/accounts",
		"secret_key":                 "my_secret_key",
		"api_key":                    "k-123",
		"log_level":                  "debug",
		"durability":                 "performance",
		"verify_read_checksums":      false,
		"read_cache_mb":              0,
		"max_concurrent_scans":       8,
		"dev_expose_password_hashes": true,
		"password_hash_memory_kb":    2048,
		"password_hash_iterations":   3,
		"password_hash_parallelism":  2,
		"snapshot_interval":          "90s",
		"s3_root_user":               "user",
		"s3_root_password":           "password",
		"s3_bucket":                  "bucket",
		"s3_region":                  "region",
		"s3_base_endpoint":           "base_endpoint",
	})

	t.Run("loads every field", func(t *testing.T) {
		withArgs(t, "-config", full)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, Config{
			EndpointAddrGRPC:        "www.example:9000",
			DatabasePath:            "/var/lib/accounts",
			SecretKey:               "my_secret_key",
			APIKey:                  "k-123",
			LogLevel:                "debug",
			Durability:              dbx.DurabilityPerformance,
			VerifyReadChecksums:     false,
			ReadCacheMB:             0,
			MaxConcurrentScans:      8,
			DevExposePasswordHashes: true,
			PasswordHashMemoryKB:    2048,
			PasswordHashIterations:  3,
			PasswordHashParallelism: 2,
			SnapshotInterval:        90 * time.Second,
			S3RootUser:              "user",
			S3RootPassword:          "password",
			S3Bucket:                "bucket",
			S3Region:                "region",
			S3BaseEndpoint:          "base_endpoint",
		}, *cfg)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"secret_key": "only-this"})
		withArgs(t, "-c", partial)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "only-this", cfg.SecretKey)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.True(t, cfg.VerifyReadChecksums)
	})

	t.Run("path from environment", func(t *testing.T) {
		withArgs(t)
		t.Setenv("CONFIG", full)

		cfg := &Config{}
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
	})

	t.Run("no path -> no changes", func(t *testing.T) {
		withArgs(t)
		unsetEnv(t, "CONFIG")

		cfg := &Config{SecretKey: "keep"}
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, "keep", cfg.SecretKey)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
		withArgs(t, "-c", bad)

		assert.Error(t, parseJson(&Config{}))
	})
}
