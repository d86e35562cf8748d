package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		start     Config
		expected  Config
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-k", "api", "-l", "debug",
				"-w", "performance", "-m", "16", "-n", "4", "-i", "5",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
			},
			expected: Config{
				EndpointAddrGRPC:   "127.0.0.1:9090",
				DatabasePath:       "db",
				SecretKey:          "secret",
				APIKey:             "api",
				LogLevel:           "debug",
				Durability:         dbx.DurabilityPerformance,
				ReadCacheMB:        16,
				MaxConcurrentScans: 4,
				SnapshotInterval:   5 * time.Minute,
				S3RootUser:         "user",
				S3RootPassword:     "password",
				S3Bucket:           "bucket",
				S3Region:           "us-west-1",
				S3BaseEndpoint:     "http://endpoint",
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-z", "whatever", "-c", "cfg.json", "-s", "secret"},
			start:    Config{Durability: dbx.DurabilitySafe},
			expected: Config{SecretKey: "secret", Durability: dbx.DurabilitySafe},
		},
		{
			name:     "interval flag absent keeps sub-minute value",
			args:     []string{},
			start:    Config{SnapshotInterval: 30 * time.Second, Durability: dbx.DurabilitySafe},
			expected: Config{SnapshotInterval: 30 * time.Second, Durability: dbx.DurabilitySafe},
		},
		{
			name:      "bad number",
			args:      []string{"-n", "many"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			config := tt.start
			err := parseFlags(&config)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseEnv(t *testing.T) {
	cleanEnv(t)
	t.Setenv(EnvDatabasePath, "/data")
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvDevExpose, "true")

	c := Config{SecretKey: "keep", LogLevel: "info"}
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, "/data", c.DatabasePath)
	assert.Equal(t, "key", c.APIKey)
	assert.Equal(t, "keep", c.SecretKey)
	assert.Equal(t, "info", c.LogLevel)
	assert.True(t, c.DevExposePasswordHashes)

	t.Setenv(EnvDevExpose, "sometimes")
	err := parseEnv(&c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDevExpose)
}
