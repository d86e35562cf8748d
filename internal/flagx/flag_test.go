package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	cfgFlags := []string{"-c", "--config"}
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"short flag with value", []string{"-c", "conf.json", "-d", "/data"}, cfgFlags, []string{"-c", "conf.json"}},
		{"equals form", []string{"--config=alt.json", "-a", ":50051"}, cfgFlags, []string{"--config=alt.json"}},
		{"equals value may start with dash", []string{"--config=--weird.json"}, cfgFlags, []string{"--config=--weird.json"}},
		{"unknown and positional dropped", []string{"-x", "1", "--y=2", "positional"}, cfgFlags, []string{}},
		{"dangling flag kept", []string{"-c"}, cfgFlags, []string{"-c"}},
		{"next flag is not a value", []string{"-c", "--config=alt.json"}, cfgFlags, []string{"-c", "--config=alt.json"}},
		{"server flags kept in order", []string{"-a", ":9000", "-c", "conf.json", "-k", "key", "-w", "performance"}, []string{"-a", "-k", "-w"}, []string{"-a", ":9000", "-k", "key", "-w", "performance"}},
		{"repeated flag kept", []string{"-c", "one.json", "-c", "two.json"}, []string{"-c"}, []string{"-c", "one.json", "-c", "two.json"}},
		{"nil args", nil, cfgFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func Test_configPath(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", configPath([]string{"-c", "/path/short.json"}, ""))
	})

	t.Run("long -config with value", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", configPath([]string{"-config", "/path/long.json"}, ""))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, configPath([]string{"-x", "1", "-y", "2"}, ""))
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", configPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}, ""))
	})

	t.Run("env fallback when no flag", func(t *testing.T) {
		assert.Equal(t, "/etc/accountkeeper.json", configPath([]string{"-a", ":1"}, "/etc/accountkeeper.json"))
	})

	t.Run("flag beats env", func(t *testing.T) {
		assert.Equal(t, "/path/flag.json", configPath([]string{"-c", "/path/flag.json"}, "/etc/env.json"))
	})
}

func TestConfigPath_ReadsOSArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(ConfigEnvVar, "")

	os.Args = []string{"testbin", "-config", "/path/os.json"}
	assert.Equal(t, "/path/os.json", ConfigPath())
}
