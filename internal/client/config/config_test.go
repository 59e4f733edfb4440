package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
)

func noEnv(string) string { return "" }

func env(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func defaults() *Config {
	var c Config
	c.LoadDefaults()
	return &c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		APIBaseURL:   "http://localhost:3001/api",
		DatabasePath: "fraudsentry.db",
		ConfirmMode:  views.ConfirmOptimistic,
		LogLevel:     "info",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
}

func TestLoad_NoSources(t *testing.T) {
	assert.Empty(t, cmp.Diff(defaults(), load(nil, noEnv)))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":  "http://json:1/api",
		"database_path": "json.db",
		"confirm_mode":  "blocking",
		"log_level":     "debug",
	})

	tests := []struct {
		name string
		args []string
		env  map[string]string
		want *Config
	}{
		{
			name: "json only",
			args: []string{"-c", path},
			want: &Config{APIBaseURL: "http://json:1/api", DatabasePath: "json.db", ConfirmMode: views.ConfirmBlocking, LogLevel: "debug"},
		},
		{
			name: "env beats json",
			args: []string{"-config", path},
			env:  map[string]string{EnvAPIBaseURL: "http://env:2/api"},
			want: &Config{APIBaseURL: "http://env:2/api", DatabasePath: "json.db", ConfirmMode: views.ConfirmBlocking, LogLevel: "debug"},
		},
		{
			name: "flags beat env and json",
			args: []string{"-c", path, "-a", "http://flag:3/api", "-d=flag.db", "-m", "optimistic", "-l", "warn"},
			env:  map[string]string{EnvAPIBaseURL: "http://env:2/api"},
			want: &Config{APIBaseURL: "http://flag:3/api", DatabasePath: "flag.db", ConfirmMode: views.ConfirmOptimistic, LogLevel: "warn"},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"-x", "1", "-d", "other.db", "--verbose"},
			want: &Config{APIBaseURL: "http://localhost:3001/api", DatabasePath: "other.db", ConfirmMode: views.ConfirmOptimistic, LogLevel: "info"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := load(tt.args, env(tt.env))
			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestLoad_PartialJSONKeepsDefaults(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"database_path": "only.db"})

	got := load([]string{"-c", path}, noEnv)

	want := defaults()
	want.DatabasePath = "only.db"
	assert.Empty(t, cmp.Diff(want, got))
}

func TestLoad_Panics(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

	cases := map[string][]string{
		"invalid json":     {"-c", bad},
		"missing file":     {"-c", filepath.Join(t.TempDir(), "absent.json")},
		"bad confirm mode": {"-m", "sometimes"},
		"bad log level":    {"-l", "loud"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			require.Panics(t, func() { load(args, noEnv) })
		})
	}
}

func TestLoad_NormalizesConfirmMode(t *testing.T) {
	got := load([]string{"-m", "BLOCKING"}, noEnv)
	assert.Equal(t, views.ConfirmBlocking, got.ConfirmMode)
}
