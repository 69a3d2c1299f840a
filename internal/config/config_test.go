package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "romandfa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
addr: 0.0.0.0:9090
log_level: debug
concurrency: 4
store: redis
redis:
  addr: cache:6379
  db: 2
  ttl: 1h
rate_limit:
  rps: 5
  burst: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "romandfa:verdict:", cfg.Redis.Prefix, "unset fields keep defaults")
	assert.Equal(t, RateLimit{RPS: 5, Burst: 10}, cfg.RateLimit)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "Bad store", content: "store: postgres\n", want: "Config.Store"},
		{name: "Bad level", content: "log_level: loud\n", want: "Config.LogLevel"},
		{name: "Zero concurrency", content: "concurrency: 0\n", want: "Config.Concurrency"},
		{name: "Bad addr", content: "addr: not-an-address\n", want: "Config.Addr"},
		{name: "Redis without addr", content: "store: redis\nredis:\n  addr: \"\"\n", want: "requires redis.addr"},
		{name: "Malformed yaml", content: "addr: [\n", want: "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"ROMANDFA_ADDR":       "127.0.0.1:7000",
		"ROMANDFA_STORE":      "redis",
		"ROMANDFA_REDIS_ADDR": "redis:6379",
		"ROMANDFA_REDIS_DB":   "3",
	}
	cfg := Default()
	require.NoError(t, cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)

	bad := Default()
	assert.Error(t, bad.applyEnv(func(k string) (string, bool) {
		if k == "ROMANDFA_REDIS_DB" {
			return "three", true
		}
		return "", false
	}))
}
