package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir runs the test from an empty directory so no stray .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "data/bills.db", cfg.Database.Path)
	assert.Equal(t, "data/receipts", cfg.Storage.ReceiptDir)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := chdir(t)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  read_timeout: 5s
database:
  path: /tmp/test.db
logger:
  level: debug
  format: console
`), 0644))

	t.Setenv("BILLS_STORAGE_RECEIPT_DIR", "/srv/receipts")
	t.Setenv("BILLS_SERVER_HOST", "127.0.0.1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "/srv/receipts", cfg.Storage.ReceiptDir)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BILLS_SERVER_PORT=7070\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("BILLS_SERVER_PORT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t)

	_, err := Load("does-not-exist.yaml")
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestResolvePath(t *testing.T) {
	dir := chdir(t)
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 7070\n"), 0644))

	path, err := ResolvePath(file, true)
	require.NoError(t, err)
	assert.Equal(t, file, path)

	path, err = ResolvePath(DefaultPath, false)
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = ResolvePath(filepath.Join(dir, "missing.yaml"), true)
	assert.ErrorContains(t, err, "missing.yaml")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080, MaxUploadBytes: 1},
			Database: DatabaseConfig{Path: "x.db"},
			Storage:  StorageConfig{ReceiptDir: "r"},
			Logger:   LoggerConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "no upload limit", mutate: func(c *Config) { c.Server.MaxUploadBytes = 0 }, wantErr: "max_upload_bytes"},
		{name: "no database", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: "database.path"},
		{name: "no receipt dir", mutate: func(c *Config) { c.Storage.ReceiptDir = "" }, wantErr: "receipt_dir"},
		{name: "bad format", mutate: func(c *Config) { c.Logger.Format = "xml" }, wantErr: "logger.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
