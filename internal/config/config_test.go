package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config file candidates in cwd
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, time.Hour, cfg.Server.PresignTTL)
	assert.Equal(t, "localhost:9000", cfg.Store.Endpoint)
	assert.Equal(t, "s3sync", cfg.Store.Bucket)
	assert.False(t, cfg.Store.UseSSL)
	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s3sync.yaml")
	content := []byte("server:\n  listen: \":9090\"\n  presign_ttl: 15m\nstore:\n  bucket: media\n  endpoint: minio.internal:9000\n  use_ssl: true\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 15*time.Minute, cfg.Server.PresignTTL)
	assert.Equal(t, "media", cfg.Store.Bucket)
	assert.Equal(t, "minio.internal:9000", cfg.Store.Endpoint)
	assert.True(t, cfg.Store.UseSSL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s3sync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
