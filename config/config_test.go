package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "shop_db", cfg.Database.Name)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, 5000, cfg.Web.Port)
	assert.Equal(t, "./products.json", cfg.Catalog.Path)

	// the package default is never mutated
	assert.NotSame(t, DefaultAppConfig, cfg)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tireshop.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
web:
  port: 8080
database:
  type: SQLite
  name: dev
catalog:
  path: /srv/catalog.json
`), 0o600))

	t.Setenv("TIRESHOP_WEB_PORT", "9090")
	t.Setenv("TIRESHOP_DB_PASSWD", "secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "dev", cfg.Database.Name)
	assert.Equal(t, "secret", cfg.Database.Passwd)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, "/srv/catalog.json", cfg.Catalog.Path)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("web: [unclosed"), 0o600))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestDirs(t *testing.T) {
	cfg := *DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	require.NoError(t, cfg.InitDirs())
	for _, dir := range []string{cfg.GetLogDir(), cfg.GetDataDir(), cfg.GetMetricsDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
