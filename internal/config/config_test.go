package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, config.DefaultTitle, cfg.Title)
	assert.Equal(t, filepath.Join(dir, "TaskListApp.sqlite"), cfg.StorePath())
	assert.Equal(t, filepath.Join(dir, "tasklist.log"), cfg.LogPath())
}

func TestNew_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "elsewhere.db")
	yml := "database: " + db + "\ntitle: Groceries\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0600))

	cfg, err := config.New(dir)
	require.NoError(t, err)

	assert.Equal(t, db, cfg.StorePath())
	assert.Equal(t, "Groceries", cfg.Title)
}

func TestNew_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("title: [unclosed"), 0600))

	_, err := config.New(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config.yaml")
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "tasklist"), config.DefaultConfigDir())
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tasklist")
	cfg := &config.Config{Dir: dir}

	require.NoError(t, cfg.EnsureDir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
