package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"warehouse-inventory/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Equal(t, "inventory "+Version+"\n", out.String())
}

func TestMigrateCommandWithSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "inventory.db")

	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: warn\ndatabase:\n  driver: sqlite\n"), 0o600))

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("INVENTORY_DATABASE_PATH="+dbPath+"\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("INVENTORY_DATABASE_PATH") })

	rootCmd.SetArgs([]string{"migrate", "--config", configPath, "--env-file", envPath})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Equal(t, "sqlite", config.Cfg.Database.Driver)
	assert.Equal(t, dbPath, config.Cfg.Database.Path)
	assert.Equal(t, "warn", config.Cfg.LogLevel)
	assert.FileExists(t, dbPath)
}

func TestMissingConfigFileFails(t *testing.T) {
	dir := t.TempDir()

	rootCmd.SetArgs([]string{
		"migrate",
		"--config", filepath.Join(dir, "absent.yaml"),
		"--env-file", filepath.Join(dir, "absent.env"),
	})

	assert.Error(t, rootCmd.ExecuteContext(context.Background()))
}
