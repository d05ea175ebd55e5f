package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_UsesHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPCYCLE_HOME", dir)
	t.Setenv("UPCYCLE_LOG_LEVEL", "DEBUG")
	t.Setenv("UPCYCLE_LOG_CONSOLE", "true")

	cfg := DefaultConfig()
	require.Equal(t, BackendLocal, cfg.Backend)
	require.Equal(t, filepath.Join(dir, "upcycle.db"), cfg.DBPath)
	require.Equal(t, filepath.Join(dir, "logs", "upcycle.log"), cfg.LogFile)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.True(t, cfg.LogConsole)

	d, err := cfg.ScanDuration()
	require.NoError(t, err)
	require.Equal(t, 2500*time.Millisecond, d)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("UPCYCLE_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("UPCYCLE_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Backend = BackendRemote
	cfg.ScanDelay = "10ms"
	cfg.Username = "Sari"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("UPCYCLE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: Budi\n"), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.Equal(t, "Budi", cfg.Username)
	require.Equal(t, BackendLocal, cfg.Backend)
	require.Equal(t, "2.5s", cfg.ScanDelay)
}

func TestLoadFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("backend: cloud\n"), 0644))
	_, err := LoadFrom(path)
	require.ErrorContains(t, err, "unknown backend")

	require.NoError(t, os.WriteFile(path, []byte("scan_delay: soon\n"), 0644))
	_, err = LoadFrom(path)
	require.ErrorContains(t, err, "scan_delay")

	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0644))
	_, err = LoadFrom(path)
	require.Error(t, err)
}
