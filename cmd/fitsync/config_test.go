package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openhealth/fitsync/compress"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), false)
	require.NoError(t, err)

	require.Equal(t, compress.TypeNone, cfg.ArchiveCodec)
	require.NotEmpty(t, cfg.StatePath)
	require.NotEmpty(t, cfg.LogDir)
	require.False(t, cfg.Verbose)
}

func TestLoadConfig_ExplicitMissingFileFails(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), true)
	require.Error(t, err)
}

func TestLoadConfig_Overlay(t *testing.T) {
	path := writeConfigFile(t, `
withings_access_token = "wtok"
garmin_session_token = "gtok"
state_path = "/tmp/fitsync/state.json"
output_fit = "out.fit"
archive_compression = "zstd"
verbose = true
`)

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)

	require.Equal(t, "wtok", cfg.WithingsAccessToken)
	require.Equal(t, "gtok", cfg.GarminSessionToken)
	require.Equal(t, "/tmp/fitsync/state.json", cfg.StatePath)
	require.Equal(t, "out.fit", cfg.OutputFIT)
	require.Equal(t, compress.TypeZstd, cfg.ArchiveCodec)
	require.True(t, cfg.Verbose)

	// keys absent from the file keep their defaults
	require.Equal(t, defaultConfig().LogDir, cfg.LogDir)
}

func TestLoadConfig_BadCompression(t *testing.T) {
	path := writeConfigFile(t, `archive_compression = "gzip"`)

	_, err := loadConfig(path, true)
	require.Error(t, err)
}
