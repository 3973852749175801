package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nairaland-client/internal/nairaland"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nairaland.json5")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, Config{}, cfg)

	require.NoError(t, os.WriteFile(path, []byte(`{
		// shared settings
		base_url: "https://forum.test",
		timeout_seconds: 5,
		username: "pystar",
		boards: {Golang: 1000},
	}`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nairaland.local.json5"), []byte(`{
		username: "someone_else",
		requests_per_second: -1,
	}`), 0600))

	cfg, err = loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "https://forum.test", cfg.BaseUrl)
	require.Equal(t, "someone_else", cfg.Username)
	require.Equal(t, -1.0, cfg.RequestsPerSecond)

	opts := cfg.clientOptions()
	require.Equal(t, "https://forum.test", opts.BaseUrl)
	require.Equal(t, time.Second*5, opts.Timeout)
	require.NotNil(t, opts.Boards)

	id, err := opts.Boards.Lookup("Golang")
	require.NoError(t, err)
	require.Equal(t, 1000, id)
	id, err = opts.Boards.Lookup("Technology")
	require.NoError(t, err)
	require.Equal(t, 8, id)
}

func TestConfigDefaults(t *testing.T) {
	opts := Config{}.clientOptions()
	require.Equal(t, nairaland.DefaultBaseUrl, opts.BaseUrl)
	require.Equal(t, nairaland.DefaultDirectory().Len(), opts.Boards.Len())
	require.Empty(t, opts.ErrorSelectors)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nairaland.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{base_url: `), 0600))

	_, err := loadConfig(path)
	require.Error(t, err)
}
