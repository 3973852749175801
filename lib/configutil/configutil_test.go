package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl  string         `json:"base_url"`
	Username string         `json:"username"`
	Rate     float64        `json:"rate"`
	Boards   map[string]int `json:"boards"`
}

func write(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "dir/nairaland.local.json5", LocalPath("dir/nairaland.json5"))
	require.Equal(t, "config.local", LocalPath("config"))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nairaland.json5")

	_, err := ReadConfig[testConfig](path)
	require.ErrorIs(t, err, os.ErrNotExist)

	write(t, path, `{
		// comments and trailing commas are fine in json5
		base_url: "https://www.nairaland.com",
		username: "pystar",
		boards: {Technology: 8},
	}`)
	write(t, LocalPath(path), `{username: "someone_else", rate: 0.5}`)

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "https://www.nairaland.com", cfg.BaseUrl)
	require.Equal(t, "someone_else", cfg.Username)
	require.Equal(t, 0.5, cfg.Rate)
	require.Equal(t, map[string]int{"Technology": 8}, cfg.Boards)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))
	write(t, filepath.Join(root, "nairaland.json5"), `{username: "pystar"}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer os.Chdir(wd)

	cfg, err := ReadRecursively[testConfig]("nairaland.json5")
	require.NoError(t, err)
	require.Equal(t, "pystar", cfg.Username)

	_, err = ReadRecursively[testConfig]("does-not-exist.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}
