package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nairaland-client/internal/nairaland/nairalandtest"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args, where args[0] is the subcommand.
// Persistent flags are reset first since cobra keeps their values between
// runs.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	out := &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})

	reset := []string{
		"--config=" + filepath.Join(t.TempDir(), "missing.json5"),
		"--base-url=",
		"--username=",
		"--password-file=",
		"--dump-http=",
		"--log-file=",
	}
	full := append([]string{args[0]}, reset...)
	rootCmd.SetArgs(append(full, args[1:]...))

	err := run(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, forum *nairalandtest.Forum) string {
	path := filepath.Join(t.TempDir(), "nairaland.json5")
	contents := fmt.Sprintf(`{
		base_url: %q,
		requests_per_second: -1,
		boards: {Golang: 1000},
	}`, forum.URL())
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestBoardsCommand(t *testing.T) {
	out, err := execute(t, "", "boards", "prog")
	require.NoError(t, err)
	require.Contains(t, out, "Programming")
	require.Contains(t, out, "34")
	require.NotContains(t, out, "Technology")
}

func TestLoginCommand(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.AddAccount("pystar", "hunter2")
	dumps := t.TempDir()

	out, err := execute(
		t, "pystar\nhunter2\n", "login",
		"--base-url="+forum.URL(),
		"--dump-http="+dumps,
	)
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as pystar")
	require.Equal(t, 1, forum.Count("/do_login"))
	require.Equal(t, 1, forum.Count("/do_logout"))
	require.Equal(t, 0, forum.ActiveSessions())

	entries, err := os.ReadDir(dumps)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		contents, err := os.ReadFile(filepath.Join(dumps, entry.Name()))
		require.NoError(t, err)
		require.NotContains(t, string(contents), "hunter2")
	}
}

func TestLoginCommandRejected(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.AddAccount("pystar", "hunter2")

	_, err := execute(t, "wrong\n", "login", "--base-url="+forum.URL(), "--username=pystar")
	require.ErrorContains(t, err, "Incorrect username or password")
	require.Equal(t, 0, forum.Count("/do_logout"))
}

func TestPostCommand(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.AddAccount("pystar", "hunter2")

	out, err := execute(
		t, "hunter2\n", "post",
		"--title", "Hello Gophers",
		"--body", "First post",
		"--board", "Golang",
		"--username=pystar",
		"--config="+writeConfig(t, forum),
	)
	require.NoError(t, err)
	require.Contains(t, out, `Created topic "Hello Gophers" on board 1000`)
	require.Equal(t, []nairalandtest.Topic{{
		Author: "pystar",
		Title:  "Hello Gophers",
		Body:   "First post",
		Board:  1000,
	}}, forum.Topics())
}

func TestFollowCommand(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.AddAccount("pystar", "hunter2")

	out, err := execute(
		t, "hunter2\n", "follow", "seun",
		"--username=pystar",
		"--config="+writeConfig(t, forum),
	)
	require.NoError(t, err)
	require.Contains(t, out, "Now following seun")
	require.Equal(t, []nairalandtest.Follow{{Follower: "pystar", Member: "seun"}}, forum.Follows())
}

func TestChangePasswordCommand(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.AddAccount("pystar", "hunter2")

	_, err := execute(
		t, "hunter2\nnew-secret\nnew-secret\n", "change-password",
		"--username=pystar",
		"--config="+writeConfig(t, forum),
	)
	require.NoError(t, err)
	require.Equal(t, "new-secret", forum.Password("pystar"))
}

func TestDeactivateCommand(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.AddAccount("pystar", "hunter2")

	_, err := execute(
		t, "hunter2\n", "deactivate",
		"--username=pystar",
		"--config="+writeConfig(t, forum),
	)
	require.ErrorContains(t, err, "--yes")
	require.Equal(t, 0, forum.Total())

	_, err = execute(
		t, "hunter2\n", "deactivate", "--yes",
		"--username=pystar",
		"--config="+writeConfig(t, forum),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"pystar"}, forum.Deactivations())
}

func TestFrontpageCommand(t *testing.T) {
	forum := nairalandtest.NewForum(t)
	forum.SetFeatured([]nairalandtest.Featured{
		{Title: "Go 1.24 Released", Href: "/1234/go-released"},
	})

	out, err := execute(t, "", "frontpage", "--config="+writeConfig(t, forum))
	require.NoError(t, err)
	require.Contains(t, out, "Go 1.24 Released")
	require.Contains(t, out, forum.URL()+"/1234/go-released")
}

func TestFailingCommandReleasesGlobals(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nairaland.log")

	_, err := execute(t, "", "deactivate", "--yes=false", "--log-file="+logPath)
	require.ErrorContains(t, err, "--yes")
	require.NotNil(t, active)
	require.True(t, active.closed)

	badConfig := filepath.Join(t.TempDir(), "nairaland.json5")
	require.NoError(t, os.WriteFile(badConfig, []byte(`{base_url: `), 0600))

	_, err = execute(t, "", "boards", "--config="+badConfig, "--log-file="+logPath)
	require.ErrorContains(t, err, "read config")
	require.NotNil(t, active)
	require.True(t, active.closed)
}

func TestSucceedingCommandReleasesGlobals(t *testing.T) {
	_, err := execute(t, "", "boards")
	require.NoError(t, err)
	require.NotNil(t, active)
	require.True(t, active.closed)
}
