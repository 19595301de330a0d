package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/touchstate/internal/store"
	"github.com/roach88/touchstate/internal/testutil"
	"github.com/roach88/touchstate/internal/touch"
)

// tempDB returns a path for a fresh database in a temp dir.
func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "touch.db")
}

// seedSession writes a session with the given frames into the database.
func seedSession(t *testing.T, dbPath, id, name string, frames ...[]touch.TouchInput) {
	t.Helper()
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.WriteSession(context.Background(), store.Session{ID: id, Name: name}, testutil.StampFrames(frames...))
	require.NoError(t, err)
}

// execute runs cmd with args and returns its stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// isolateEnv points HOME at an empty dir, clears config env vars and
// restores the default logger afterwards.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"TOUCHSTATE_CONFIG",
		"TOUCHSTATE_DATABASE_PATH",
		"TOUCHSTATE_REDUCER_ORPHAN_MOVE",
		"TOUCHSTATE_REDUCER_LEGACY_PRESS_TRACKING",
		"TOUCHSTATE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	return home
}

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
