package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/touchstate/internal/touch"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "touchstate", cmd.Use)
	assert.Contains(t, cmd.Long, "frame by frame")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"record", "sessions", "replay", "test", "schema", "view"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestReplayCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	replayCmd, _, err := cmd.Find([]string{"replay"})
	require.NoError(t, err)

	for _, name := range []string{"db", "session", "orphan-move", "legacy-press"} {
		assert.NotNil(t, replayCmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestRoot_InvalidFormat(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, NewRootCommand(), "--format", "xml", "schema")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRoot_ConfigWiring(t *testing.T) {
	isolateEnv(t)
	dbPath := tempDB(t)
	seedSession(t, dbPath, "s-1", "orphan", []touch.TouchInput{touch.Moved(9, 0, 0)})

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"database:\n  path: "+dbPath+"\nreducer:\n  orphan_move: drop\n",
	), 0644))

	out, err := execute(t, NewRootCommand(), "--config", cfgPath, "replay", "--session", "orphan")
	require.NoError(t, err)
	assert.Contains(t, out, "orphan_move=drop")

	t.Setenv("TOUCHSTATE_REDUCER_ORPHAN_MOVE", "fail")
	_, err = execute(t, NewRootCommand(), "--config", cfgPath, "replay", "--session", "orphan")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRoot_BadConfig(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, NewRootCommand(), "--config", filepath.Join(t.TempDir(), "missing.yaml"), "schema")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}
