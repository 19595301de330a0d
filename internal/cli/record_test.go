package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/touchstate/internal/store"
	"github.com/roach88/touchstate/internal/testutil"
	"github.com/roach88/touchstate/internal/touch"
)

const swipeRecording = `
name: swipe
frames:
  - events:
      - { phase: Started, id: 1, x: 0, y: 0 }
  - events: []
  - events:
      - { phase: Moved, id: 1, x: 8, y: 0 }
      - { phase: Ended, id: 1, x: 8, y: 0 }
`

func TestRecord_WritesSession(t *testing.T) {
	dbPath := tempDB(t)
	path := writeYAML(t, t.TempDir(), "swipe.yaml", swipeRecording)

	opts := &RecordOptions{
		RootOptions: &RootOptions{Format: "text"},
		Database:    dbPath,
		IDGenerator: testutil.NewFixedSessionGenerator(),
	}
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	require.NoError(t, runRecord(context.Background(), opts, path, cmd))
	assert.Equal(t, "Recorded session test-session-0001 (swipe): 3 frames, 3 events\n", buf.String())

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	frames, err := st.ReadFrames(context.Background(), "test-session-0001")
	require.NoError(t, err)
	assert.Equal(t, [][]touch.Stamped{
		{{Seq: 1, Input: touch.Started(1, 0, 0)}},
		{},
		{{Seq: 2, Input: touch.Moved(1, 8, 0)}, {Seq: 3, Input: touch.Ended(1, 8, 0)}},
	}, frames)
}

func TestRecord_NameFlagAndDefaultID(t *testing.T) {
	dbPath := tempDB(t)
	path := writeYAML(t, t.TempDir(), "swipe.yaml", swipeRecording)

	_, err := execute(t, NewRecordCommand(&RootOptions{Format: "text"}), path, "--db", dbPath, "--name", "  custom ")
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	sessions, err := st.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "custom", sessions[0].Name)

	id, err := uuid.Parse(sessions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestRecord_NameFromFile(t *testing.T) {
	dbPath := tempDB(t)
	path := writeYAML(t, t.TempDir(), "pinch.yaml", "frames:\n  - events: []\n")

	out, err := execute(t, NewRecordCommand(&RootOptions{Format: "text"}), path, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(pinch): 1 frames, 0 events")
}

func TestRecord_JSON(t *testing.T) {
	dbPath := tempDB(t)
	path := writeYAML(t, t.TempDir(), "swipe.yaml", swipeRecording)

	out, err := execute(t, NewRecordCommand(&RootOptions{Format: "json"}), path, "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   RecordResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "swipe", resp.Data.Name)
	assert.Equal(t, 3, resp.Data.Frames)
	assert.Equal(t, 3, resp.Data.Events)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestRecord_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, NewRecordCommand(&RootOptions{Format: "text"}), dir+"/missing.yaml", "--db", tempDB(t))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load recording")

	path := writeYAML(t, dir, "ok.yaml", swipeRecording)
	_, err = execute(t, NewRecordCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no database")
}

func TestStampRecording(t *testing.T) {
	frames, total := stampRecording([][]touch.TouchInput{
		{touch.Started(1, 0, 0), touch.Started(2, 0, 0)},
		{},
		{touch.Ended(1, 0, 0)},
	})

	assert.Equal(t, 3, total)
	require.Len(t, frames, 3)
	assert.Equal(t, int64(1), frames[0][0].Seq)
	assert.Equal(t, int64(2), frames[0][1].Seq)
	assert.NotNil(t, frames[1])
	assert.Empty(t, frames[1])
	assert.Equal(t, int64(3), frames[2][0].Seq)
}
