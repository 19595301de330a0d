package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/touchstate/internal/harness"
	"github.com/roach88/touchstate/internal/store"
	"github.com/roach88/touchstate/internal/touch"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Database string
	Name     string

	// IDGenerator allows overriding the session id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator store.SessionIDGenerator
}

// RecordResult describes a stored session.
type RecordResult struct {
	store.Session
	Events int `json:"events"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <recording.yaml>",
		Short: "Store a captured touch stream as a session",
		Long: `Store a captured touch stream in the session database.

The recording is a YAML file with a list of frames, each holding the
events delivered during that frame. Events are stamped in arrival order
and written with their frame numbers, so a replay reproduces the exact
frame boundaries, including empty frames.

Examples:
  touchstate record ./swipe.yaml --db ./touch.db
  touchstate record ./swipe.yaml --name "two finger swipe"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "session name (default: recording name or file name)")

	return cmd
}

func runRecord(ctx context.Context, opts *RecordOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rec, err := harness.LoadRecording(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load recording", err)
	}

	name := opts.Name
	if name == "" {
		name = rec.Name
	}
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	st, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	gen := opts.IDGenerator
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}

	frames, events := stampRecording(rec.Inputs())

	sess, err := st.WriteSession(ctx, store.Session{ID: gen.Generate(), Name: name}, frames)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write session", err)
	}
	slog.Debug("session recorded", "id", sess.ID, "frames", sess.Frames, "events", events)

	result := RecordResult{Session: sess, Events: events}
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		return f.Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded session %s (%s): %d frames, %d events\n",
		sess.ID, sess.Name, sess.Frames, events)
	return nil
}

// stampRecording pushes each frame through a queue, exactly as a live
// event source would, and drains it once per frame.
func stampRecording(frames [][]touch.TouchInput) ([][]touch.Stamped, int) {
	q := touch.NewQueue()
	defer q.Close()

	out := make([][]touch.Stamped, len(frames))
	total := 0
	for i, events := range frames {
		for _, ev := range events {
			q.Push(ev)
		}
		out[i] = q.Drain()
		if out[i] == nil {
			out[i] = []touch.Stamped{}
		}
		total += len(out[i])
	}
	return out, total
}
