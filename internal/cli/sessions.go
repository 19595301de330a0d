package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/touchstate/internal/store"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database string
}

// NewSessionsCommand creates the sessions command and its delete subcommand.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Long: `List the sessions stored in the database, oldest first.

Examples:
  touchstate sessions --db ./touch.db
  touchstate sessions --format json
  touchstate sessions delete swipe`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(cmd.Context(), opts, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	cmd.AddCommand(&cobra.Command{
		Use:           "delete <session>",
		Short:         "Delete a session by id or name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteSession(cmd.Context(), opts, args[0], cmd)
		},
	})

	return cmd
}

func runSessions(ctx context.Context, opts *SessionsOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.JSON() {
		return f.Success(map[string]any{"sessions": sessions})
	}

	w := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFRAMES\tEVENTS")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", s.ID, s.Name, s.Frames, s.Events)
	}
	return tw.Flush()
}

func runDeleteSession(ctx context.Context, opts *SessionsOptions, ref string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := resolveSession(ctx, st, ref)
	if err != nil {
		return err
	}
	if err := st.DeleteSession(ctx, sess.ID); err != nil {
		return WrapExitError(ExitCommandError, "failed to delete session", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if f.JSON() {
		return f.Success(sess)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s (%s)\n", sess.ID, sess.Name)
	return nil
}

// openStore opens the database named by flag or config.
func openStore(opts *RootOptions, flag string) (*store.Store, error) {
	dbPath, err := opts.databasePath(flag)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create database directory", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// resolveSession finds a session by id or name, mapping a miss to a
// command error.
func resolveSession(ctx context.Context, st *store.Store, ref string) (store.Session, error) {
	sess, err := st.ResolveSession(ctx, ref)
	if errors.Is(err, store.ErrSessionNotFound) {
		return store.Session{}, WrapExitError(ExitCommandError, fmt.Sprintf("session %q not found", ref), err)
	}
	if err != nil {
		return store.Session{}, WrapExitError(ExitCommandError, "failed to look up session", err)
	}
	return sess, nil
}
