package cli

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/roach88/touchstate/internal/harness"
	"github.com/roach88/touchstate/internal/store"
	"github.com/roach88/touchstate/internal/touch"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database    string
	Session     string
	OrphanMove  string
	LegacyPress bool
}

// FrameReport summarizes one replayed frame.
type FrameReport struct {
	Frame     int    `json:"frame"`
	Events    int    `json:"events"`
	Active    int    `json:"active"`
	Pressed   int    `json:"pressed"`
	Released  int    `json:"released"`
	Cancelled int    `json:"cancelled"`
	Error     string `json:"error,omitempty"`
}

// ReplayResult holds the replay result for a session.
type ReplayResult struct {
	Session             store.Session       `json:"session"`
	Events              int                 `json:"events"`
	OrphanMove          string              `json:"orphan_move"`
	LegacyPressTracking bool                `json:"legacy_press_tracking"`
	Deterministic       bool                `json:"deterministic"`
	Rejected            int                 `json:"rejected"`
	Final               *harness.FrameTrace `json:"final,omitempty"`
	Frames              []FrameReport       `json:"frames"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a recorded session and verify determinism",
		Long: `Replay a recorded session through the reducer and report the snapshots.

The session is read and folded twice; both runs must produce identical
per-frame snapshots. The reducer policy comes from the config file unless
overridden with flags.

Exit codes:
  0 - Replay is deterministic and no frame was rejected
  1 - A frame was rejected or the replay was not deterministic
  2 - Command error (database not found, unknown session, etc.)

Examples:
  touchstate replay --session swipe --db ./touch.db
  touchstate replay --session 0190d6c2-... --orphan-move drop
  touchstate replay --session swipe --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id or name (required)")
	_ = cmd.MarkFlagRequired("session")
	cmd.Flags().StringVar(&opts.OrphanMove, "orphan-move", "", "orphan move policy: fail or drop (default from config)")
	cmd.Flags().BoolVar(&opts.LegacyPress, "legacy-press", false, "do not report presses in just_pressed")

	return cmd
}

// reducerOptions merges flags over config. Flags win only when set.
func (o *ReplayOptions) reducerOptions(cmd *cobra.Command) (harness.Options, []touch.Option, error) {
	ho := harness.Options{
		OrphanMove:          o.Config.Reducer.OrphanMove,
		LegacyPressTracking: o.Config.Reducer.LegacyPressTracking,
	}
	if cmd.Flags().Changed("orphan-move") {
		ho.OrphanMove = o.OrphanMove
	}
	if cmd.Flags().Changed("legacy-press") {
		ho.LegacyPressTracking = o.LegacyPress
	}

	ropts, err := ho.ReducerOptions()
	if err != nil {
		return ho, nil, WrapExitError(ExitCommandError, "invalid reducer options", err)
	}
	return ho, ropts, nil
}

func runReplay(ctx context.Context, opts *ReplayOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ho, ropts, err := opts.reducerOptions(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := resolveSession(ctx, st, opts.Session)
	if err != nil {
		return err
	}

	first, err := foldSession(ctx, st, sess.ID, ropts)
	if err != nil {
		return WrapExitError(ExitCommandError, "first replay failed", err)
	}
	second, err := foldSession(ctx, st, sess.ID, ropts)
	if err != nil {
		return WrapExitError(ExitCommandError, "second replay failed", err)
	}

	policy, _ := touch.ParseOrphanMovePolicy(ho.OrphanMove)
	result := ReplayResult{
		Session:             sess,
		OrphanMove:          policy.String(),
		LegacyPressTracking: ho.LegacyPressTracking,
		Deterministic:       reflect.DeepEqual(first, second),
		Frames:              make([]FrameReport, 0, len(first)),
	}
	for _, ft := range first {
		result.Events += ft.Events
		if ft.Error != "" {
			result.Rejected++
		}
		result.Frames = append(result.Frames, FrameReport{
			Frame:     ft.Frame,
			Events:    ft.Events,
			Active:    len(ft.Active),
			Pressed:   len(ft.JustPressed),
			Released:  len(ft.JustReleased),
			Cancelled: len(ft.JustCancelled),
			Error:     ft.Error,
		})
	}
	if len(first) > 0 {
		final := first[len(first)-1]
		result.Final = &final
	}

	slog.Debug("session replayed",
		"session", sess.ID,
		"frames", len(first),
		"rejected", result.Rejected,
		"deterministic", result.Deterministic,
	)

	cliErr, exitErr := replayOutcome(result)

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if f.JSON() {
		if err := f.Result(result, cliErr); err != nil {
			return err
		}
		return exitErr
	}

	outputReplayText(cmd, result, opts.Verbose)
	return exitErr
}

// foldSession reads a session from the store and folds it through a fresh
// reducer.
func foldSession(ctx context.Context, st *store.Store, id string, ropts []touch.Option) ([]harness.FrameTrace, error) {
	frames, err := st.ReadFrames(ctx, id)
	if err != nil {
		return nil, err
	}
	return harness.Play(harness.Inputs(frames), slog.Default(), ropts...), nil
}

func replayOutcome(result ReplayResult) (*CLIError, error) {
	if !result.Deterministic {
		return &CLIError{
				Code:    CodeDeterminism,
				Message: "determinism verification failed",
			},
			NewExitError(ExitFailure, "determinism verification failed")
	}
	if result.Rejected > 0 {
		msg := fmt.Sprintf("%d frame(s) rejected", result.Rejected)
		return &CLIError{Code: CodeFrameRejected, Message: msg}, NewExitError(ExitFailure, msg)
	}
	return nil, nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay: %s (%s)\n", result.Session.ID, result.Session.Name)
	fmt.Fprintf(w, "  Frames: %d, events: %d\n", result.Session.Frames, result.Events)
	fmt.Fprintf(w, "  Policy: orphan_move=%s legacy_press=%v\n", result.OrphanMove, result.LegacyPressTracking)
	fmt.Fprintln(w)

	for _, fr := range result.Frames {
		if fr.Error != "" {
			fmt.Fprintf(w, "✗ frame %d: %s\n", fr.Frame, fr.Error)
			continue
		}
		if verbose {
			fmt.Fprintf(w, "  frame %d: events=%d active=%d pressed=%d released=%d cancelled=%d\n",
				fr.Frame, fr.Events, fr.Active, fr.Pressed, fr.Released, fr.Cancelled)
		}
	}

	if result.Final != nil {
		ids := make([]uint64, len(result.Final.Active))
		for i, t := range result.Final.Active {
			ids[i] = t.ID
		}
		fmt.Fprintf(w, "Final: active=%v released=%v cancelled=%v\n",
			ids, result.Final.JustReleased, result.Final.JustCancelled)
	}

	if !result.Deterministic {
		fmt.Fprintln(w, "✗ Determinism verification failed")
		return
	}
	fmt.Fprintln(w, "✓ Replay deterministic")
}
